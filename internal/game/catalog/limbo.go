package catalog

import (
	"casino_engine/internal/game/rng"
	"casino_engine/internal/model"
)

const (
	limboMinTarget = 1.01
	limboMaxTarget = 1000.0
)

// Кусочное распределение результата limbo. Границы подобраны эмпирически
var limboBands = []struct {
	Upto     float64 // накопленная вероятность
	From, To float64
}{
	{0.50, 1, 2},
	{0.80, 2, 10},
	{0.95, 10, 100},
	{1.00, 100, 1000},
}

type Limbo struct {
	Target float64
}

type LimboDetail struct {
	Result float64 `json:"result"`
	Target float64 `json:"target"`
}

func (Limbo) Type() model.GameType { return model.GameLimbo }
func (Limbo) sealed() {}

func (g Limbo) Validate() error {
	if g.Target < limboMinTarget || g.Target > limboMaxTarget {
		return invalid("limbo target %.2f must be within [%.2f, %.0f]", g.Target, limboMinTarget, limboMaxTarget)
	}
	return nil
}

func (Limbo) Sample(src rng.Source) float64 {
	u := src.Float64()
	band := limboBands[len(limboBands)-1]
	for _, b := range limboBands {
		if u < b.Upto {
			band = b
			break
		}
	}
	return truncate2(band.From + src.Float64()*(band.To-band.From))
}

func (g Limbo) Settle(result float64) Outcome {
	detail := LimboDetail{Result: result, Target: g.Target}
	if result < g.Target {
		return outcome(g.Type(), 0, detail)
	}
	return outcome(g.Type(), g.Target, detail)
}

func (g Limbo) Play(src rng.Source) Outcome {
	return g.Settle(g.Sample(src))
}
