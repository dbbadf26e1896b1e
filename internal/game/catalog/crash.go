package catalog

import (
	"casino_engine/internal/game/rng"
	"casino_engine/internal/model"
)

const (
	// crashHouseEdge - преимущество казино, подобрано эмпирически
	crashHouseEdge = 0.03
	crashMinU      = 1e-6
	crashMaxPoint  = 100.0
	crashMinTarget = 1.01
)

type Crash struct {
	Target float64
}

type CrashDetail struct {
	CrashPoint float64 `json:"crash_point"`
	Target     float64 `json:"target"`
}

func (Crash) Type() model.GameType { return model.GameCrash }
func (Crash) sealed() {}

func (g Crash) Validate() error {
	if g.Target < crashMinTarget || g.Target > crashMaxPoint {
		return invalid("crash target %.2f must be within [%.2f, %.0f]", g.Target, crashMinTarget, crashMaxPoint)
	}
	return nil
}

// Sample: точка краша (1 - edge) / U, U ~ (0, 1]
func (Crash) Sample(src rng.Source) float64 {
	u := 1 - src.Float64()
	if u < crashMinU {
		u = crashMinU
	}
	point := truncate2((1 - crashHouseEdge) / u)
	return min(max(point, 1), crashMaxPoint)
}

func (g Crash) Settle(point float64) Outcome {
	detail := CrashDetail{CrashPoint: point, Target: g.Target}
	if g.Target > point {
		return outcome(g.Type(), 0, detail)
	}
	return outcome(g.Type(), g.Target, detail)
}

func (g Crash) Play(src rng.Source) Outcome {
	return g.Settle(g.Sample(src))
}
