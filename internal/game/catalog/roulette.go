package catalog

import (
	"casino_engine/internal/game/rng"
	"casino_engine/internal/model"
	"strconv"
	"strings"
)

type RouletteBetKind int

const (
	RouletteNumber RouletteBetKind = iota
	RouletteRed
	RouletteBlack
	RouletteEven
	RouletteOdd
	RouletteLow
	RouletteHigh
)

const (
	rouletteNumberMult  = 35.0
	rouletteOutsideMult = 2.0
)

var rouletteRed = map[int]bool{
	1: true, 3: true, 5: true, 7: true, 9: true, 12: true, 14: true, 16: true, 18: true,
	19: true, 21: true, 23: true, 25: true, 27: true, 30: true, 32: true, 34: true, 36: true,
}

// Допустимые названия ставок, в том числе из португальской версии бота
var rouletteAliases = map[string]RouletteBetKind{
	"red":      RouletteRed,
	"vermelho": RouletteRed,
	"black":    RouletteBlack,
	"preto":    RouletteBlack,
	"even":     RouletteEven,
	"par":      RouletteEven,
	"odd":      RouletteOdd,
	"impar":    RouletteOdd,
	"ímpar":    RouletteOdd,
	"low":      RouletteLow,
	"baixo":    RouletteLow,
	"high":     RouletteHigh,
	"alto":     RouletteHigh,
}

type Roulette struct {
	Kind   RouletteBetKind
	Number int
}

type RouletteDetail struct {
	Number int    `json:"number"`
	Color  string `json:"color"`
}

// ParseRouletteBet разбирает ставку: число 0-36 или название внешней ставки
func ParseRouletteBet(s string) (Roulette, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		return Roulette{Kind: RouletteNumber, Number: n}, nil
	}
	kind, ok := rouletteAliases[s]
	if !ok {
		return Roulette{}, invalid("unknown roulette bet %q", s)
	}
	return Roulette{Kind: kind}, nil
}

func (Roulette) Type() model.GameType { return model.GameRoulette }
func (Roulette) sealed() {}

func (g Roulette) Validate() error {
	if g.Kind == RouletteNumber && (g.Number < 0 || g.Number > 36) {
		return invalid("roulette number %d out of range", g.Number)
	}
	if g.Kind < RouletteNumber || g.Kind > RouletteHigh {
		return invalid("unknown roulette bet kind")
	}
	return nil
}

func (Roulette) Sample(src rng.Source) int {
	return src.IntN(37)
}

func RouletteColor(n int) string {
	switch {
	case n == 0:
		return "green"
	case rouletteRed[n]:
		return "red"
	default:
		return "black"
	}
}

// Settle считает выплату по выпавшему числу. Ноль проигрывает все внешние ставки
func (g Roulette) Settle(n int) Outcome {
	detail := RouletteDetail{Number: n, Color: RouletteColor(n)}

	var hit bool
	mult := rouletteOutsideMult
	switch g.Kind {
	case RouletteNumber:
		hit = n == g.Number
		mult = rouletteNumberMult
	case RouletteRed:
		hit = n != 0 && rouletteRed[n]
	case RouletteBlack:
		hit = n != 0 && !rouletteRed[n]
	case RouletteEven:
		hit = n != 0 && n%2 == 0
	case RouletteOdd:
		hit = n%2 == 1
	case RouletteLow:
		hit = n >= 1 && n <= 18
	case RouletteHigh:
		hit = n >= 19
	}
	if !hit {
		return outcome(g.Type(), 0, detail)
	}
	return outcome(g.Type(), mult, detail)
}

func (g Roulette) Play(src rng.Source) Outcome {
	return g.Settle(g.Sample(src))
}
