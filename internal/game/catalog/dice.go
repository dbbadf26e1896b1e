package catalog

import (
	"casino_engine/internal/game/rng"
	"casino_engine/internal/model"
	"strconv"
	"strings"
)

type DiceMode int

const (
	// Две кости, сумма против 7
	DiceOver DiceMode = iota
	DiceUnder
	DiceSeven
	// Одна кость
	DiceHigh
	DiceLow
	DiceExact
)

var diceAliases = map[string]DiceMode{
	"over":   DiceOver,
	"acima":  DiceOver,
	"under":  DiceUnder,
	"abaixo": DiceUnder,
	"seven":  DiceSeven,
	"sete":   DiceSeven,
	"7":      DiceSeven,
	"high":   DiceHigh,
	"alto":   DiceHigh,
	"low":    DiceLow,
	"baixo":  DiceLow,
}

type Dice struct {
	Mode DiceMode
	Face int
}

type DiceDetail struct {
	Faces []int `json:"faces"`
	Total int   `json:"total"`
}

// ParseDiceBet разбирает ставку: over/under/seven (2d6), high/low или грань 1-6 (1d6)
func ParseDiceBet(s string) (Dice, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if mode, ok := diceAliases[s]; ok {
		return Dice{Mode: mode}, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return Dice{Mode: DiceExact, Face: n}, nil
	}
	return Dice{}, invalid("unknown dice bet %q", s)
}

func (Dice) Type() model.GameType { return model.GameDice }
func (Dice) sealed() {}

func (g Dice) Validate() error {
	if g.Mode < DiceOver || g.Mode > DiceExact {
		return invalid("unknown dice mode")
	}
	if g.Mode == DiceExact && (g.Face < 1 || g.Face > 6) {
		return invalid("dice face %d out of range", g.Face)
	}
	return nil
}

func (g Dice) twoDice() bool {
	return g.Mode == DiceOver || g.Mode == DiceUnder || g.Mode == DiceSeven
}

func (g Dice) Sample(src rng.Source) []int {
	if g.twoDice() {
		return []int{src.IntN(6) + 1, src.IntN(6) + 1}
	}
	return []int{src.IntN(6) + 1}
}

func (g Dice) Settle(faces []int) Outcome {
	total := 0
	for _, f := range faces {
		total += f
	}
	detail := DiceDetail{Faces: faces, Total: total}

	var mult float64
	switch g.Mode {
	case DiceOver:
		if total > 7 {
			mult = 2
		}
	case DiceUnder:
		if total < 7 {
			mult = 2
		}
	case DiceSeven:
		if total == 7 {
			mult = 5
		}
	case DiceHigh:
		if total >= 4 {
			mult = 2
		}
	case DiceLow:
		if total <= 3 {
			mult = 2
		}
	case DiceExact:
		if total == g.Face {
			mult = 6
		}
	}
	return outcome(g.Type(), mult, detail)
}

func (g Dice) Play(src rng.Source) Outcome {
	return g.Settle(g.Sample(src))
}
