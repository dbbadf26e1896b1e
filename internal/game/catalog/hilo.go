package catalog

import (
	"casino_engine/internal/game/cards"
	"casino_engine/internal/game/rng"
	"casino_engine/internal/model"
	"strings"
)

type HiLoGuess string

const (
	HiLoHigher HiLoGuess = "higher"
	HiLoLower  HiLoGuess = "lower"
	HiLoEqual  HiLoGuess = "equal"
)

var hiloAliases = map[string]HiLoGuess{
	"higher": HiLoHigher,
	"hi":     HiLoHigher,
	"maior":  HiLoHigher,
	"lower":  HiLoLower,
	"lo":     HiLoLower,
	"menor":  HiLoLower,
	"equal":  HiLoEqual,
	"igual":  HiLoEqual,
}

type HiLo struct {
	Guess HiLoGuess
}

type HiLoDetail struct {
	First  int `json:"first"`
	Second int `json:"second"`
}

func ParseHiLoBet(s string) (HiLo, error) {
	g, ok := hiloAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return HiLo{}, invalid("unknown hi-lo guess %q", s)
	}
	return HiLo{Guess: g}, nil
}

func (HiLo) Type() model.GameType { return model.GameHiLo }
func (HiLo) sealed() {}

func (g HiLo) Validate() error {
	switch g.Guess {
	case HiLoHigher, HiLoLower, HiLoEqual:
		return nil
	}
	return invalid("unknown hi-lo guess %q", g.Guess)
}

func (HiLo) Sample(src rng.Source) HiLoDetail {
	return HiLoDetail{First: cards.RandomRank(src), Second: cards.RandomRank(src)}
}

func (g HiLo) Settle(d HiLoDetail) Outcome {
	var mult float64
	switch {
	case g.Guess == HiLoHigher && d.Second > d.First:
		mult = 2
	case g.Guess == HiLoLower && d.Second < d.First:
		mult = 2
	case g.Guess == HiLoEqual && d.Second == d.First:
		mult = 14
	}
	return outcome(g.Type(), mult, d)
}

func (g HiLo) Play(src rng.Source) Outcome {
	return g.Settle(g.Sample(src))
}
