package catalog

import (
	"casino_engine/internal/game/rng"
	"casino_engine/internal/model"
	"strings"
)

type CoinSide string

const (
	CoinHeads CoinSide = "heads"
	CoinTails CoinSide = "tails"
)

const coinFlipMult = 2.0

var coinAliases = map[string]CoinSide{
	"heads": CoinHeads,
	"cara":  CoinHeads,
	"tails": CoinTails,
	"coroa": CoinTails,
}

type CoinFlip struct {
	Side CoinSide
}

type CoinFlipDetail struct {
	Side CoinSide `json:"side"`
}

func ParseCoinFlipBet(s string) (CoinFlip, error) {
	side, ok := coinAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return CoinFlip{}, invalid("unknown coin side %q", s)
	}
	return CoinFlip{Side: side}, nil
}

func (CoinFlip) Type() model.GameType { return model.GameCoinFlip }
func (CoinFlip) sealed() {}

func (g CoinFlip) Validate() error {
	if g.Side != CoinHeads && g.Side != CoinTails {
		return invalid("unknown coin side %q", g.Side)
	}
	return nil
}

func (CoinFlip) Sample(src rng.Source) CoinSide {
	if rng.Weighted(src, []int{1, 1}) == 0 {
		return CoinHeads
	}
	return CoinTails
}

func (g CoinFlip) Settle(side CoinSide) Outcome {
	detail := CoinFlipDetail{Side: side}
	if side != g.Side {
		return outcome(g.Type(), 0, detail)
	}
	return outcome(g.Type(), coinFlipMult, detail)
}

func (g CoinFlip) Play(src rng.Source) Outcome {
	return g.Settle(g.Sample(src))
}
