package game

import "casino_engine/internal/api/dto/account"

type PlayRequest struct {
	Game   string  `json:"game"`
	Bet    int64   `json:"bet"`
	Choice string  `json:"choice,omitempty"` // Цвет, сторона, число и т.п.
	Target float64 `json:"target,omitempty"` // Crash и limbo
	Picks  []int   `json:"picks,omitempty"`  // Keno
}

type SettlementResponse struct {
	Bet       int64                         `json:"bet"`
	Payout    int64                         `json:"payout"`
	NetChange int64                         `json:"net_change"`
	Result    string                        `json:"result"`
	Balance   int64                         `json:"balance"`
	Unlocked  []account.AchievementResponse `json:"unlocked"`
}

type PlayResponse struct {
	Game       string             `json:"game"`
	Multiplier float64            `json:"multiplier"`
	Detail     any                `json:"detail"`
	Settlement SettlementResponse `json:"settlement"`
}

type DoubleHistoryResponse struct {
	Last []string `json:"last"` // От старых к новым
}
