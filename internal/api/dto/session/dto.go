package session

import (
	"casino_engine/internal/api/dto/game"
	"time"
)

type StartRequest struct {
	Game       string `json:"game"`
	Bet        int64  `json:"bet"`
	Difficulty string `json:"difficulty,omitempty"` // Mines и tower
}

type MoveRequest struct {
	Move  string `json:"move"`
	Index int    `json:"index,omitempty"` // Клетка mines или плитка tower
	Hold  []int  `json:"hold,omitempty"`  // Позиции удерживаемых карт video poker, 0-4
}

type ResolutionResponse struct {
	Result     string  `json:"result"`
	Multiplier float64 `json:"multiplier"`
}

type SessionResponse struct {
	ID         string                   `json:"id"`
	Game       string                   `json:"game"`
	Bet        int64                    `json:"bet"`
	Terminal   bool                     `json:"terminal"`
	ExpiresAt  time.Time                `json:"expires_at"`
	View       any                      `json:"view"`
	Resolution *ResolutionResponse      `json:"resolution,omitempty"`
	Settlement *game.SettlementResponse `json:"settlement,omitempty"`
}
