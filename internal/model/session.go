package model

import "time"

type MoveKind string

const (
	MoveHit     MoveKind = "hit"
	MoveStand   MoveKind = "stand"
	MoveReveal  MoveKind = "reveal"
	MovePick    MoveKind = "pick"
	MoveCashOut MoveKind = "cashout"
	MoveDraw    MoveKind = "draw"
)

// Move - действие игрока в многошаговой игре.
// Index - клетка (mines) или плитка (tower), Hold - маска удержания карт (video poker)
type Move struct {
	Kind  MoveKind
	Index int
	Hold  [5]bool
}

// Resolution - итог многошаговой игры
type Resolution struct {
	Result     Result
	Multiplier float64
}

// SessionInfo - снимок живой игровой сессии
type SessionInfo struct {
	ID        string
	AccountID int64
	Game      GameType
	Bet       int64
	Terminal  bool
	ExpiresAt time.Time
	View      any
}

// MoveResult - состояние после хода и расчёт, если игра закончилась
type MoveResult struct {
	Session    SessionInfo
	Resolution *Resolution
	Settlement *Settlement
}
