package session

import (
	"casino_engine/internal/game/blackjack"
	"casino_engine/internal/game/mines"
	"casino_engine/internal/game/rng"
	"casino_engine/internal/game/tower"
	"casino_engine/internal/game/videopoker"
	"casino_engine/internal/model"
	"fmt"
)

// Game - многошаговая игра с состоянием между ходами
type Game interface {
	Type() model.GameType
	Apply(m model.Move) error
	Terminal() bool
	Resolution() model.Resolution
	// Progress - был ли сделан ход, от которого зависит выплата по таймауту
	Progress() bool
	// CashOut завершает игру по текущему состоянию
	CashOut() model.Resolution
	View() any
}

// Factory собирает новую игру по типу и сложности
type Factory func(t model.GameType, difficulty string) (Game, error)

// NewFactory - фабрика игр поверх источника случайности
func NewFactory(src rng.Source) Factory {
	return func(t model.GameType, difficulty string) (Game, error) {
		switch t {
		case model.GameBlackjack:
			return blackjack.New(src), nil
		case model.GameVideoPoker:
			return videopoker.New(src), nil
		case model.GameMines:
			d, err := mines.ParseDifficulty(difficulty)
			if err != nil {
				return nil, err
			}
			return mines.New(src, d), nil
		case model.GameTower:
			d, err := tower.ParseDifficulty(difficulty)
			if err != nil {
				return nil, err
			}
			return tower.New(src, d), nil
		default:
			return nil, fmt.Errorf("%w: %q is not a session game", model.ErrUnknownGame, t)
		}
	}
}
