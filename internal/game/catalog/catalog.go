// Package catalog - одиночные игры без состояния: розыгрыш исхода и правило выплаты.
//
// Каждая игра умеет Sample (розыгрыш) и Settle (выплата по готовому розыгрышу),
// Play объединяет оба шага. Набор игр закрыт: интерфейс Game нельзя реализовать вне пакета.
package catalog

import (
	"casino_engine/internal/game/rng"
	"casino_engine/internal/model"
	"fmt"

	"github.com/shopspring/decimal"
)

type Game interface {
	Type() model.GameType
	Validate() error
	Play(src rng.Source) Outcome
	sealed()
}

// Outcome - исход одиночной игры. Multiplier - сколько ставок возвращается игроку
type Outcome struct {
	Game       model.GameType
	Won        bool
	Push       bool
	Multiplier float64
	Detail     any
}

func (o Outcome) Result() model.Result {
	switch {
	case o.Push:
		return model.ResultPush
	case o.Won:
		return model.ResultWin
	default:
		return model.ResultLoss
	}
}

// outcome собирает исход по множителю: больше 1 - выигрыш, ровно 1 - возврат ставки
func outcome(game model.GameType, multiplier float64, detail any) Outcome {
	return Outcome{
		Game:       game,
		Won:        multiplier > 1,
		Push:       multiplier == 1,
		Multiplier: multiplier,
		Detail:     detail,
	}
}

// Payout - выплата floor(bet * multiplier)
func Payout(bet int64, multiplier float64) int64 {
	if bet <= 0 || multiplier <= 0 {
		return 0
	}
	return decimal.NewFromInt(bet).Mul(decimal.NewFromFloat(multiplier)).Floor().IntPart()
}

// NetChange - изменение баланса по итогам ставки
func NetChange(bet int64, o Outcome) int64 {
	return Payout(bet, o.Multiplier) - bet
}

// truncate2 отбрасывает всё после второго знака
func truncate2(x float64) float64 {
	return decimal.NewFromFloat(x).Truncate(2).InexactFloat64()
}

// Params - параметры ставки в том виде, в каком их передаёт чат
type Params struct {
	Choice string
	Target float64
	Picks  []int
}

// New собирает игру каталога по типу и параметрам ставки
func New(t model.GameType, p Params) (Game, error) {
	var (
		g   Game
		err error
	)
	switch t {
	case model.GameRoulette:
		g, err = ParseRouletteBet(p.Choice)
	case model.GameDice:
		g, err = ParseDiceBet(p.Choice)
	case model.GameSlots:
		g = Slots{}
	case model.GameTigrinho:
		g = Tigrinho{}
	case model.GameCrash:
		g = Crash{Target: p.Target}
	case model.GameDouble:
		g, err = ParseDoubleBet(p.Choice)
	case model.GameLimbo:
		g = Limbo{Target: p.Target}
	case model.GameKeno:
		g = Keno{Picks: p.Picks}
	case model.GameBaccarat:
		g, err = ParseBaccaratBet(p.Choice)
	case model.GameHiLo:
		g, err = ParseHiLoBet(p.Choice)
	case model.GameCoinFlip:
		g, err = ParseCoinFlipBet(p.Choice)
	case model.GameWheel:
		g = Wheel{}
	case model.GameScratch:
		g = Scratch{}
	case model.GamePlinko:
		g, err = ParsePlinkoBet(p.Choice)
	default:
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownGame, t)
	}
	if err != nil {
		return nil, err
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", model.ErrInvalidWager, fmt.Sprintf(format, args...))
}
