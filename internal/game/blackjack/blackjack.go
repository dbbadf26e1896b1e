// Package blackjack - блэкджек один на один с дилером.
//
// Состояния: раздача -> ход игрока -> ход дилера -> расчёт.
// Натуральный блэкджек игрока рассчитывается сразу при раздаче, дилер заранее не проверяется.
package blackjack

import (
	"casino_engine/internal/game/cards"
	"casino_engine/internal/game/rng"
	"casino_engine/internal/model"
	"fmt"
)

type State string

const (
	StateDealing    State = "dealing"
	StatePlayerTurn State = "player_turn"
	StateDealerTurn State = "dealer_turn"
	StateResolved   State = "resolved"
)

const (
	blackjack      = 21
	dealerStandsOn = 17

	naturalMult = 2.5
	winMult     = 2.0
	pushMult    = 1.0
)

type Game struct {
	deck    *cards.Deck
	player  []cards.Card
	dealer  []cards.Card
	state   State
	actions int
	res     model.Resolution
}

// View - то, что видит игрок. Вторая карта дилера скрыта до расчёта
type View struct {
	State       State        `json:"state"`
	Player      []cards.Card `json:"player"`
	PlayerValue int          `json:"player_value"`
	Dealer      []cards.Card `json:"dealer"`
	DealerValue int          `json:"dealer_value,omitempty"`
}

// New раздаёт руку из свежей колоды
func New(src rng.Source) *Game {
	return Deal(cards.NewDeck(src))
}

// Deal раздаёт руку из переданной колоды
func Deal(deck *cards.Deck) *Game {
	g := &Game{deck: deck, state: StateDealing}
	g.player = append(g.player, deck.Draw())
	g.dealer = append(g.dealer, deck.Draw())
	g.player = append(g.player, deck.Draw())
	g.dealer = append(g.dealer, deck.Draw())

	if isNatural(g.player) {
		g.state = StateResolved
		if isNatural(g.dealer) {
			g.res = model.Resolution{Result: model.ResultPush, Multiplier: pushMult}
		} else {
			g.res = model.Resolution{Result: model.ResultWin, Multiplier: naturalMult}
		}
		return g
	}
	g.state = StatePlayerTurn
	return g
}

// Value - сумма руки: туз считается за 11 и по одному сбрасывается до 1, пока сумма больше 21
func Value(hand []cards.Card) int {
	total, aces := 0, 0
	for _, c := range hand {
		switch {
		case c.Rank == cards.Ace:
			total += 11
			aces++
		case c.Rank >= 10:
			total += 10
		default:
			total += c.Rank
		}
	}
	for total > blackjack && aces > 0 {
		total -= 10
		aces--
	}
	return total
}

func isNatural(hand []cards.Card) bool {
	return len(hand) == 2 && Value(hand) == blackjack
}

func (g *Game) Type() model.GameType { return model.GameBlackjack }
func (g *Game) State() State { return g.state }
func (g *Game) Terminal() bool { return g.state == StateResolved }
func (g *Game) Resolution() model.Resolution { return g.res }
func (g *Game) Progress() bool { return g.actions > 0 }

func (g *Game) Apply(m model.Move) error {
	if g.state != StatePlayerTurn {
		return fmt.Errorf("%w: blackjack is in state %s", model.ErrInvalidMove, g.state)
	}
	switch m.Kind {
	case model.MoveHit:
		g.actions++
		g.player = append(g.player, g.deck.Draw())
		v := Value(g.player)
		if v > blackjack {
			g.state = StateResolved
			g.res = model.Resolution{Result: model.ResultLoss}
			return nil
		}
		if v == blackjack {
			g.dealerTurn()
		}
		return nil
	case model.MoveStand:
		g.actions++
		g.dealerTurn()
		return nil
	default:
		return fmt.Errorf("%w: blackjack does not accept %q", model.ErrInvalidMove, m.Kind)
	}
}

// CashOut по таймауту: игрок встаёт, дилер доигрывает
func (g *Game) CashOut() model.Resolution {
	if g.state == StatePlayerTurn {
		g.dealerTurn()
	}
	return g.res
}

func (g *Game) dealerTurn() {
	g.state = StateDealerTurn
	for Value(g.dealer) < dealerStandsOn {
		g.dealer = append(g.dealer, g.deck.Draw())
	}
	g.resolve()
}

func (g *Game) resolve() {
	g.state = StateResolved
	pv, dv := Value(g.player), Value(g.dealer)
	switch {
	case pv > blackjack:
		g.res = model.Resolution{Result: model.ResultLoss}
	case dv > blackjack, pv > dv:
		g.res = model.Resolution{Result: model.ResultWin, Multiplier: winMult}
	case pv == dv:
		g.res = model.Resolution{Result: model.ResultPush, Multiplier: pushMult}
	default:
		g.res = model.Resolution{Result: model.ResultLoss}
	}
}

func (g *Game) View() any {
	v := View{
		State:       g.state,
		Player:      append([]cards.Card(nil), g.player...),
		PlayerValue: Value(g.player),
	}
	if g.state == StateResolved {
		v.Dealer = append([]cards.Card(nil), g.dealer...)
		v.DealerValue = Value(g.dealer)
	} else {
		v.Dealer = []cards.Card{g.dealer[0]}
	}
	return v
}
