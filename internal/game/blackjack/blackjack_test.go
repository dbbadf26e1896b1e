package blackjack

import (
	"casino_engine/internal/game/cards"
	"casino_engine/internal/game/rng"
	"casino_engine/internal/model"
	"errors"
	"testing"
)

func c(rank int) cards.Card {
	return cards.Card{Rank: rank, Suit: cards.Spades}
}

// stacked кладёт карты сверху и добивает колоду до порога перемешивания
func stacked(top ...cards.Card) *cards.Deck {
	pad := make([]cards.Card, cards.ReshuffleThreshold)
	for i := range pad {
		pad[i] = c(2)
	}
	return cards.NewStackedDeck(rng.Seeded(1), append(top, pad...))
}

func TestValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		hand []cards.Card
		want int
	}{
		{[]cards.Card{c(cards.Ace), c(cards.Ace), c(9)}, 21},
		{[]cards.Card{c(cards.Ace), c(cards.King)}, 21},
		{[]cards.Card{c(cards.Ace), c(cards.Ace)}, 12},
		{[]cards.Card{c(cards.Ace), c(cards.Ace), c(cards.Ace), c(cards.Ace)}, 14},
		{[]cards.Card{c(10), c(cards.Queen), c(5)}, 25},
		{[]cards.Card{c(cards.Ace), c(6), c(9)}, 16},
	}
	for _, tt := range tests {
		if got := Value(tt.hand); got != tt.want {
			t.Errorf("Value(%v) = %d, want %d", tt.hand, got, tt.want)
		}
	}
}

func TestNaturalResolvesAtDeal(t *testing.T) {
	t.Parallel()

	// порядок раздачи: игрок, дилер, игрок, дилер
	g := Deal(stacked(c(cards.Ace), c(9), c(cards.King), c(7)))
	if !g.Terminal() {
		t.Fatal("natural did not resolve")
	}
	if r := g.Resolution(); r.Result != model.ResultWin || r.Multiplier != naturalMult {
		t.Fatalf("resolution = %+v, want 2.5x win", r)
	}

	g = Deal(stacked(c(cards.Ace), c(cards.Ace), c(cards.King), c(cards.Queen)))
	if r := g.Resolution(); r.Result != model.ResultPush || r.Multiplier != 1 {
		t.Fatalf("both naturals = %+v, want push", r)
	}
}

func TestDealerDrawsBelow17(t *testing.T) {
	t.Parallel()

	// игрок 10+8, дилер 10+6 и добирает 3
	g := Deal(stacked(c(10), c(10), c(8), c(6), c(3)))
	if err := g.Apply(model.Move{Kind: model.MoveStand}); err != nil {
		t.Fatal(err)
	}
	v := g.View().(View)
	if v.DealerValue != 19 || len(v.Dealer) != 3 {
		t.Fatalf("dealer = %v (%d), want 19 from 3 cards", v.Dealer, v.DealerValue)
	}
	if r := g.Resolution(); r.Result != model.ResultLoss {
		t.Fatalf("18 vs 19 = %+v, want loss", r)
	}
}

func TestDealerStandsOn17(t *testing.T) {
	t.Parallel()

	g := Deal(stacked(c(10), c(10), c(9), c(7)))
	if err := g.Apply(model.Move{Kind: model.MoveStand}); err != nil {
		t.Fatal(err)
	}
	if v := g.View().(View); len(v.Dealer) != 2 {
		t.Fatalf("dealer drew on 17: %v", v.Dealer)
	}
	if r := g.Resolution(); r.Result != model.ResultWin || r.Multiplier != winMult {
		t.Fatalf("19 vs 17 = %+v, want 2x win", r)
	}
}

func TestPlayerBust(t *testing.T) {
	t.Parallel()

	g := Deal(stacked(c(10), c(10), c(6), c(5), c(9)))
	if err := g.Apply(model.Move{Kind: model.MoveHit}); err != nil {
		t.Fatal(err)
	}
	if !g.Terminal() || g.Resolution().Result != model.ResultLoss {
		t.Fatalf("bust = %+v, want loss", g.Resolution())
	}
	if err := g.Apply(model.Move{Kind: model.MoveHit}); !errors.Is(err, model.ErrInvalidMove) {
		t.Fatalf("hit after bust = %v, want ErrInvalidMove", err)
	}
}

func TestDealerBustAndPush(t *testing.T) {
	t.Parallel()

	// дилер 10+6 добирает 10 и перебирает
	g := Deal(stacked(c(10), c(10), c(5), c(6), c(10)))
	g.Apply(model.Move{Kind: model.MoveStand})
	if r := g.Resolution(); r.Result != model.ResultWin {
		t.Fatalf("dealer bust = %+v, want win", r)
	}

	g = Deal(stacked(c(10), c(10), c(8), c(8)))
	g.Apply(model.Move{Kind: model.MoveStand})
	if r := g.Resolution(); r.Result != model.ResultPush || r.Multiplier != 1 {
		t.Fatalf("18 vs 18 = %+v, want push", r)
	}
}

func TestProgressAndCashOut(t *testing.T) {
	t.Parallel()

	g := Deal(stacked(c(10), c(10), c(2), c(8), c(5)))
	if g.Progress() {
		t.Fatal("progress before any action")
	}
	if err := g.Apply(model.Move{Kind: model.MoveHit}); err != nil {
		t.Fatal(err)
	}
	if !g.Progress() {
		t.Fatal("no progress after hit")
	}
	// 17 против 18
	if r := g.CashOut(); !g.Terminal() || r.Result != model.ResultLoss {
		t.Fatalf("cash out = %+v", r)
	}
	if err := g.Apply(model.Move{Kind: model.MoveReveal}); !errors.Is(err, model.ErrInvalidMove) {
		t.Fatalf("reveal = %v, want ErrInvalidMove", err)
	}
}
