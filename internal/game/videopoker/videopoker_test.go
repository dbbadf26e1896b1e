package videopoker

import (
	"casino_engine/internal/game/cards"
	"casino_engine/internal/game/rng"
	"casino_engine/internal/model"
	"errors"
	"testing"
)

func c(rank int, suit cards.Suit) cards.Card {
	return cards.Card{Rank: rank, Suit: suit}
}

const (
	s = cards.Spades
	h = cards.Hearts
	d = cards.Diamonds
	k = cards.Clubs
)

func TestEvaluate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		hand [HandSize]cards.Card
		want Rank
	}{
		{"royal", [HandSize]cards.Card{c(10, h), c(cards.Jack, h), c(cards.Queen, h), c(cards.King, h), c(cards.Ace, h)}, RoyalFlush},
		{"straight flush", [HandSize]cards.Card{c(5, s), c(6, s), c(7, s), c(8, s), c(9, s)}, StraightFlush},
		{"steel wheel", [HandSize]cards.Card{c(cards.Ace, d), c(2, d), c(3, d), c(4, d), c(5, d)}, StraightFlush},
		{"quads", [HandSize]cards.Card{c(9, s), c(9, h), c(9, d), c(9, k), c(2, s)}, FourOfAKind},
		{"full house", [HandSize]cards.Card{c(3, s), c(3, h), c(3, d), c(7, k), c(7, s)}, FullHouse},
		{"flush", [HandSize]cards.Card{c(2, k), c(7, k), c(9, k), c(cards.Jack, k), c(cards.King, k)}, Flush},
		{"ace-low straight", [HandSize]cards.Card{c(cards.Ace, s), c(2, h), c(3, d), c(4, k), c(5, s)}, Straight},
		{"ace-high straight", [HandSize]cards.Card{c(10, s), c(cards.Jack, h), c(cards.Queen, d), c(cards.King, k), c(cards.Ace, s)}, Straight},
		{"trips", [HandSize]cards.Card{c(4, s), c(4, h), c(4, d), c(cards.King, k), c(2, s)}, ThreeOfAKind},
		{"two pair", [HandSize]cards.Card{c(4, s), c(4, h), c(8, d), c(8, k), c(2, s)}, TwoPair},
		{"jacks", [HandSize]cards.Card{c(cards.Jack, s), c(cards.Jack, h), c(8, d), c(3, k), c(2, s)}, JacksOrBetter},
		{"aces", [HandSize]cards.Card{c(cards.Ace, s), c(cards.Ace, h), c(8, d), c(3, k), c(2, s)}, JacksOrBetter},
		{"tens", [HandSize]cards.Card{c(10, s), c(10, h), c(8, d), c(3, k), c(2, s)}, Nothing},
		{"wraparound", [HandSize]cards.Card{c(cards.Queen, s), c(cards.King, h), c(cards.Ace, d), c(2, k), c(3, s)}, Nothing},
	}
	for _, tt := range tests {
		if got := Evaluate(tt.hand); got != tt.want {
			t.Errorf("%s: Evaluate = %s, want %s", tt.name, got, tt.want)
		}
	}
}

func stacked(top ...cards.Card) *cards.Deck {
	for len(top) < 2*cards.ReshuffleThreshold {
		top = append(top, c(2, k))
	}
	return cards.NewStackedDeck(rng.Seeded(1), top)
}

func TestDrawReplacesUnheld(t *testing.T) {
	t.Parallel()

	g := Deal(stacked(
		c(cards.King, s), c(cards.King, h), c(4, d), c(7, k), c(9, s),
		c(cards.King, d), c(5, h), c(5, s),
	))
	hold := [HandSize]bool{true, true}
	if err := g.Apply(model.Move{Kind: model.MoveDraw, Hold: hold}); err != nil {
		t.Fatal(err)
	}
	if !g.Terminal() || !g.Progress() {
		t.Fatal("draw did not end the hand")
	}
	res := g.Resolution()
	if res.Result != model.ResultWin || res.Multiplier != Paytable[FullHouse] {
		t.Fatalf("resolution = %+v, want full house", res)
	}
	if err := g.Apply(model.Move{Kind: model.MoveDraw}); !errors.Is(err, model.ErrInvalidMove) {
		t.Fatalf("second draw = %v, want ErrInvalidMove", err)
	}
}

func TestCashOutEvaluatesDealtHand(t *testing.T) {
	t.Parallel()

	g := Deal(stacked(c(cards.Queen, s), c(cards.Queen, h), c(4, d), c(7, k), c(9, s)))
	if g.Progress() {
		t.Fatal("untouched hand reports progress")
	}
	res := g.CashOut()
	if res.Result != model.ResultPush || res.Multiplier != 1 {
		t.Fatalf("pair of queens = %+v, want push", res)
	}
	if v := g.View().(View); v.Rank != "jacks_or_better" || !v.Terminal {
		t.Fatalf("view = %+v", v)
	}
}
