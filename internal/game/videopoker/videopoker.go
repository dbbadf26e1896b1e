// Package videopoker - Jacks or Better: раздача, одна замена, оценка руки
package videopoker

import (
	"casino_engine/internal/game/cards"
	"casino_engine/internal/game/rng"
	"casino_engine/internal/model"
	"fmt"
	"sort"
)

const HandSize = 5

type Rank int

const (
	Nothing Rank = iota
	JacksOrBetter
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

var rankNames = map[Rank]string{
	Nothing:       "nothing",
	JacksOrBetter: "jacks_or_better",
	TwoPair:       "two_pair",
	ThreeOfAKind:  "three_of_a_kind",
	Straight:      "straight",
	Flush:         "flush",
	FullHouse:     "full_house",
	FourOfAKind:   "four_of_a_kind",
	StraightFlush: "straight_flush",
	RoyalFlush:    "royal_flush",
}

func (r Rank) String() string { return rankNames[r] }

// Paytable - множитель за комбинацию
var Paytable = map[Rank]float64{
	RoyalFlush:    800,
	StraightFlush: 50,
	FourOfAKind:   25,
	FullHouse:     9,
	Flush:         6,
	Straight:      4,
	ThreeOfAKind:  3,
	TwoPair:       2,
	JacksOrBetter: 1,
}

// Evaluate - старшая комбинация руки из пяти карт
func Evaluate(hand [HandSize]cards.Card) Rank {
	counts := map[int]int{}
	flush := true
	for i, c := range hand {
		counts[c.Rank]++
		if i > 0 && c.Suit != hand[0].Suit {
			flush = false
		}
	}

	straight, royal := false, false
	if len(counts) == HandSize {
		ranks := make([]int, 0, HandSize)
		for r := range counts {
			ranks = append(ranks, r)
		}
		sort.Ints(ranks)
		switch {
		case ranks[4]-ranks[0] == 4:
			straight = true
		case ranks[0] == cards.Ace && ranks[1] == 10 && ranks[4] == cards.King:
			// туз сверху: 10-J-Q-K-A
			straight, royal = true, true
		}
	}

	var groups []int
	pairOfHighs := false
	for r, n := range counts {
		groups = append(groups, n)
		if n == 2 && (r >= cards.Jack || r == cards.Ace) {
			pairOfHighs = true
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(groups)))

	switch {
	case straight && flush && royal:
		return RoyalFlush
	case straight && flush:
		return StraightFlush
	case groups[0] == 4:
		return FourOfAKind
	case groups[0] == 3 && groups[1] == 2:
		return FullHouse
	case flush:
		return Flush
	case straight:
		return Straight
	case groups[0] == 3:
		return ThreeOfAKind
	case groups[0] == 2 && groups[1] == 2:
		return TwoPair
	case pairOfHighs:
		return JacksOrBetter
	default:
		return Nothing
	}
}

type Game struct {
	deck     *cards.Deck
	hand     [HandSize]cards.Card
	drawn    bool
	terminal bool
	rank     Rank
	res      model.Resolution
}

type View struct {
	Hand     [HandSize]cards.Card `json:"hand"`
	Rank     string               `json:"rank"`
	Terminal bool                 `json:"terminal"`
}

func New(src rng.Source) *Game {
	return Deal(cards.NewDeck(src))
}

func Deal(deck *cards.Deck) *Game {
	g := &Game{deck: deck}
	for i := range g.hand {
		g.hand[i] = deck.Draw()
	}
	g.rank = Evaluate(g.hand)
	return g
}

func (g *Game) Type() model.GameType { return model.GameVideoPoker }
func (g *Game) Terminal() bool { return g.terminal }
func (g *Game) Resolution() model.Resolution { return g.res }

// Progress - игрок сделал замену. Нетронутая рука по таймауту проигрывает
func (g *Game) Progress() bool { return g.drawn }

// Apply меняет неудержанные карты и завершает игру
func (g *Game) Apply(m model.Move) error {
	if g.terminal {
		return fmt.Errorf("%w: hand already drawn", model.ErrInvalidMove)
	}
	if m.Kind != model.MoveDraw {
		return fmt.Errorf("%w: video poker does not accept %q", model.ErrInvalidMove, m.Kind)
	}
	for i, hold := range m.Hold {
		if !hold {
			g.hand[i] = g.deck.Draw()
		}
	}
	g.drawn = true
	g.settle()
	return nil
}

// CashOut оценивает руку так, будто удержаны все карты
func (g *Game) CashOut() model.Resolution {
	if !g.terminal {
		g.settle()
	}
	return g.res
}

func (g *Game) settle() {
	g.terminal = true
	g.rank = Evaluate(g.hand)
	mult := Paytable[g.rank]
	switch {
	case mult > 1:
		g.res = model.Resolution{Result: model.ResultWin, Multiplier: mult}
	case mult == 1:
		g.res = model.Resolution{Result: model.ResultPush, Multiplier: mult}
	default:
		g.res = model.Resolution{Result: model.ResultLoss}
	}
}

func (g *Game) View() any {
	return View{Hand: g.hand, Rank: g.rank.String(), Terminal: g.terminal}
}
