// Package cards - колода и карты для карточных игр
package cards

import (
	"casino_engine/internal/game/rng"
	"fmt"
)

type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

const (
	Ace   = 1
	Jack  = 11
	Queen = 12
	King  = 13
)

// ReshuffleThreshold - при меньшем остатке колода пересобирается перед раздачей
const ReshuffleThreshold = 10

type Card struct {
	Rank int  `json:"rank"` // 1 (туз) .. 13 (король)
	Suit Suit `json:"suit"`
}

var rankNames = [...]string{"", "A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}
var suitNames = [...]string{"♠", "♥", "♦", "♣"}

func (c Card) String() string {
	if c.Rank < Ace || c.Rank > King || c.Suit < Spades || c.Suit > Clubs {
		return fmt.Sprintf("?%d", c.Rank)
	}
	return rankNames[c.Rank] + suitNames[c.Suit]
}

// FullDeck - 52 карты по порядку
func FullDeck() []Card {
	out := make([]Card, 0, 52)
	for s := Spades; s <= Clubs; s++ {
		for r := Ace; r <= King; r++ {
			out = append(out, Card{Rank: r, Suit: s})
		}
	}
	return out
}

// Deck - колода, из которой карты снимаются сверху
type Deck struct {
	src   rng.Source
	cards []Card
}

// NewDeck - перемешанная колода из 52 карт
func NewDeck(src rng.Source) *Deck {
	d := &Deck{src: src}
	d.reshuffle()
	return d
}

// NewStackedDeck - колода с заданным порядком карт (первая снимается первой)
func NewStackedDeck(src rng.Source, cards []Card) *Deck {
	return &Deck{src: src, cards: append([]Card(nil), cards...)}
}

func (d *Deck) reshuffle() {
	d.cards = FullDeck()
	d.src.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

func (d *Deck) Remaining() int {
	return len(d.cards)
}

// Draw снимает верхнюю карту, пересобирая колоду, если осталось меньше ReshuffleThreshold
func (d *Deck) Draw() Card {
	if len(d.cards) < ReshuffleThreshold {
		d.reshuffle()
	}
	c := d.cards[0]
	d.cards = d.cards[1:]
	return c
}

// RandomRank - ранг из бесконечной колоды
func RandomRank(src rng.Source) int {
	return src.IntN(King) + 1
}
