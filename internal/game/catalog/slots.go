package catalog

import (
	"casino_engine/internal/game/rng"
	"casino_engine/internal/model"
)

type symbol struct {
	Name   string
	Weight int
	Value  float64
}

func symbolWeights(table []symbol) []int {
	w := make([]int, len(table))
	for i, s := range table {
		w[i] = s.Weight
	}
	return w
}

func symbolValue(table []symbol, name string) float64 {
	for _, s := range table {
		if s.Name == name {
			return s.Value
		}
	}
	return 0
}

// Символы барабана: вес выпадения и множитель за три в ряд
var slotSymbols = []symbol{
	{Name: "🍒", Weight: 20, Value: 1.5},
	{Name: "🍋", Weight: 18, Value: 2},
	{Name: "🍊", Weight: 16, Value: 3},
	{Name: "🍇", Weight: 14, Value: 4},
	{Name: "🔔", Weight: 12, Value: 6},
	{Name: "⭐", Weight: 10, Value: 10},
	{Name: "💎", Weight: 6, Value: 20},
	{Name: "7️⃣", Weight: 4, Value: 50},
}

const slotReels = 3

type Slots struct{}

type SlotsDetail struct {
	Reels []string `json:"reels"`
}

func (Slots) Type() model.GameType { return model.GameSlots }
func (Slots) sealed() {}
func (Slots) Validate() error { return nil }

// Sample крутит барабаны независимо друг от друга
func (Slots) Sample(src rng.Source) []string {
	weights := symbolWeights(slotSymbols)
	reels := make([]string, slotReels)
	for i := range reels {
		reels[i] = slotSymbols[rng.Weighted(src, weights)].Name
	}
	return reels
}

// Settle: три одинаковых - полный множитель символа, два одинаковых - половина
func (g Slots) Settle(reels []string) Outcome {
	counts := make(map[string]int, len(reels))
	for _, r := range reels {
		counts[r]++
	}

	var mult float64
	for name, n := range counts {
		switch {
		case n >= 3:
			mult = max(mult, symbolValue(slotSymbols, name))
		case n == 2:
			mult = max(mult, symbolValue(slotSymbols, name)/2)
		}
	}
	return outcome(g.Type(), mult, SlotsDetail{Reels: reels})
}

func (g Slots) Play(src rng.Source) Outcome {
	return g.Settle(g.Sample(src))
}
