package catalog

import (
	"casino_engine/internal/game/rng"
	"casino_engine/internal/model"
)

const scratchCells = 9

// Призовые уровни на 1000 билетов
var scratchTiers = []struct {
	Mult   float64
	Weight int
}{
	{0, 700},
	{1, 150},
	{2, 80},
	{3, 35},
	{5, 20},
	{10, 10},
	{50, 4},
	{100, 1},
}

var scratchSymbols = []symbol{
	{Name: "🍀", Value: 1},
	{Name: "🍒", Value: 2},
	{Name: "🔔", Value: 3},
	{Name: "💵", Value: 5},
	{Name: "💰", Value: 10},
	{Name: "👑", Value: 50},
	{Name: "💎", Value: 100},
}

type Scratch struct{}

type ScratchDetail struct {
	Card [scratchCells]string `json:"card"`
}

func (Scratch) Type() model.GameType { return model.GameScratch }
func (Scratch) sealed() {}
func (Scratch) Validate() error { return nil }

// Sample разыгрывает приз и рисует под него билет: три призовых символа,
// остальные символы встречаются не больше двух раз
func (Scratch) Sample(src rng.Source) [scratchCells]string {
	weights := make([]int, len(scratchTiers))
	for i, t := range scratchTiers {
		weights[i] = t.Weight
	}
	prize := scratchTiers[rng.Weighted(src, weights)].Mult

	cells := make([]string, 0, scratchCells)
	used := make(map[string]int)
	for _, s := range scratchSymbols {
		if s.Value == prize {
			cells = append(cells, s.Name, s.Name, s.Name)
			used[s.Name] = 3
		}
	}
	for len(cells) < scratchCells {
		s := scratchSymbols[src.IntN(len(scratchSymbols))].Name
		if used[s] >= 2 {
			continue
		}
		used[s]++
		cells = append(cells, s)
	}
	src.Shuffle(len(cells), func(i, j int) { cells[i], cells[j] = cells[j], cells[i] })

	var card [scratchCells]string
	copy(card[:], cells)
	return card
}

// Settle платит за самый дорогой символ, открытый хотя бы трижды
func (g Scratch) Settle(card [scratchCells]string) Outcome {
	counts := make(map[string]int, scratchCells)
	for _, c := range card {
		counts[c]++
	}
	var mult float64
	for name, n := range counts {
		if n >= 3 {
			mult = max(mult, symbolValue(scratchSymbols, name))
		}
	}
	return outcome(g.Type(), mult, ScratchDetail{Card: card})
}

func (g Scratch) Play(src rng.Source) Outcome {
	return g.Settle(g.Sample(src))
}
