package catalog

import (
	"casino_engine/internal/game/rng"
	"casino_engine/internal/model"
)

var tigrinhoSymbols = []symbol{
	{Name: "🍊", Weight: 30, Value: 1},
	{Name: "🔔", Weight: 25, Value: 2},
	{Name: "💰", Weight: 20, Value: 3},
	{Name: "🧧", Weight: 12, Value: 6},
	{Name: "💎", Weight: 8, Value: 10},
	{Name: "🐯", Weight: 5, Value: 25},
}

// Линии сетки 3x3: строки, столбцы, две диагонали. Клетка = row*3 + col
var tigrinhoLines = [][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

type Tigrinho struct{}

type TigrinhoLine struct {
	Cells  [3]int  `json:"cells"`
	Symbol string  `json:"symbol"`
	Value  float64 `json:"value"`
}

type TigrinhoDetail struct {
	Grid  [9]string      `json:"grid"`
	Lines []TigrinhoLine `json:"lines"`
}

func (Tigrinho) Type() model.GameType { return model.GameTigrinho }
func (Tigrinho) sealed() {}
func (Tigrinho) Validate() error { return nil }

func (Tigrinho) Sample(src rng.Source) [9]string {
	weights := symbolWeights(tigrinhoSymbols)
	var grid [9]string
	for i := range grid {
		grid[i] = tigrinhoSymbols[rng.Weighted(src, weights)].Name
	}
	return grid
}

// Settle суммирует множители всех совпавших линий
func (g Tigrinho) Settle(grid [9]string) Outcome {
	detail := TigrinhoDetail{Grid: grid}
	var mult float64
	for _, line := range tigrinhoLines {
		s := grid[line[0]]
		if s != grid[line[1]] || s != grid[line[2]] {
			continue
		}
		v := symbolValue(tigrinhoSymbols, s)
		mult += v
		detail.Lines = append(detail.Lines, TigrinhoLine{Cells: line, Symbol: s, Value: v})
	}
	return outcome(g.Type(), mult, detail)
}

func (g Tigrinho) Play(src rng.Source) Outcome {
	return g.Settle(g.Sample(src))
}
