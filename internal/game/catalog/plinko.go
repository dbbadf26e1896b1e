package catalog

import (
	"casino_engine/internal/game/rng"
	"casino_engine/internal/model"
	"strings"
)

type PlinkoRisk string

const (
	PlinkoLow    PlinkoRisk = "low"
	PlinkoMedium PlinkoRisk = "medium"
	PlinkoHigh   PlinkoRisk = "high"
)

const plinkoRows = 8

// Множители корзин слева направо
var plinkoTables = map[PlinkoRisk][plinkoRows + 1]float64{
	PlinkoLow:    {5.6, 2.1, 1.1, 1, 0.5, 1, 1.1, 2.1, 5.6},
	PlinkoMedium: {13, 3, 1.3, 0.7, 0.4, 0.7, 1.3, 3, 13},
	PlinkoHigh:   {29, 4, 1.5, 0.3, 0.2, 0.3, 1.5, 4, 29},
}

var plinkoAliases = map[string]PlinkoRisk{
	"":       PlinkoLow,
	"low":    PlinkoLow,
	"baixo":  PlinkoLow,
	"medium": PlinkoMedium,
	"medio":  PlinkoMedium,
	"médio":  PlinkoMedium,
	"high":   PlinkoHigh,
	"alto":   PlinkoHigh,
}

type Plinko struct {
	Risk PlinkoRisk
}

type PlinkoDetail struct {
	Path   []int `json:"path"` // 0 - влево, 1 - вправо
	Bucket int   `json:"bucket"`
}

func ParsePlinkoBet(s string) (Plinko, error) {
	risk, ok := plinkoAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return Plinko{}, invalid("unknown plinko risk %q", s)
	}
	return Plinko{Risk: risk}, nil
}

func (Plinko) Type() model.GameType { return model.GamePlinko }
func (Plinko) sealed() {}

func (g Plinko) Validate() error {
	if _, ok := plinkoTables[g.Risk]; !ok {
		return invalid("unknown plinko risk %q", g.Risk)
	}
	return nil
}

func (Plinko) Sample(src rng.Source) []int {
	path := make([]int, plinkoRows)
	for i := range path {
		path[i] = src.IntN(2)
	}
	return path
}

// Settle: номер корзины - число отскоков вправо
func (g Plinko) Settle(path []int) Outcome {
	bucket := 0
	for _, p := range path {
		bucket += p
	}
	table := plinkoTables[g.Risk]
	return outcome(g.Type(), table[bucket], PlinkoDetail{Path: path, Bucket: bucket})
}

func (g Plinko) Play(src rng.Source) Outcome {
	return g.Settle(g.Sample(src))
}
