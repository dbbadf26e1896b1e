package catalog

import (
	"casino_engine/internal/game/rng"
	"casino_engine/internal/model"
	"sort"
)

const (
	kenoPool     = 40
	kenoDrawn    = 10
	kenoMaxPicks = 10
)

// kenoPayouts[выбрано][совпало] - множитель
var kenoPayouts = map[int]map[int]float64{
	1:  {1: 3.8},
	2:  {1: 1, 2: 9},
	3:  {2: 3, 3: 35},
	4:  {2: 1.5, 3: 8, 4: 80},
	5:  {2: 1, 3: 4, 4: 20, 5: 200},
	6:  {3: 3, 4: 10, 5: 60, 6: 500},
	7:  {3: 2, 4: 6, 5: 25, 6: 150, 7: 1000},
	8:  {4: 4, 5: 15, 6: 60, 7: 400, 8: 2000},
	9:  {4: 3, 5: 8, 6: 30, 7: 150, 8: 1000, 9: 5000},
	10: {5: 5, 6: 20, 7: 80, 8: 500, 9: 2500, 10: 10000},
}

type Keno struct {
	Picks []int
}

type KenoDetail struct {
	Drawn   []int `json:"drawn"`
	Picks   []int `json:"picks"`
	Matches []int `json:"matches"`
}

func (Keno) Type() model.GameType { return model.GameKeno }
func (Keno) sealed() {}

func (g Keno) Validate() error {
	if len(g.Picks) < 1 || len(g.Picks) > kenoMaxPicks {
		return invalid("keno needs 1-%d numbers, got %d", kenoMaxPicks, len(g.Picks))
	}
	seen := make(map[int]bool, len(g.Picks))
	for _, p := range g.Picks {
		if p < 1 || p > kenoPool {
			return invalid("keno number %d out of range", p)
		}
		if seen[p] {
			return invalid("keno number %d picked twice", p)
		}
		seen[p] = true
	}
	return nil
}

// Sample тянет 10 разных чисел из 1-40 без возвращения
func (Keno) Sample(src rng.Source) []int {
	perm := src.Perm(kenoPool)[:kenoDrawn]
	drawn := make([]int, kenoDrawn)
	for i, p := range perm {
		drawn[i] = p + 1
	}
	sort.Ints(drawn)
	return drawn
}

func (g Keno) Settle(drawn []int) Outcome {
	hit := make(map[int]bool, len(drawn))
	for _, d := range drawn {
		hit[d] = true
	}
	var matches []int
	for _, p := range g.Picks {
		if hit[p] {
			matches = append(matches, p)
		}
	}
	detail := KenoDetail{Drawn: drawn, Picks: g.Picks, Matches: matches}
	return outcome(g.Type(), kenoPayouts[len(g.Picks)][len(matches)], detail)
}

func (g Keno) Play(src rng.Source) Outcome {
	return g.Settle(g.Sample(src))
}
