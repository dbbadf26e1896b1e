// Package tower - башня из уровней: на каждом уровне выбираем плитку, пока не дойдём до верха
package tower

import (
	"casino_engine/internal/game/rng"
	"casino_engine/internal/model"
	"fmt"
	"math"
	"strings"
)

const (
	Levels = 8

	baseMult = 1.0
	// после пятого уровня множитель растёт ещё на 10% за уровень
	bonusFrom = 5
	bonusRate = 1.1
)

type Difficulty string

const (
	Easy    Difficulty = "easy"
	Medium  Difficulty = "medium"
	Hard    Difficulty = "hard"
	Extreme Difficulty = "extreme"
)

type rules struct {
	Tiles int
	Safe  int
	Rate  float64
}

var rulesByDifficulty = map[Difficulty]rules{
	Easy:    {Tiles: 4, Safe: 3, Rate: 0.15},
	Medium:  {Tiles: 3, Safe: 2, Rate: 0.35},
	Hard:    {Tiles: 3, Safe: 1, Rate: 1.0},
	Extreme: {Tiles: 4, Safe: 1, Rate: 2.0},
}

func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if d == "" {
		return Medium, nil
	}
	if _, ok := rulesByDifficulty[d]; !ok {
		return "", fmt.Errorf("%w: unknown tower difficulty %q", model.ErrInvalidWager, s)
	}
	return d, nil
}

type Game struct {
	rules    rules
	safe     [Levels][]bool
	picks    []int
	level    int
	terminal bool
	res      model.Resolution
}

type View struct {
	Level      int     `json:"level"`
	Levels     int     `json:"levels"`
	Tiles      int     `json:"tiles"`
	Picks      []int   `json:"picks"`
	Safe       [][]int `json:"safe,omitempty"` // только после окончания игры
	Multiplier float64 `json:"multiplier"`
	Next       float64 `json:"next_multiplier"`
	Terminal   bool    `json:"terminal"`
}

// New раскладывает безопасные плитки на каждом уровне
func New(src rng.Source, d Difficulty) *Game {
	r := rulesByDifficulty[d]
	layout := make([][]int, Levels)
	for i := range layout {
		layout[i] = src.Perm(r.Tiles)[:r.Safe]
	}
	return WithLayout(d, layout)
}

// WithLayout - башня с заданными безопасными плитками по уровням
func WithLayout(d Difficulty, layout [][]int) *Game {
	g := &Game{rules: rulesByDifficulty[d]}
	for lvl := range g.safe {
		g.safe[lvl] = make([]bool, g.rules.Tiles)
		if lvl < len(layout) {
			for _, t := range layout[lvl] {
				g.safe[lvl][t] = true
			}
		}
	}
	return g
}

// Multiplier после прохождения level уровней: (base + level·rate) с надбавкой за уровни выше пятого
func Multiplier(d Difficulty, level int) float64 {
	return multiplier(rulesByDifficulty[d], level)
}

func multiplier(r rules, level int) float64 {
	m := baseMult + float64(level)*r.Rate
	if level > bonusFrom {
		m *= math.Pow(bonusRate, float64(level-bonusFrom))
	}
	return m
}

func (g *Game) Type() model.GameType { return model.GameTower }
func (g *Game) Terminal() bool { return g.terminal }
func (g *Game) Resolution() model.Resolution { return g.res }
func (g *Game) Progress() bool { return g.level > 0 }
func (g *Game) Level() int { return g.level }

func (g *Game) Apply(m model.Move) error {
	if g.terminal {
		return fmt.Errorf("%w: tower round is over", model.ErrInvalidMove)
	}
	switch m.Kind {
	case model.MovePick:
		if m.Index < 0 || m.Index >= g.rules.Tiles {
			return fmt.Errorf("%w: tile %d outside the level", model.ErrInvalidMove, m.Index)
		}
		g.picks = append(g.picks, m.Index)
		if !g.safe[g.level][m.Index] {
			g.terminal = true
			g.res = model.Resolution{Result: model.ResultLoss}
			return nil
		}
		g.level++
		if g.level == Levels {
			g.CashOut()
		}
		return nil
	case model.MoveCashOut:
		if g.level == 0 {
			return fmt.Errorf("%w: clear at least one level before cashing out", model.ErrInvalidMove)
		}
		g.CashOut()
		return nil
	default:
		return fmt.Errorf("%w: tower does not accept %q", model.ErrInvalidMove, m.Kind)
	}
}

// CashOut фиксирует выигрыш по пройденным уровням
func (g *Game) CashOut() model.Resolution {
	if !g.terminal {
		g.terminal = true
		g.res = model.Resolution{Result: model.ResultWin, Multiplier: multiplier(g.rules, g.level)}
	}
	return g.res
}

func (g *Game) View() any {
	v := View{
		Level:      g.level,
		Levels:     Levels,
		Tiles:      g.rules.Tiles,
		Picks:      append([]int{}, g.picks...),
		Multiplier: multiplier(g.rules, g.level),
		Next:       multiplier(g.rules, g.level+1),
		Terminal:   g.terminal,
	}
	if g.terminal {
		v.Multiplier = g.res.Multiplier
		for _, level := range g.safe {
			var tiles []int
			for t, ok := range level {
				if ok {
					tiles = append(tiles, t)
				}
			}
			v.Safe = append(v.Safe, tiles)
		}
	}
	return v
}
