// Package mines - поле N×N с минами: открываем клетки, пока не решим забрать выигрыш
package mines

import (
	"casino_engine/internal/game/rng"
	"casino_engine/internal/model"
	"fmt"
	"math"
	"strings"
)

// Size - сторона поля
const Size = 5

type Difficulty string

const (
	Easy    Difficulty = "easy"
	Medium  Difficulty = "medium"
	Hard    Difficulty = "hard"
	Extreme Difficulty = "extreme"
)

var minesByDifficulty = map[Difficulty]int{
	Easy:    3,
	Medium:  5,
	Hard:    10,
	Extreme: 20,
}

func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if d == "" {
		return Medium, nil
	}
	if _, ok := minesByDifficulty[d]; !ok {
		return "", fmt.Errorf("%w: unknown mines difficulty %q", model.ErrInvalidWager, s)
	}
	return d, nil
}

type Game struct {
	mines    []bool
	revealed []bool
	count    int
	safe     int
	base     float64
	terminal bool
	res      model.Resolution
}

type View struct {
	Size       int     `json:"size"`
	Revealed   []int   `json:"revealed"`
	Mines      []int   `json:"mines,omitempty"` // только после окончания игры
	Multiplier float64 `json:"multiplier"`
	Next       float64 `json:"next_multiplier"`
	Terminal   bool    `json:"terminal"`
}

// New расставляет мины по уровню сложности
func New(src rng.Source, d Difficulty) *Game {
	return WithLayout(src.Perm(Size * Size)[:minesByDifficulty[d]])
}

// WithLayout - поле с заданными клетками мин
func WithLayout(layout []int) *Game {
	cells := Size * Size
	g := &Game{
		mines:    make([]bool, cells),
		revealed: make([]bool, cells),
	}
	for _, i := range layout {
		g.mines[i] = true
	}
	k := len(layout)
	g.safe = cells - k
	g.base = Base(k)
	return g
}

// Base - множитель за одну безопасную клетку: 1 + 0.5·K/(N²−K)
func Base(k int) float64 {
	return 1 + 0.5*float64(k)/float64(Size*Size-k)
}

func (g *Game) Type() model.GameType { return model.GameMines }
func (g *Game) Terminal() bool { return g.terminal }
func (g *Game) Resolution() model.Resolution { return g.res }
func (g *Game) Progress() bool { return g.count > 0 }

// Multiplier - текущий множитель base^revealed
func (g *Game) Multiplier() float64 {
	return math.Pow(g.base, float64(g.count))
}

func (g *Game) Apply(m model.Move) error {
	if g.terminal {
		return fmt.Errorf("%w: mines round is over", model.ErrInvalidMove)
	}
	switch m.Kind {
	case model.MoveReveal:
		if m.Index < 0 || m.Index >= len(g.mines) {
			return fmt.Errorf("%w: cell %d outside the field", model.ErrInvalidMove, m.Index)
		}
		if g.revealed[m.Index] {
			return fmt.Errorf("%w: cell %d already revealed", model.ErrInvalidMove, m.Index)
		}
		g.revealed[m.Index] = true
		if g.mines[m.Index] {
			g.terminal = true
			g.res = model.Resolution{Result: model.ResultLoss}
			return nil
		}
		g.count++
		if g.count == g.safe {
			g.CashOut()
		}
		return nil
	case model.MoveCashOut:
		if g.count == 0 {
			return fmt.Errorf("%w: reveal at least one cell before cashing out", model.ErrInvalidMove)
		}
		g.CashOut()
		return nil
	default:
		return fmt.Errorf("%w: mines does not accept %q", model.ErrInvalidMove, m.Kind)
	}
}

// CashOut фиксирует выигрыш по текущему множителю
func (g *Game) CashOut() model.Resolution {
	if !g.terminal {
		g.terminal = true
		g.res = model.Resolution{Result: model.ResultWin, Multiplier: g.Multiplier()}
	}
	return g.res
}

func (g *Game) View() any {
	v := View{
		Size:       Size,
		Revealed:   []int{},
		Multiplier: g.Multiplier(),
		Next:       g.Multiplier() * g.base,
		Terminal:   g.terminal,
	}
	for i, r := range g.revealed {
		if r {
			v.Revealed = append(v.Revealed, i)
		}
		if g.terminal && g.mines[i] {
			v.Mines = append(v.Mines, i)
		}
	}
	if g.terminal {
		v.Multiplier = g.res.Multiplier
	}
	return v
}
