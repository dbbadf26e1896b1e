package catalog

import (
	"casino_engine/internal/game/rng"
	"casino_engine/internal/model"
	"strings"
	"sync"
)

type DoubleColor string

const (
	DoubleRed   DoubleColor = "red"
	DoubleBlack DoubleColor = "black"
	DoubleWhite DoubleColor = "white"
)

// Колесо из 15 секторов: 7 красных, 7 чёрных, 1 белый
var doubleWheel = []struct {
	Color  DoubleColor
	Weight int
	Mult   float64
}{
	{DoubleRed, 7, 2},
	{DoubleBlack, 7, 2},
	{DoubleWhite, 1, 14},
}

var doubleAliases = map[string]DoubleColor{
	"red":      DoubleRed,
	"vermelho": DoubleRed,
	"black":    DoubleBlack,
	"preto":    DoubleBlack,
	"white":    DoubleWhite,
	"branco":   DoubleWhite,
}

type Double struct {
	Color DoubleColor
}

type DoubleDetail struct {
	Color DoubleColor `json:"color"`
}

func ParseDoubleBet(s string) (Double, error) {
	c, ok := doubleAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return Double{}, invalid("unknown double color %q", s)
	}
	return Double{Color: c}, nil
}

func (Double) Type() model.GameType { return model.GameDouble }
func (Double) sealed() {}

func (g Double) Validate() error {
	switch g.Color {
	case DoubleRed, DoubleBlack, DoubleWhite:
		return nil
	}
	return invalid("unknown double color %q", g.Color)
}

func (Double) Sample(src rng.Source) DoubleColor {
	weights := make([]int, len(doubleWheel))
	for i, s := range doubleWheel {
		weights[i] = s.Weight
	}
	return doubleWheel[rng.Weighted(src, weights)].Color
}

func (g Double) Settle(c DoubleColor) Outcome {
	detail := DoubleDetail{Color: c}
	if c != g.Color {
		return outcome(g.Type(), 0, detail)
	}
	for _, s := range doubleWheel {
		if s.Color == c {
			return outcome(g.Type(), s.Mult, detail)
		}
	}
	return outcome(g.Type(), 0, detail)
}

func (g Double) Play(src rng.Source) Outcome {
	return g.Settle(g.Sample(src))
}

// DoubleHistoryLen - сколько последних выпадений хранится
const DoubleHistoryLen = 10

// DoubleHistory - скользящая история последних цветов
type DoubleHistory struct {
	mu   sync.Mutex
	last []DoubleColor
}

func NewDoubleHistory() *DoubleHistory {
	return &DoubleHistory{last: make([]DoubleColor, 0, DoubleHistoryLen)}
}

func (h *DoubleHistory) Push(c DoubleColor) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = append(h.last, c)
	if len(h.last) > DoubleHistoryLen {
		h.last = h.last[len(h.last)-DoubleHistoryLen:]
	}
}

// Last возвращает копию истории, от старых к новым
func (h *DoubleHistory) Last() []DoubleColor {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]DoubleColor(nil), h.last...)
}
