package catalog

import (
	"casino_engine/internal/game/rng"
	"casino_engine/internal/model"
)

// Сектора колеса: множитель и вес
var wheelSegments = []struct {
	Mult   float64
	Weight int
}{
	{0, 28},
	{0.5, 20},
	{1.2, 22},
	{1.5, 15},
	{2, 10},
	{3, 4},
	{5, 1},
}

type Wheel struct{}

type WheelDetail struct {
	Segment    int     `json:"segment"`
	Multiplier float64 `json:"multiplier"`
}

func (Wheel) Type() model.GameType { return model.GameWheel }
func (Wheel) sealed() {}
func (Wheel) Validate() error { return nil }

// Sample возвращает индекс сектора
func (Wheel) Sample(src rng.Source) int {
	weights := make([]int, len(wheelSegments))
	for i, s := range wheelSegments {
		weights[i] = s.Weight
	}
	return rng.Weighted(src, weights)
}

func (g Wheel) Settle(segment int) Outcome {
	if segment < 0 || segment >= len(wheelSegments) {
		return outcome(g.Type(), 0, WheelDetail{Segment: segment})
	}
	mult := wheelSegments[segment].Mult
	return outcome(g.Type(), mult, WheelDetail{Segment: segment, Multiplier: mult})
}

func (g Wheel) Play(src rng.Source) Outcome {
	return g.Settle(g.Sample(src))
}
