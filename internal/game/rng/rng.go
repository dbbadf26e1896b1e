// Package rng - источник случайности для игр. Обычный некриптографический генератор
package rng

import "math/rand/v2"

type Source interface {
	IntN(n int) int
	Float64() float64
	Perm(n int) []int
	Shuffle(n int, swap func(i, j int))
}

type global struct{}

// Default - потокобезопасный источник на глобальном генераторе math/rand/v2
func Default() Source {
	return global{}
}

// Seeded - детерминированный источник. Не потокобезопасен
func Seeded(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func (global) IntN(n int) int { return rand.IntN(n) }
func (global) Float64() float64 { return rand.Float64() }
func (global) Perm(n int) []int { return rand.Perm(n) }
func (global) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

// Weighted выбирает индекс пропорционально весам. Возвращает -1, если сумма весов нулевая
func Weighted(src Source, weights []int) int {
	total := 0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return -1
	}
	n := src.IntN(total)
	for i, w := range weights {
		if n < w {
			return i
		}
		n -= w
	}
	return len(weights) - 1
}
