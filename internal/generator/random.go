package generator

import (
	"math/rand/v2"

	"github.com/shopspring/decimal"
)

func choice[T any](r *rand.Rand, items []T) T {
	return items[r.IntN(len(items))]
}

// intBetween returns a uniform integer in [lo, hi].
func intBetween(r *rand.Rand, lo, hi int) int {
	return lo + r.IntN(hi-lo+1)
}

// uniform returns a uniform float in [lo, hi).
func uniform(r *rand.Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

func chance(r *rand.Rand, p float64) bool {
	return r.Float64() < p
}

// uniformFactor is uniform(lo, hi) as a decimal multiplier.
func uniformFactor(r *rand.Rand, lo, hi float64) decimal.Decimal {
	return decimal.NewFromFloat(uniform(r, lo, hi))
}

// weightedIndex picks an index with probability proportional to its weight.
// Weights must be non-negative with a positive sum.
func weightedIndex(r *rand.Rand, weights []float64) int {
	var total float64
	for _, w := range weights {
		total += w
	}

	x := r.Float64() * total
	last := 0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		if x < w {
			return i
		}
		x -= w
		last = i
	}
	return last
}

// sample returns k distinct elements of items in random order.
func sample[T any](r *rand.Rand, items []T, k int) []T {
	perm := r.Perm(len(items))
	out := make([]T, k)
	for i := 0; i < k; i++ {
		out[i] = items[perm[i]]
	}
	return out
}
