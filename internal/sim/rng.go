package sim

import (
	"math/rand"
	"time"
)

// RNG wraps a seeded random source so a whole session draws from one
// deterministic stream. The call counter makes divergence between two
// supposedly identical sessions easy to spot in tests.
type RNG struct {
	rng   *rand.Rand
	seed  int64
	calls uint64
}

// NewRNG creates a seeded source. Seed 0 means "use the wall clock".
func NewRNG(seed int64) *RNG {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RNG{
		rng:  rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

func (r *RNG) Seed() int64   { return r.seed }
func (r *RNG) Calls() uint64 { return r.calls }

// Float64 returns a uniform value in [0, 1).
func (r *RNG) Float64() float64 {
	r.calls++
	return r.rng.Float64()
}

// Intn returns a uniform value in [0, n).
func (r *RNG) Intn(n int) int {
	r.calls++
	return r.rng.Intn(n)
}

// Range returns a uniform value in [lo, hi).
func (r *RNG) Range(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + r.Float64()*(hi-lo)
}

// PickWeighted draws one index with probability proportional to its weight.
// Returns -1 when no index has positive weight.
func (r *RNG) PickWeighted(weights []float64) int {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return -1
	}

	roll := r.Float64() * total
	acc := 0.0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		acc += w
		if roll < acc {
			return i
		}
	}
	// Float rounding can land exactly on total; fall back to the last
	// positive-weight entry.
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return i
		}
	}
	return -1
}

// SampleWeighted draws up to n distinct indices without replacement:
// cumulative-weight draw, remove the chosen entry, repeat. The draw stops
// early when no positive weight remains.
func (r *RNG) SampleWeighted(weights []float64, n int) []int {
	pool := make([]float64, len(weights))
	copy(pool, weights)

	var out []int
	for len(out) < n {
		i := r.PickWeighted(pool)
		if i < 0 {
			break
		}
		out = append(out, i)
		pool[i] = 0
	}
	return out
}
