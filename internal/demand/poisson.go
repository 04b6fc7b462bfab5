package demand

import (
	"math"
	"math/rand"
)

// poisson draws a Poisson-distributed value using Knuth's multiplication
// method. Runtime grows with lambda, which is fine for the small rates used
// here, and the draw is deterministic for a seeded rng.
func poisson(rng *rand.Rand, lambda float64) int {
	threshold := math.Exp(-lambda)
	k := 0
	p := 1.0
	for {
		p *= rng.Float64()
		if p <= threshold {
			return k
		}
		k++
	}
}
