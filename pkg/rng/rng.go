// Package rng centralizes the two random primitives the generator needs
// so the rest of the kernel stays pure against a single seam. The
// generator itself never calls math/rand directly.
package rng

import "math/rand/v2"

// Source produces a uniform float64 in [0, 1). Any implementation
// satisfying this is a valid injectable random collaborator - tests
// typically supply a deterministic sequence.
type Source interface {
	Float64() float64
}

// PCG wraps math/rand/v2's PCG generator for reproducible randomization.
type PCG struct {
	r *rand.Rand
}

// New creates a seeded Source. The same seed always produces the same
// sequence of draws, which is what makes generation replayable.
func New(seed uint64) *PCG {
	return &PCG{r: rand.New(rand.NewPCG(seed, seed^0xdeadbeef))}
}

// Float64 returns a uniform value in [0, 1).
func (p *PCG) Float64() float64 { return p.r.Float64() }

// Percentage draws a uniform integer in [1, 100], the "roll" the weighted
// chooser compares against cumulative percentages.
func Percentage(src Source) int {
	return 1 + int(src.Float64()*100)
}

// Between draws a uniform integer in [min, max] inclusive. If max < min
// the arguments are swapped so the call is always well-defined.
func Between(src Source, min, max int) int {
	if max < min {
		min, max = max, min
	}
	span := max - min + 1
	return min + int(src.Float64()*float64(span))
}
