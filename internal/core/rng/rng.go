// Package rng provides the single seeded random stream shared by map
// generation, monster AI and spawn rolls.
package rng

import (
	"fmt"
	"math/rand/v2"
)

// RNG is a deterministic dice roller. Not safe for concurrent use; the
// simulation is single-threaded.
type RNG struct {
	src *rand.PCG
	r   *rand.Rand
}

// New returns a generator seeded with seed.
func New(seed uint64) *RNG {
	src := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	return &RNG{src: src, r: rand.New(src)}
}

// Roll throws n dice with the given number of sides and returns the sum.
func (g *RNG) Roll(n, sides int) int {
	if sides < 1 {
		panic(fmt.Sprintf("rng: roll with %d sides", sides))
	}
	total := 0
	for i := 0; i < n; i++ {
		total += g.r.IntN(sides) + 1
	}
	return total
}

// Range returns a value in [lo, hi).
func (g *RNG) Range(lo, hi int) int {
	if hi <= lo {
		panic(fmt.Sprintf("rng: empty range [%d, %d)", lo, hi))
	}
	return lo + g.r.IntN(hi-lo)
}

// State serializes the generator position for snapshots.
func (g *RNG) State() ([]byte, error) {
	return g.src.MarshalBinary()
}

// SetState restores a position captured with State.
func (g *RNG) SetState(b []byte) error {
	if err := g.src.UnmarshalBinary(b); err != nil {
		return fmt.Errorf("restore rng state: %w", err)
	}
	return nil
}
