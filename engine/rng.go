package engine

import "math/rand"

// Dice is the engine's only source of randomness. Roll returns a value in
// [1, sides]. Tests substitute fixed dice.
type Dice interface {
	Roll(sides int) int
}

// RNG is a seeded Dice with position tracking so a save can reproduce the
// exact sequence. Position counts draws from the underlying source, not
// Roll calls, since one Roll may draw more than once.
type RNG struct {
	seed int64
	src  *countingSource
	r    *rand.Rand
}

type countingSource struct {
	rand.Source
	n int64
}

func (s *countingSource) Int63() int64 {
	s.n++
	return s.Source.Int63()
}

// NewRNG creates a new deterministic RNG from a seed.
func NewRNG(seed int64) *RNG {
	src := &countingSource{Source: rand.NewSource(seed)}
	return &RNG{seed: seed, src: src, r: rand.New(src)}
}

// Roll returns a random integer in [1, sides]. Fewer than two sides
// always rolls 1 without drawing.
func (r *RNG) Roll(sides int) int {
	if sides < 2 {
		return 1
	}
	return r.r.Intn(sides) + 1
}

// Seed returns the seed the RNG was created with.
func (r *RNG) Seed() int64 { return r.seed }

// Position returns the number of draws made since creation.
func (r *RNG) Position() int64 { return r.src.n }

// RestoreRNG creates an RNG and advances it to the given position.
// This reproduces the exact RNG state for save/load.
func RestoreRNG(seed int64, position int64) *RNG {
	rng := NewRNG(seed)
	for rng.src.n < position {
		rng.src.Int63()
	}
	return rng
}
