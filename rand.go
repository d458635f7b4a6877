package main

import (
	"math/rand/v2"
)

// RandomSource is everything the maze generator needs from a random number
// generator. Both *Rand and *rand.Rand from math/rand/v2 satisfy it.
type RandomSource interface {
	// IntN returns a uniformly distributed integer in [0, n). It panics if
	// n <= 0.
	IntN(n int) int
	// Shuffle permutes n elements uniformly at random using swap.
	Shuffle(n int, swap func(i, j int))
}

// Rand is a deterministic random number generator. Its whole state is held by
// value, so copying a Rand produces an independent generator that will output
// the same sequence as the original from that point on.
type Rand struct {
	pcg rand.PCG
}

// The second PCG seed word is fixed so that a single uint64 fully determines
// the generated sequence.
const randStream = 0x9e3779b97f4a7c15

func NewRand(seed uint64) (r Rand) {
	r.pcg.Seed(seed, randStream)
	return
}

func (r *Rand) gen() *rand.Rand {
	return rand.New(&r.pcg)
}

func (r *Rand) IntN(n int) int {
	return r.gen().IntN(n)
}

func (r *Rand) Shuffle(n int, swap func(i, j int)) {
	r.gen().Shuffle(n, swap)
}
