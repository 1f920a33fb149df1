package util

import "math/rand"

// RNG struct encapsulates the random number generator and seed.
type RNG struct {
	rand *rand.Rand
	seed int64
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Intn returns a random int in [0, n).
func (r *RNG) Intn(n int) int { return r.rand.Intn(n) }

// Ints generates n random ints in [0, max) using the given RNG.
func (r *RNG) Ints(n, max int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = r.rand.Intn(max)
	}
	return out
}

// Bytes generates n random bytes using the given RNG.
func (r *RNG) Bytes(n int) []byte {
	out := make([]byte, n)
	r.rand.Read(out)
	return out
}
