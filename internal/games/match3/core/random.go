package core

import "math/rand"

// Source supplies the randomness used for board fills and refills.
type Source interface {
	// Intn returns a random int in [0, n).
	Intn(n int) int
}

// NewSource returns a math/rand backed Source seeded with seed.
func NewSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}
