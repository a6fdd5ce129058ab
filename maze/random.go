package maze

import (
	"errors"
	"math/rand"
)

// ErrInvalidRange reports a request for a random value over an empty range.
// It is raised as a panic: an empty range is a programming error in the
// caller, not a runtime condition generation can recover from.
var ErrInvalidRange = errors.New("random range is empty")

// Rand is the source of randomness maze generation draws from. Implementations
// must be deterministic for a fixed seed so the same seed always reproduces
// the same maze.
type Rand interface {
	// IntRange returns a uniformly distributed integer in [lo, hi).
	// Panics with ErrInvalidRange when lo >= hi.
	IntRange(lo, hi int) int
}

// SeededRand is a Rand backed by math/rand with an explicit seeded source.
// Distinct instances share no state; re-seeding means constructing a new one.
type SeededRand struct {
	r *rand.Rand
}

// NewRand creates a SeededRand from the given seed.
func NewRand(seed int64) *SeededRand {
	return &SeededRand{r: rand.New(rand.NewSource(seed))}
}

// IntRange returns a uniformly distributed integer in [lo, hi).
func (s *SeededRand) IntRange(lo, hi int) int {
	if lo >= hi {
		panic(ErrInvalidRange)
	}
	return lo + s.r.Intn(hi-lo)
}
