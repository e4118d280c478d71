package dataset

import (
	"math/rand"
	"sync"
	"time"
)

// RNG encapsulates a seeded pseudo-random number generator.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
// A seed of 0 derives the seed from the current time.
func NewRNG(seed int64) *RNG {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Int32Range returns a pseudo-random int32 in [minVal, maxVal).
func (r *RNG) Int32Range(minVal, maxVal int32) int32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return minVal + r.rand.Int31n(maxVal-minVal)
}

// FillInt32Range fills dst with random values in [minVal, maxVal).
// Locks only once per call (preferred over calling Int32Range in a loop).
func (r *RNG) FillInt32Range(dst []int32, minVal, maxVal int32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	span := maxVal - minVal
	for i := range dst {
		dst[i] = minVal + r.rand.Int31n(span)
	}
}
