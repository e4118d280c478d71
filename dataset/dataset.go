// Package dataset generates the sorted integer arrays the benchmark
// strategies run against.
//
// Arrays are built once per run from uniform-random values in a half-open
// range [min, max), sorted ascending, and never mutated afterwards. The
// generator takes an explicit, optionally seeded RNG so runs can be made
// reproducible.
package dataset

import (
	"errors"
	"fmt"
	"slices"

	"github.com/hupe1980/seekbench/resource"
)

var (
	// ErrInvalidParameters is returned for a bad generator configuration
	// (zero length or an empty value range).
	ErrInvalidParameters = errors.New("invalid dataset parameters")

	// ErrMemoryBudget is returned when the configured memory budget does not
	// cover the requested array.
	ErrMemoryBudget = errors.New("dataset memory budget exceeded")
)

// SortedArray is an immutable-once-built, non-decreasing sequence of int32.
type SortedArray struct {
	values []int32
}

// NewSorted builds a SortedArray from the given values, sorting a copy.
// Intended for tests and fixed scenarios; Generate is the production path.
func NewSorted(values ...int32) *SortedArray {
	vs := slices.Clone(values)
	slices.Sort(vs)
	return &SortedArray{values: vs}
}

// Len returns the number of elements.
func (a *SortedArray) Len() int {
	return len(a.values)
}

// At returns the element at index i.
func (a *SortedArray) At(i int) int32 {
	return a.values[i]
}

// Values returns the backing slice. Callers must not modify it.
func (a *SortedArray) Values() []int32 {
	return a.values
}

// First returns the smallest element. Panics on an empty array.
func (a *SortedArray) First() int32 {
	return a.values[0]
}

// Last returns the largest element. Panics on an empty array.
func (a *SortedArray) Last() int32 {
	return a.values[len(a.values)-1]
}

// Middle returns the element at index Len()/2. Panics on an empty array.
func (a *SortedArray) Middle() int32 {
	return a.values[len(a.values)/2]
}

// Options configures a Generator.
type Options struct {
	// Seed for the RNG. 0 derives a seed from the current time.
	Seed int64

	// Controller enforces an optional memory budget for generated arrays.
	// Nil disables budget checks.
	Controller *resource.Controller
}

// Generator produces sorted random arrays.
type Generator struct {
	rng  *RNG
	ctrl *resource.Controller
}

// NewGenerator creates a Generator.
func NewGenerator(optFns ...func(o *Options)) *Generator {
	opts := Options{}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Generator{
		rng:  NewRNG(opts.Seed),
		ctrl: opts.Controller,
	}
}

// Seed returns the seed the generator's RNG was initialized with.
func (g *Generator) Seed() int64 {
	return g.rng.Seed()
}

// Generate produces n uniform-random int32 values in [minVal, maxVal),
// sorted ascending. It fails only on invalid parameters or when the
// configured memory budget cannot cover the allocation.
func (g *Generator) Generate(n int, minVal, maxVal int32) (*SortedArray, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: n must be positive, got %d", ErrInvalidParameters, n)
	}
	if minVal >= maxVal {
		return nil, fmt.Errorf("%w: min %d must be less than max %d", ErrInvalidParameters, minVal, maxVal)
	}

	bytes := int64(n) * 4
	if !g.ctrl.TryAcquireMemory(bytes) {
		return nil, fmt.Errorf("%w: need %d bytes", ErrMemoryBudget, bytes)
	}

	values := make([]int32, n)
	g.rng.FillInt32Range(values, minVal, maxVal)
	slices.Sort(values)

	return &SortedArray{values: values}, nil
}

// Release returns the array's memory reservation to the generator's
// controller. Call once the array is no longer needed.
func (g *Generator) Release(a *SortedArray) {
	g.ctrl.ReleaseMemory(int64(a.Len()) * 4)
}
