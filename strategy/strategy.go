// Package strategy implements the interchangeable search algorithms the
// harness benchmarks: linear, binary, jump and interpolation search.
//
// All strategies share one contract: given a sorted, immutable array and
// a target value they return the index of an equal element, or report
// that no such element exists. Absence is a normal outcome, not an
// error, and every strategy terminates on empty and single-element
// arrays.
package strategy

import "github.com/hupe1980/seekbench/dataset"

// Result is the outcome of a single search.
type Result struct {
	// Found reports whether an element equal to the target exists.
	Found bool

	// Index is the position of a matching element. Only meaningful when
	// Found is true. When the target occurs more than once, any matching
	// index is valid.
	Index int
}

// NotFound is the zero Result, reported when the target is absent.
var NotFound = Result{}

// FoundAt returns a Result locating the target at index i.
func FoundAt(i int) Result {
	return Result{Found: true, Index: i}
}

// Strategy is one interchangeable search algorithm.
type Strategy interface {
	// Name returns the strategy's canonical name (e.g. "binary").
	Name() string

	// Search locates target in arr. It must not mutate arr and must
	// terminate for all inputs.
	Search(arr *dataset.SortedArray, target int32) Result
}

// All returns the full strategy set in canonical benchmark order:
// linear, binary, jump, interpolation.
func All() []Strategy {
	return []Strategy{
		Linear{},
		Binary{},
		Jump{},
		Interpolation{},
	}
}
