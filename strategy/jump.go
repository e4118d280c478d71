package strategy

import (
	"math"

	"github.com/hupe1980/seekbench/dataset"
)

// Jump advances a block pointer by floor(sqrt(n)) while the clamped
// block boundary is still below the target, then linear-scans the
// located block. O(sqrt n).
type Jump struct{}

// Name implements Strategy.
func (Jump) Name() string { return "jump" }

// Search implements Strategy.
func (Jump) Search(arr *dataset.SortedArray, target int32) Result {
	n := arr.Len()
	step := int(math.Sqrt(float64(n)))
	if step == 0 {
		// n == 0: no block to scan.
		return NotFound
	}

	prev := 0
	for prev < n && arr.At(min(prev, n-1)) < target {
		prev += step
	}

	// The block boundary itself may hold the target (prev never advances
	// when the first element already matches), so the scan is inclusive
	// of the clamped boundary index.
	start := max(prev-step, 0)
	for i := start; i < min(prev+1, n); i++ {
		if arr.At(i) == target {
			return FoundAt(i)
		}
	}
	return NotFound
}
