package strategy

import "github.com/hupe1980/seekbench/dataset"

// Linear scans the array front to back and returns the first matching
// index. O(n); exploits no ordering, so it also serves as the reference
// implementation for the other strategies.
type Linear struct{}

// Name implements Strategy.
func (Linear) Name() string { return "linear" }

// Search implements Strategy.
func (Linear) Search(arr *dataset.SortedArray, target int32) Result {
	for i, v := range arr.Values() {
		if v == target {
			return FoundAt(i)
		}
	}
	return NotFound
}
