package strategy

import "github.com/hupe1980/seekbench/dataset"

// Binary performs classic three-way-comparison binary search on a
// shrinking [low, high] window. O(log n).
type Binary struct{}

// Name implements Strategy.
func (Binary) Name() string { return "binary" }

// Search implements Strategy.
func (Binary) Search(arr *dataset.SortedArray, target int32) Result {
	low, high := 0, arr.Len()-1
	for low <= high {
		mid := (low + high) / 2
		switch v := arr.At(mid); {
		case v == target:
			return FoundAt(mid)
		case v < target:
			low = mid + 1
		default:
			high = mid - 1
		}
	}
	return NotFound
}
