package strategy

import "github.com/hupe1980/seekbench/dataset"

// Interpolation probes the position a uniformly distributed target would
// occupy between the current window bounds. O(log log n) expected on
// uniform data, O(n) worst case on adversarial distributions.
type Interpolation struct{}

// Name implements Strategy.
func (Interpolation) Name() string { return "interpolation" }

// Search implements Strategy.
func (Interpolation) Search(arr *dataset.SortedArray, target int32) Result {
	n := arr.Len()
	if n == 0 {
		return NotFound
	}

	low, high := 0, n-1
	for low <= high && arr.At(low) <= target && arr.At(high) >= target {
		if arr.At(high) == arr.At(low) {
			// Equal bounds: interpolation would divide by zero. The whole
			// window holds one value, so a direct comparison settles it.
			if arr.At(low) == target {
				return FoundAt(low)
			}
			return NotFound
		}

		// Deltas widened to int64: int32 subtraction can overflow when the
		// value range spans most of the int32 domain.
		pos := low + int(float64(high-low)*
			float64(int64(target)-int64(arr.At(low)))/
			float64(int64(arr.At(high))-int64(arr.At(low))))

		switch v := arr.At(pos); {
		case v == target:
			return FoundAt(pos)
		case v < target:
			low = pos + 1
		default:
			if pos == 0 {
				return NotFound
			}
			high = pos - 1
		}
	}
	return NotFound
}
