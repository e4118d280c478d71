package seekbench

import (
	"fmt"
	"sort"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/seekbench/dataset"
	"github.com/hupe1980/seekbench/strategy"
)

// matchSet returns the set of indices holding target. Duplicates make
// this a contiguous run; any member is an acceptable answer.
func matchSet(arr *dataset.SortedArray, target int32) *roaring.Bitmap {
	n := arr.Len()
	lo := sort.Search(n, func(i int) bool { return arr.At(i) >= target })
	hi := lo
	for hi < n && arr.At(hi) == target {
		hi++
	}

	bm := roaring.New()
	if hi > lo {
		bm.AddRange(uint64(lo), uint64(hi))
	}
	return bm
}

// verifyResult checks a strategy result against the dataset. It returns
// "" for a consistent result, otherwise the violation reason.
//
// Present queries (first/last/middle) exist by construction, so a
// NotFound for them is an invariant violation, not a recoverable
// outcome.
func verifyResult(arr *dataset.SortedArray, q Query, res strategy.Result) string {
	if !q.Present {
		if res.Found {
			return fmt.Sprintf("reported index %d for target %d, which is outside the dataset range", res.Index, q.Target)
		}
		return ""
	}

	if !res.Found {
		return fmt.Sprintf("reported target %d absent, but it is present by construction", q.Target)
	}
	if res.Index < 0 || res.Index >= arr.Len() {
		return fmt.Sprintf("reported out-of-bounds index %d for target %d", res.Index, q.Target)
	}
	if !matchSet(arr, q.Target).Contains(uint32(res.Index)) {
		return fmt.Sprintf("reported index %d holds %d, not target %d", res.Index, arr.At(res.Index), q.Target)
	}
	return ""
}
