package seekbench

import "github.com/hupe1980/seekbench/dataset"

// QueryLabel identifies which class of target value is being searched
// for.
type QueryLabel string

// The five query classes, in canonical benchmark order.
const (
	QueryFirst      QueryLabel = "first"
	QueryLast       QueryLabel = "last"
	QueryMiddle     QueryLabel = "middle"
	QueryBelowRange QueryLabel = "below_range"
	QueryAboveRange QueryLabel = "above_range"
)

// Query is a single target value plus its symbolic label. Present
// records whether the target is guaranteed to exist in the dataset:
// first/last/middle are elements of the array by construction,
// below_range/above_range are chosen outside [min, max).
type Query struct {
	Label   QueryLabel
	Target  int32
	Present bool
}

// QueriesFor derives the fixed, ordered query list for a dataset
// generated from [minVal, maxVal). The below-range probe is minVal-1;
// the above-range probe is maxVal itself, which the half-open range
// excludes.
func QueriesFor(arr *dataset.SortedArray, minVal, maxVal int32) []Query {
	return []Query{
		{Label: QueryFirst, Target: arr.First(), Present: true},
		{Label: QueryLast, Target: arr.Last(), Present: true},
		{Label: QueryMiddle, Target: arr.Middle(), Present: true},
		{Label: QueryBelowRange, Target: minVal - 1},
		{Label: QueryAboveRange, Target: maxVal},
	}
}
