// Package seekbench is a benchmarking harness for search algorithms
// over large sorted integer arrays.
//
// A run generates one sorted random dataset, then executes every
// registered search strategy (linear, binary, jump, interpolation)
// against five query classes (first, last, middle, below_range,
// above_range), wrapping each invocation with a timing and
// resident-memory probe. Every (strategy, query) pair yields one
// immutable Measurement, recorded in memory and mirrored to a durable
// CSV sink.
//
// Basic usage:
//
//	runner := seekbench.NewRunner()
//	report, err := runner.Run(ctx, seekbench.Config{
//	    Size:        1_000_000,
//	    Min:         1000,
//	    Max:         10000,
//	    Seed:        42,
//	    MetricsPath: "metrics.csv",
//	})
//
// The run is strictly sequential: overlapping strategy invocations
// would make the per-call memory deltas meaningless.
package seekbench
