// Package probe wraps a single strategy invocation with wall-clock and
// resident-memory instrumentation.
//
// Memory sampling is best effort: it reads the process RSS immediately
// before and after the measured call, and OS scheduling jitter means the
// delta may be zero or negative. That is a documented measurement
// artifact, not a defect. On platforms without process-memory
// introspection the probe degrades to a zero delta instead of failing
// the run.
package probe

import (
	"errors"
	"time"

	"github.com/hupe1980/seekbench/strategy"
)

// ErrSamplingUnavailable indicates that process-memory introspection is
// not available on the host platform.
var ErrSamplingUnavailable = errors.New("process memory sampling unavailable")

// Measurement is one immutable performance record for a
// (strategy, query) execution.
type Measurement struct {
	// Seq is a monotonically increasing sequence number, assigned by the
	// recorder at record time. Zero until recorded.
	Seq uint64

	// Timestamp is when the measured call started.
	Timestamp time.Time

	// Strategy is the canonical strategy name.
	Strategy string

	// QueryLabel identifies the query class (first, last, middle,
	// below_range, above_range).
	QueryLabel string

	// Elapsed is the wall-clock duration of the measured call.
	Elapsed time.Duration

	// MemoryDelta is resident memory after minus before, in bytes.
	// May be negative or zero due to sampling noise; zero when sampling
	// is unavailable.
	MemoryDelta int64

	// Found and Index echo the strategy's result.
	Found bool
	Index int

	// Failed marks a measurement whose strategy violated its contract.
	// FailReason carries the diagnostic.
	Failed     bool
	FailReason string
}

// Probe samples elapsed time and process memory around a unit of work.
type Probe struct {
	sample func() (int64, error)
}

// New creates a Probe using the platform's resident-memory sampler.
func New() *Probe {
	return &Probe{sample: residentMemory}
}

// SamplingAvailable reports whether resident-memory sampling works on
// this host.
func (p *Probe) SamplingAvailable() bool {
	_, err := p.sample()
	return err == nil
}

// Measure invokes op exactly once, bracketed by a memory sample and a
// monotonic clock. The returned Measurement has no sequence number yet.
func (p *Probe) Measure(strategyName, queryLabel string, op func() strategy.Result) Measurement {
	before, errBefore := p.sample()

	start := time.Now()
	res := op()
	elapsed := time.Since(start)

	after, errAfter := p.sample()

	m := Measurement{
		Timestamp:  start,
		Strategy:   strategyName,
		QueryLabel: queryLabel,
		Elapsed:    elapsed,
		Found:      res.Found,
		Index:      res.Index,
	}
	if errBefore == nil && errAfter == nil {
		m.MemoryDelta = after - before
	}
	return m
}

// ResidentMemory returns the current process resident set size in bytes,
// or ErrSamplingUnavailable on unsupported platforms.
func ResidentMemory() (int64, error) {
	return residentMemory()
}
