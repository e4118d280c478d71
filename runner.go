package seekbench

import (
	"context"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/hupe1980/seekbench/dataset"
	"github.com/hupe1980/seekbench/probe"
	"github.com/hupe1980/seekbench/recorder"
	"github.com/hupe1980/seekbench/strategy"
)

// State is the runner's lifecycle position.
type State int32

// Runner states, in order of progression.
const (
	StateInit State = iota
	StateGenerated
	StateRunning
	StateDone
)

// String returns a string representation of the State.
func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateGenerated:
		return "generated"
	case StateRunning:
		return "running"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// Config specifies one benchmark run.
type Config struct {
	// Size is the dataset length.
	Size int

	// Min and Max bound the half-open value range [Min, Max).
	Min int32
	Max int32

	// Seed fixes the RNG for reproducible runs. 0 derives a seed from
	// the current time.
	Seed int64

	// MetricsPath is the durable sink file. Empty keeps measurements in
	// memory only (ignored when a recorder is injected via WithRecorder).
	MetricsPath string
}

// Validate checks the configuration. Violations are fatal: they abort a
// run before any measurement is taken.
func (c Config) Validate() error {
	if c.Size <= 0 {
		return fmt.Errorf("%w: size must be positive, got %d", ErrInvalidParameters, c.Size)
	}
	if c.Min >= c.Max {
		return fmt.Errorf("%w: min %d must be less than max %d", ErrInvalidParameters, c.Min, c.Max)
	}
	if c.Min == math.MinInt32 {
		// No int32 exists below the range, so the below_range query class
		// could not be constructed.
		return fmt.Errorf("%w: min must be greater than %d", ErrInvalidParameters, int32(math.MinInt32))
	}
	return nil
}

// RunReport summarizes a completed run.
type RunReport struct {
	DatasetSize int
	Seed        int64
	Queries     []Query
	Records     int
	Failed      []probe.Measurement
	MetricsPath string
	Elapsed     time.Duration
}

// Violations converts the failed measurements into typed errors.
func (r *RunReport) Violations() []error {
	errs := make([]error, 0, len(r.Failed))
	for _, m := range r.Failed {
		errs = append(errs, &ContractViolationError{
			Strategy:   m.Strategy,
			QueryLabel: m.QueryLabel,
			Reason:     m.FailReason,
		})
	}
	return errs
}

// Runner orchestrates one benchmark run: generate the dataset, execute
// every (query, strategy) pair probe-wrapped and strictly sequentially,
// and record each measurement. A Runner is single-use.
type Runner struct {
	opts    options
	state   atomic.Int32
	started atomic.Bool
}

// NewRunner creates a Runner.
func NewRunner(optFns ...Option) *Runner {
	return &Runner{opts: applyOptions(optFns)}
}

// State returns the runner's current lifecycle state.
func (r *Runner) State() State {
	return State(r.state.Load())
}

// Run executes the benchmark described by cfg.
//
// Fatal conditions (invalid parameters, dataset generation failure)
// abort before any measurement and are returned as errors. A strategy
// that panics or returns an inconsistent result only fails its own
// (strategy, query) pair: the pair is recorded as a failed measurement
// and the run continues.
func (r *Runner) Run(ctx context.Context, cfg Config) (*RunReport, error) {
	if !r.started.CompareAndSwap(false, true) {
		return nil, ErrRunnerFinished
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rec, metricsPath, err := r.buildRecorder(cfg)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rec.Close() }()

	runStart := time.Now()

	gen := dataset.NewGenerator(func(o *dataset.Options) {
		o.Seed = cfg.Seed
		o.Controller = r.opts.controller
	})
	arr, err := gen.Generate(cfg.Size, cfg.Min, cfg.Max)
	genElapsed := time.Since(runStart)
	r.opts.logger.LogGenerate(ctx, cfg.Size, gen.Seed(), genElapsed, err)
	if err != nil {
		return nil, err
	}
	defer gen.Release(arr)
	r.state.Store(int32(StateGenerated))

	queries := QueriesFor(arr, cfg.Min, cfg.Max)
	report := &RunReport{
		DatasetSize: arr.Len(),
		Seed:        gen.Seed(),
		Queries:     queries,
		MetricsPath: metricsPath,
	}

	r.state.Store(int32(StateRunning))
	for _, q := range queries {
		for _, s := range r.opts.strategies {
			m := r.measurePair(arr, q, s)

			m, recErr := rec.Record(m)
			if recErr != nil {
				r.opts.logger.WarnContext(ctx, "metrics sink write failed",
					"strategy", m.Strategy,
					"query", m.QueryLabel,
					"error", recErr,
				)
			}

			if m.Failed {
				report.Failed = append(report.Failed, m)
				r.opts.logger.LogViolation(ctx, m.Strategy, m.QueryLabel, m.FailReason)
			} else {
				r.opts.logger.LogMeasure(ctx, m.Strategy, m.QueryLabel, m.Elapsed, m.MemoryDelta, m.Found)
			}
		}
	}
	r.state.Store(int32(StateDone))

	report.Records = rec.Len()
	report.Elapsed = time.Since(runStart)
	r.opts.logger.LogRunDone(ctx, report.Records, len(report.Failed), report.Elapsed)

	return report, nil
}

// buildRecorder returns the injected recorder or constructs one over the
// configured sink.
func (r *Runner) buildRecorder(cfg Config) (*recorder.Recorder, string, error) {
	if r.opts.recorder != nil {
		return r.opts.recorder, "", nil
	}
	if cfg.MetricsPath == "" {
		return recorder.New(nil), "", nil
	}

	sinkFns := append([]func(o *recorder.Options){func(o *recorder.Options) {
		o.Controller = r.opts.controller
	}}, r.opts.sinkFns...)

	sink, err := recorder.NewFileSink(cfg.MetricsPath, sinkFns...)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open metrics sink: %w", err)
	}
	return recorder.New(sink), cfg.MetricsPath, nil
}

// measurePair runs one probe-wrapped strategy invocation and verifies
// the result against the dataset. A panicking strategy yields a failed
// measurement instead of unwinding the run.
func (r *Runner) measurePair(arr *dataset.SortedArray, q Query, s strategy.Strategy) (m probe.Measurement) {
	defer func() {
		if p := recover(); p != nil {
			m = probe.Measurement{
				Timestamp:  time.Now(),
				Strategy:   s.Name(),
				QueryLabel: string(q.Label),
				Failed:     true,
				FailReason: fmt.Sprintf("panic: %v", p),
			}
		}
	}()

	m = r.opts.probe.Measure(s.Name(), string(q.Label), func() strategy.Result {
		return s.Search(arr, q.Target)
	})

	if reason := verifyResult(arr, q, strategy.Result{Found: m.Found, Index: m.Index}); reason != "" {
		m.Failed = true
		m.FailReason = reason
	}
	return m
}
