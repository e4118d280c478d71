package seekbench

import (
	"log/slog"

	"github.com/hupe1980/seekbench/probe"
	"github.com/hupe1980/seekbench/recorder"
	"github.com/hupe1980/seekbench/resource"
	"github.com/hupe1980/seekbench/strategy"
)

type options struct {
	logger     *Logger
	probe      *probe.Probe
	recorder   *recorder.Recorder
	strategies []strategy.Strategy
	controller *resource.Controller
	sinkFns    []func(o *recorder.Options)
}

// Option configures Runner behavior.
type Option func(*options)

// WithLogger configures structured logging for the run.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets
// it. Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithProbe overrides the instrumentation probe. Intended for tests.
func WithProbe(p *probe.Probe) Option {
	return func(o *options) {
		o.probe = p
	}
}

// WithRecorder overrides the measurement recorder. When set, the
// Config.MetricsPath field is ignored and the caller owns the recorder's
// lifecycle (Run will still Close it on completion).
func WithRecorder(r *recorder.Recorder) Option {
	return func(o *options) {
		o.recorder = r
	}
}

// WithStrategies overrides the registered strategy set. The default is
// strategy.All(): linear, binary, jump, interpolation, in that order.
func WithStrategies(strategies ...strategy.Strategy) Option {
	return func(o *options) {
		o.strategies = strategies
	}
}

// WithResourceController applies a memory budget to dataset generation
// and an IO limit to the metrics sink.
func WithResourceController(c *resource.Controller) Option {
	return func(o *options) {
		o.controller = c
	}
}

// WithSinkOptions customizes the durable metrics sink built from
// Config.MetricsPath (compression, fsync behavior). Ignored when
// WithRecorder is used.
func WithSinkOptions(optFns ...func(o *recorder.Options)) Option {
	return func(o *options) {
		o.sinkFns = append(o.sinkFns, optFns...)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		logger:     NoopLogger(),
		probe:      probe.New(),
		strategies: strategy.All(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
