package seekbench

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with seekbench-specific helpers.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// LogGenerate logs the dataset generation stage.
func (l *Logger) LogGenerate(ctx context.Context, n int, seed int64, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "dataset generation failed",
			"n", n,
			"seed", seed,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "dataset generated",
			"n", n,
			"seed", seed,
			"elapsed", elapsed,
		)
	}
}

// LogMeasure logs one completed (strategy, query) measurement.
func (l *Logger) LogMeasure(ctx context.Context, strategy, queryLabel string, elapsed time.Duration, memoryDelta int64, found bool) {
	l.DebugContext(ctx, "pair measured",
		"strategy", strategy,
		"query", queryLabel,
		"elapsed", elapsed,
		"memory_delta_bytes", memoryDelta,
		"found", found,
	)
}

// LogViolation logs a recorded contract violation.
func (l *Logger) LogViolation(ctx context.Context, strategy, queryLabel, reason string) {
	l.ErrorContext(ctx, "strategy contract violation",
		"strategy", strategy,
		"query", queryLabel,
		"reason", reason,
	)
}

// LogRunDone logs run completion.
func (l *Logger) LogRunDone(ctx context.Context, records, failed int, elapsed time.Duration) {
	if failed > 0 {
		l.WarnContext(ctx, "run completed with failures",
			"records", records,
			"failed", failed,
			"elapsed", elapsed,
		)
	} else {
		l.InfoContext(ctx, "run completed",
			"records", records,
			"elapsed", elapsed,
		)
	}
}
