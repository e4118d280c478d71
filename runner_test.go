package seekbench

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/seekbench/dataset"
	"github.com/hupe1980/seekbench/recorder"
	"github.com/hupe1980/seekbench/resource"
	"github.com/hupe1980/seekbench/strategy"
)

func TestRunEndToEnd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics.csv")

	sink, err := recorder.NewFileSink(path)
	require.NoError(t, err)
	rec := recorder.New(sink)

	runner := NewRunner(WithRecorder(rec))
	report, err := runner.Run(context.Background(), Config{
		Size: 1000,
		Min:  1000,
		Max:  10000,
		Seed: 42,
	})
	require.NoError(t, err)
	assert.Equal(t, StateDone, runner.State())

	// 5 queries x 4 strategies
	require.Equal(t, 20, report.Records)
	assert.Empty(t, report.Failed)
	assert.Equal(t, 1000, report.DatasetSize)
	assert.Equal(t, int64(42), report.Seed)

	snap := rec.Snapshot()
	require.Len(t, snap, 20)

	labels := []string{"first", "last", "middle", "below_range", "above_range"}
	strategies := []string{"linear", "binary", "jump", "interpolation"}
	for i, m := range snap {
		assert.Equal(t, uint64(i+1), m.Seq, "sequence strictly increasing from 1")
		assert.Equal(t, labels[i/4], m.QueryLabel)
		assert.Equal(t, strategies[i%4], m.Strategy)
		assert.False(t, m.Failed)

		// Present classes found, absent classes not
		present := i/4 < 3
		assert.Equal(t, present, m.Found, "pair %s/%s", m.Strategy, m.QueryLabel)
	}

	// Durable sink: single header line plus the 20 records
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 21)
	assert.Equal(t, recorder.Header, rows[0])
}

func TestRunInvalidParameters(t *testing.T) {
	for name, cfg := range map[string]Config{
		"ZeroSize":   {Size: 0, Min: 0, Max: 10},
		"EmptyRange": {Size: 10, Min: 10, Max: 10},
		"MinAboveMax": {
			Size: 10, Min: 100, Max: 50,
		},
	} {
		t.Run(name, func(t *testing.T) {
			rec := recorder.New(recorder.NewMemorySink())
			runner := NewRunner(WithRecorder(rec))

			_, err := runner.Run(context.Background(), cfg)
			require.ErrorIs(t, err, ErrInvalidParameters)
			assert.Equal(t, 0, rec.Len(), "fatal config aborts before any measurement")
			assert.Equal(t, StateInit, runner.State())
		})
	}
}

func TestRunnerSingleUse(t *testing.T) {
	runner := NewRunner(WithRecorder(recorder.New(nil)))

	_, err := runner.Run(context.Background(), Config{Size: 10, Min: 0, Max: 100, Seed: 1})
	require.NoError(t, err)

	_, err = runner.Run(context.Background(), Config{Size: 10, Min: 0, Max: 100, Seed: 1})
	assert.ErrorIs(t, err, ErrRunnerFinished)
}

type panicStrategy struct{}

func (panicStrategy) Name() string { return "panicky" }
func (panicStrategy) Search(_ *dataset.SortedArray, _ int32) strategy.Result {
	panic("boom")
}

func TestRunPanickingStrategyIsRecorded(t *testing.T) {
	rec := recorder.New(recorder.NewMemorySink())
	runner := NewRunner(
		WithRecorder(rec),
		WithStrategies(panicStrategy{}),
	)

	report, err := runner.Run(context.Background(), Config{Size: 100, Min: 0, Max: 1000, Seed: 3})
	require.NoError(t, err, "a faulty strategy must not abort the run")

	// One failed measurement per query, none dropped
	require.Equal(t, 5, report.Records)
	require.Len(t, report.Failed, 5)
	for _, m := range rec.Snapshot() {
		assert.True(t, m.Failed)
		assert.Contains(t, m.FailReason, "panic")
		assert.Equal(t, "panicky", m.Strategy)
	}
	assert.Equal(t, StateDone, runner.State())
}

type alwaysAbsent struct{}

func (alwaysAbsent) Name() string { return "absent" }
func (alwaysAbsent) Search(_ *dataset.SortedArray, _ int32) strategy.Result {
	return strategy.NotFound
}

func TestRunContractViolationIsRecorded(t *testing.T) {
	rec := recorder.New(recorder.NewMemorySink())
	runner := NewRunner(
		WithRecorder(rec),
		WithStrategies(alwaysAbsent{}),
	)

	report, err := runner.Run(context.Background(), Config{Size: 100, Min: 0, Max: 1000, Seed: 3})
	require.NoError(t, err)

	// first/last/middle exist by construction: NotFound for them violates
	// the contract. The two absent classes are legitimately NotFound.
	require.Equal(t, 5, report.Records)
	require.Len(t, report.Failed, 3)
	for _, m := range report.Failed {
		assert.Contains(t, []string{"first", "last", "middle"}, m.QueryLabel)
	}

	violations := report.Violations()
	require.Len(t, violations, 3)
	var cve *ContractViolationError
	require.ErrorAs(t, violations[0], &cve)
	assert.Equal(t, "absent", cve.Strategy)
	assert.Contains(t, cve.Error(), "violated its contract")
}

func TestRunMemoryBudget(t *testing.T) {
	ctrl := resource.NewController(resource.Config{MemoryBudgetBytes: 16})
	rec := recorder.New(recorder.NewMemorySink())
	runner := NewRunner(
		WithRecorder(rec),
		WithResourceController(ctrl),
	)

	_, err := runner.Run(context.Background(), Config{Size: 1000, Min: 0, Max: 100, Seed: 1})
	require.ErrorIs(t, err, dataset.ErrMemoryBudget)
	assert.Equal(t, 0, rec.Len())
}

func TestQueriesFor(t *testing.T) {
	arr := dataset.NewSorted(2, 4, 4, 6, 8, 10)
	queries := QueriesFor(arr, 2, 11)

	require.Len(t, queries, 5)
	assert.Equal(t, Query{Label: QueryFirst, Target: 2, Present: true}, queries[0])
	assert.Equal(t, Query{Label: QueryLast, Target: 10, Present: true}, queries[1])
	assert.Equal(t, Query{Label: QueryMiddle, Target: 6, Present: true}, queries[2])
	assert.Equal(t, Query{Label: QueryBelowRange, Target: 1}, queries[3])
	assert.Equal(t, Query{Label: QueryAboveRange, Target: 11}, queries[4])
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "init", StateInit.String())
	assert.Equal(t, "generated", StateGenerated.String())
	assert.Equal(t, "running", StateRunning.String())
	assert.Equal(t, "done", StateDone.String())
}
