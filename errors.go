package seekbench

import (
	"errors"
	"fmt"

	"github.com/hupe1980/seekbench/dataset"
	"github.com/hupe1980/seekbench/probe"
)

var (
	// ErrInvalidParameters is the fatal configuration error. Aliased from
	// dataset so callers can match it without importing the subpackage.
	ErrInvalidParameters = dataset.ErrInvalidParameters

	// ErrSamplingUnavailable mirrors probe.ErrSamplingUnavailable.
	ErrSamplingUnavailable = probe.ErrSamplingUnavailable

	// ErrRunnerFinished is returned when Run is called on a runner that
	// already completed a run.
	ErrRunnerFinished = errors.New("runner already finished")
)

// ContractViolationError describes a strategy result that contradicts the
// dataset: a present-by-construction target reported absent, or a Found
// index whose value does not equal the target.
//
// Violations are recorded as failed measurements; the run continues.
type ContractViolationError struct {
	Strategy   string
	QueryLabel string
	Reason     string
}

func (e *ContractViolationError) Error() string {
	return fmt.Sprintf("strategy %q violated its contract on query %q: %s", e.Strategy, e.QueryLabel, e.Reason)
}
