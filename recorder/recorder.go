// Package recorder accumulates benchmark measurements in insertion order
// and mirrors each one to a durable append-only sink so run history
// survives process restarts.
//
// The recorder is the single serialization point for sequence numbers:
// every recorded measurement gets the next number in a strictly
// increasing series starting at 1. The benchmark itself is sequential,
// but appends are mutex-guarded so a future parallel runner inherits a
// correct ordering discipline.
package recorder

import (
	"sync"

	"github.com/hupe1980/seekbench/probe"
)

// Recorder is an append-only measurement log with a durable mirror.
type Recorder struct {
	mu      sync.Mutex
	seq     uint64
	records []probe.Measurement
	sink    Sink
}

// New creates a Recorder writing through to sink. A nil sink keeps
// records in memory only.
func New(sink Sink) *Recorder {
	return &Recorder{sink: sink}
}

// Record assigns the next sequence number to m, appends it and forwards
// it to the sink. The returned measurement carries the assigned number.
// A sink failure does not unwind the in-memory append.
func (r *Recorder) Record(m probe.Measurement) (probe.Measurement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	m.Seq = r.seq
	r.records = append(r.records, m)

	if r.sink == nil {
		return m, nil
	}
	return m, r.sink.WriteRecord(m)
}

// Len returns the number of recorded measurements.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

// Snapshot returns a copy of everything recorded so far, in insertion
// order.
func (r *Recorder) Snapshot() []probe.Measurement {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]probe.Measurement, len(r.records))
	copy(out, r.records)
	return out
}

// Close flushes and closes the sink.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sink == nil {
		return nil
	}
	return r.sink.Close()
}
