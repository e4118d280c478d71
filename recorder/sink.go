package recorder

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/seekbench/probe"
	"github.com/hupe1980/seekbench/resource"
)

// Header is the single header row of the durable metrics file.
var Header = []string{"timestamp", "strategy", "query_label", "elapsed_ms", "memory_delta_mb"}

// Sink is a durable, append-only destination for measurements.
type Sink interface {
	// WriteRecord appends one measurement. It never rewrites prior rows.
	WriteRecord(m probe.Measurement) error

	// Close flushes and releases the sink.
	Close() error
}

// Compression selects the sink's on-disk encoding.
type Compression int

const (
	// CompressionNone writes plain CSV (default).
	CompressionNone Compression = iota
	// CompressionZstd writes a zstd stream. Appending runs produce
	// concatenated frames, which any zstd reader decodes transparently.
	CompressionZstd
	// CompressionLZ4 writes an lz4 frame stream, concatenated the same way.
	CompressionLZ4
)

// Options contains configuration for a FileSink.
type Options struct {
	// Compression selects the on-disk encoding.
	Compression Compression

	// ZstdLevel sets the zstd compression level. Default 3.
	ZstdLevel int

	// SyncOnRecord forces an fsync after every record. Slow; intended for
	// runs that must survive a crash mid-benchmark.
	SyncOnRecord bool

	// Controller throttles sink writes via its IO limit. Nil disables
	// throttling.
	Controller *resource.Controller
}

// DefaultOptions returns the default FileSink options.
var DefaultOptions = Options{
	Compression: CompressionNone,
	ZstdLevel:   3,
}

// FileSink appends measurements to a delimited file. The header row is
// written exactly once, when the file is first created empty; subsequent
// runs append rows without rewriting it.
type FileSink struct {
	mu         sync.Mutex
	file       *os.File
	compressor io.WriteCloser // nil when uncompressed
	buf        *bufio.Writer
	csv        *csv.Writer
	opts       Options
	path       string
	closed     bool
}

// NewFileSink opens (or creates) the metrics file at path.
func NewFileSink(path string, optFns ...func(o *Options)) (*FileSink, error) {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create metrics directory: %w", err)
		}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600) //nolint:gosec // G304: Path is configurable
	if err != nil {
		return nil, fmt.Errorf("failed to open metrics file: %w", err)
	}
	st, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to stat metrics file: %w", err)
	}

	s := &FileSink{
		file: file,
		opts: opts,
		path: path,
	}

	var w io.Writer = file
	switch opts.Compression {
	case CompressionZstd:
		level := zstd.EncoderLevelFromZstd(opts.ZstdLevel)
		enc, err := zstd.NewWriter(file, zstd.WithEncoderLevel(level))
		if err != nil {
			_ = file.Close()
			return nil, fmt.Errorf("failed to create compressor: %w", err)
		}
		s.compressor = enc
		w = enc
	case CompressionLZ4:
		s.compressor = lz4.NewWriter(file)
		w = s.compressor
	case CompressionNone:
	}

	s.buf = bufio.NewWriter(w)
	s.csv = csv.NewWriter(s.buf)

	// Header goes in only on first creation; an existing file already
	// carries it (or a prior compressed frame that does).
	if st.Size() == 0 {
		if err := s.writeRow(Header); err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("failed to write metrics header: %w", err)
		}
		if err := s.flush(); err != nil {
			_ = s.Close()
			return nil, err
		}
	}

	return s, nil
}

// Path returns the metrics file path.
func (s *FileSink) Path() string {
	return s.path
}

// WriteRecord implements Sink.
func (s *FileSink) WriteRecord(m probe.Measurement) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return os.ErrClosed
	}

	if err := s.writeRow(formatRow(m)); err != nil {
		return err
	}
	if err := s.flush(); err != nil {
		return err
	}
	if s.opts.SyncOnRecord && s.compressor == nil {
		return s.file.Sync()
	}
	return nil
}

func (s *FileSink) writeRow(row []string) error {
	rowBytes := len(row) + 1
	for _, f := range row {
		rowBytes += len(f)
	}
	if err := s.opts.Controller.AcquireIO(context.Background(), rowBytes); err != nil {
		return fmt.Errorf("metrics IO throttle: %w", err)
	}
	return s.csv.Write(row)
}

func (s *FileSink) flush() error {
	s.csv.Flush()
	if err := s.csv.Error(); err != nil {
		return fmt.Errorf("failed to write metrics row: %w", err)
	}
	return s.buf.Flush()
}

// Close flushes buffers, finalizes any compression frame and closes the
// file.
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	err := s.flush()
	if s.compressor != nil {
		if cerr := s.compressor.Close(); err == nil {
			err = cerr
		}
	}
	if serr := s.file.Sync(); err == nil {
		err = serr
	}
	if cerr := s.file.Close(); err == nil {
		err = cerr
	}
	return err
}

// formatRow renders a measurement as the sink's five columns.
// elapsed_ms carries microsecond precision, memory_delta_mb two
// decimals, matching the resolution the original console output used.
func formatRow(m probe.Measurement) []string {
	return []string{
		m.Timestamp.UTC().Format(time.RFC3339Nano),
		m.Strategy,
		m.QueryLabel,
		fmt.Sprintf("%.3f", float64(m.Elapsed.Microseconds())/1000.0),
		fmt.Sprintf("%.2f", float64(m.MemoryDelta)/1024.0/1024.0),
	}
}

// MemorySink retains records in memory. Intended for tests.
type MemorySink struct {
	mu      sync.Mutex
	records []probe.Measurement
	closed  bool
}

// NewMemorySink creates an empty MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// WriteRecord implements Sink.
func (s *MemorySink) WriteRecord(m probe.Measurement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return os.ErrClosed
	}
	s.records = append(s.records, m)
	return nil
}

// Close implements Sink.
func (s *MemorySink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Records returns a copy of everything written so far.
func (s *MemorySink) Records() []probe.Measurement {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]probe.Measurement, len(s.records))
	copy(out, s.records)
	return out
}
