// Package loader opens transaction files for processing. A loaded Source
// streams records from its input, so files of any size are replayed without
// reading them into memory first.
//
// Example usage:
//
//	ldr := loader.New(loader.WithBufferSize(64 * 1024))
//	src, err := ldr.Load(ctx, "transactions.csv")
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
//	err = ledger.New().Process(ctx, src)
package loader

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/robinvdvleuten/payments/record"
	"github.com/robinvdvleuten/payments/telemetry"
)

// StdinName is the display name used for records read from standard input.
const StdinName = "<stdin>"

// Loader opens transaction inputs and prepares record readers for them.
//
// Configure the loader using functional options passed to New:
//
//	loader := New(WithBufferSize(8192))
type Loader struct {
	// BufferSize is the capacity of the buffered reader wrapped around each input.
	BufferSize int
}

// Option configures how inputs are loaded.
type Option func(*Loader)

// WithBufferSize sets the capacity of the input buffer. Values below one
// keep the default.
func WithBufferSize(size int) Option {
	return func(l *Loader) {
		if size > 0 {
			l.BufferSize = size
		}
	}
}

// New creates a new Loader with the given options.
func New(opts ...Option) *Loader {
	l := &Loader{
		BufferSize: record.DefaultBufferSize,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Source is a loaded input. It reads records in file order and must be
// closed by the caller.
type Source struct {
	*record.Reader

	// Root is the absolute path of the input file, empty for in-memory and
	// stdin input.
	Root string

	closer io.Closer
}

// Close releases the underlying file, if any.
func (s *Source) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// Load opens filename for streaming.
func (l *Loader) Load(ctx context.Context, filename string) (*Source, error) {
	timer := telemetry.StartTimer(ctx, "loader.open "+filename)
	defer timer.End()

	absPath, err := filepath.Abs(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path for %s: %w", filename, err)
	}

	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}

	src := l.newSource(filename, f)
	src.Root = absPath
	src.closer = f
	return src, nil
}

// LoadReader wraps r, typically standard input. An empty filename reports
// records under StdinName.
func (l *Loader) LoadReader(ctx context.Context, filename string, r io.Reader) *Source {
	timer := telemetry.StartTimer(ctx, "loader.open "+displayName(filename))
	defer timer.End()

	return l.newSource(displayName(filename), r)
}

// LoadBytes wraps in-memory input.
func (l *Loader) LoadBytes(ctx context.Context, filename string, data []byte) *Source {
	return l.LoadReader(ctx, filename, bytes.NewReader(data))
}

func (l *Loader) newSource(filename string, r io.Reader) *Source {
	return &Source{
		Reader: record.NewReader(r,
			record.WithFilename(filename),
			record.WithBufferSize(l.BufferSize),
		),
	}
}

func displayName(filename string) string {
	if filename == "" {
		return StdinName
	}
	return filename
}
