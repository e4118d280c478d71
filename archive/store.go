// Package archive uploads finished metrics files to object storage and
// records run manifests, so benchmark history outlives the host that
// produced it.
package archive

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Store is a destination for finished metrics files.
type Store interface {
	// Put streams the object named name from r.
	Put(ctx context.Context, name string, r io.Reader) error
}

// UploadFile streams the local file at path to store under name.
func UploadFile(ctx context.Context, store Store, path, name string) error {
	f, err := os.Open(path) //nolint:gosec // G304: Path is configurable
	if err != nil {
		return fmt.Errorf("failed to open metrics file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := store.Put(ctx, name, f); err != nil {
		return fmt.Errorf("failed to archive %q: %w", name, err)
	}
	return nil
}
