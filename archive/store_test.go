package archive

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureStore struct {
	name string
	data []byte
	err  error
}

func (c *captureStore) Put(_ context.Context, name string, r io.Reader) error {
	if c.err != nil {
		return c.err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	c.name = name
	c.data = data
	return nil
}

func TestUploadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics.csv")
	require.NoError(t, os.WriteFile(path, []byte("timestamp,strategy\n"), 0o600))

	store := &captureStore{}
	require.NoError(t, UploadFile(context.Background(), store, path, "runs/r1/metrics.csv"))

	assert.Equal(t, "runs/r1/metrics.csv", store.name)
	assert.Equal(t, "timestamp,strategy\n", string(store.data))
}

func TestUploadFileMissing(t *testing.T) {
	err := UploadFile(context.Background(), &captureStore{}, "/no/such/file", "x")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestUploadFilePutError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics.csv")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

	putErr := errors.New("bucket unavailable")
	err := UploadFile(context.Background(), &captureStore{err: putErr}, path, "x")
	assert.ErrorIs(t, err, putErr)
}
