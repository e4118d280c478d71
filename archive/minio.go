package archive

import (
	"context"
	"io"
	"path"

	"github.com/minio/minio-go/v7"
)

// MinIOStore implements Store for MinIO and S3-compatible storage.
type MinIOStore struct {
	client *minio.Client
	bucket string
	prefix string
}

// NewMinIOStore creates a MinIO archive store.
func NewMinIOStore(client *minio.Client, bucket, rootPrefix string) *MinIOStore {
	return &MinIOStore{
		client: client,
		bucket: bucket,
		prefix: rootPrefix,
	}
}

// Put implements Store. Size -1 streams the object without knowing its
// length up front.
func (s *MinIOStore) Put(ctx context.Context, name string, r io.Reader) error {
	key := path.Join(s.prefix, name)
	_, err := s.client.PutObject(ctx, s.bucket, key, r, -1, minio.PutObjectOptions{
		ContentType: "text/csv",
	})
	return err
}
