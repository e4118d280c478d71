package archive

import (
	"context"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Store implements Store on top of an S3 bucket.
type S3Store struct {
	uploader *manager.Uploader
	bucket   string
	prefix   string
}

// NewS3Store creates an S3 archive store. rootPrefix is prepended to all
// keys (e.g. "benchmarks/").
func NewS3Store(client manager.UploadAPIClient, bucket, rootPrefix string) *S3Store {
	return &S3Store{
		uploader: manager.NewUploader(client),
		bucket:   bucket,
		prefix:   rootPrefix,
	}
}

// Put implements Store. Large files stream through the SDK's multipart
// uploader.
func (s *S3Store) Put(ctx context.Context, name string, r io.Reader) error {
	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(path.Join(s.prefix, name)),
		Body:        r,
		ContentType: aws.String("text/csv"),
	})
	return err
}
