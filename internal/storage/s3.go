package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// S3 stores template binaries in an s3-compatible bucket.
type S3 struct {
	client *minio.Client
	bucket string
}

// NewS3 ...
func NewS3(
	endpoint string,
	accessKey string,
	secretKey string,
	bucket string,
	useSSL bool,
) (s *S3, err error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return
	}
	s = &S3{
		client: client,
		bucket: bucket,
	}
	return
}

// Upload stores content under path and returns the stored path.
func (s *S3) Upload(ctx context.Context, path string, content []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(
		ctx,
		s.bucket,
		path,
		bytes.NewReader(content),
		int64(len(content)),
		minio.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		return "", fmt.Errorf("upload %s: %s", path, err)
	}
	return path, nil
}

// Download returns the content stored under path.
func (s *S3) Download(ctx context.Context, path string) ([]byte, error) {
	object, err := s.client.GetObject(ctx, s.bucket, path, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("download %s: %s", path, err)
	}
	defer object.Close()

	content, err := io.ReadAll(object)
	if err != nil {
		return nil, fmt.Errorf("download %s: %s", path, err)
	}
	return content, nil
}

// Remove deletes every stored path.
func (s *S3) Remove(ctx context.Context, paths []string) error {
	for _, path := range paths {
		if err := s.client.RemoveObject(ctx, s.bucket, path, minio.RemoveObjectOptions{}); err != nil {
			return fmt.Errorf("remove %s: %s", path, err)
		}
	}
	return nil
}
