package storage

import (
	"context"
	"fmt"
	"io"

	"ClassVault/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioStore keeps blobs in a MinIO bucket.
type MinioStore struct {
	client *minio.Client
	bucket string
}

// NewMinioStore connects to MinIO and ensures the bucket exists.
func NewMinioStore(cfg *config.Config) (*MinioStore, error) {
	client, err := minio.New(fmt.Sprintf("%s:%s", cfg.MinioHost, cfg.MinioPort), &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioUsername, cfg.MinioPassword, ""),
		Secure: false,
	})
	if err != nil {
		return nil, err
	}
	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
	}
	return &MinioStore{client: client, bucket: cfg.BucketName}, nil
}

// Save uploads a blob to the bucket.
func (s *MinioStore) Save(ctx context.Context, name string, reader io.Reader, size int64) error {
	_, err := s.client.PutObject(ctx, s.bucket, name, reader, size, minio.PutObjectOptions{})
	return err
}

// Open streams a blob's bytes and reports its size.
func (s *MinioStore) Open(ctx context.Context, name string) (io.ReadCloser, int64, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, 0, err
	}
	stat, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, 0, ErrContentMissing
		}
		return nil, 0, err
	}
	return obj, stat.Size, nil
}

// Remove deletes a blob from the bucket.
func (s *MinioStore) Remove(ctx context.Context, name string) error {
	return s.client.RemoveObject(ctx, s.bucket, name, minio.RemoveObjectOptions{})
}
