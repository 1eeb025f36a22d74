// Package storage holds uploaded bytes, addressed only by stored name.
// The record store never depends on it; cleanup is best-effort.
package storage

import (
	"context"
	"errors"
	"io"

	"ClassVault/config"
)

// ErrContentMissing is returned when a record's bytes are gone from the
// store. It is distinct from a missing record: the metadata still exists.
var ErrContentMissing = errors.New("file content missing")

// BlobStore is a write-once-read-many blob area with delete.
type BlobStore interface {
	Save(ctx context.Context, name string, reader io.Reader, size int64) error
	Open(ctx context.Context, name string) (io.ReadCloser, int64, error)
	Remove(ctx context.Context, name string) error
}

// Open selects the configured blob backend. Unlike the record store there
// is no silent fallback here: a broken blob backend is fatal at startup.
func Open(cfg *config.Config) (BlobStore, error) {
	if cfg.StorageBackend == "minio" {
		return NewMinioStore(cfg)
	}
	return NewLocalStore(cfg.ContentDir)
}
