package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

// LocalStore keeps blobs as plain files in the content directory.
type LocalStore struct {
	dir string
}

// NewLocalStore creates the content directory if needed.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalStore{dir: dir}, nil
}

// path joins the stored name onto the content directory. Stored names are
// server-generated, so no traversal cleaning is needed beyond Base.
func (s *LocalStore) path(name string) string {
	return filepath.Join(s.dir, filepath.Base(name))
}

// Save writes a new blob; an existing name is refused.
func (s *LocalStore) Save(ctx context.Context, name string, reader io.Reader, size int64) error {
	f, err := os.OpenFile(s.path(name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, reader); err != nil {
		f.Close()
		_ = os.Remove(s.path(name))
		return err
	}
	return f.Close()
}

// Open streams a blob's bytes and reports its size.
func (s *LocalStore) Open(ctx context.Context, name string) (io.ReadCloser, int64, error) {
	f, err := os.Open(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, ErrContentMissing
		}
		return nil, 0, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, err
	}
	return f, info.Size(), nil
}

// Remove deletes a blob's bytes.
func (s *LocalStore) Remove(ctx context.Context, name string) error {
	err := os.Remove(s.path(name))
	if os.IsNotExist(err) {
		return ErrContentMissing
	}
	return err
}
