package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/devtrail/bootcamp-api/pkg/apperr"
)

// DiskStore writes uploaded photos under a local directory that the
// HTTP server also serves statically.
type DiskStore struct {
	Dir string
}

func NewDiskStore(dir string) *DiskStore {
	return &DiskStore{Dir: dir}
}

func (s *DiskStore) Save(ctx context.Context, filename, contentType string, r io.Reader) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return apperr.Wrap(apperr.Internal, err, "problem with file upload")
	}
	f, err := os.Create(filepath.Join(s.Dir, filepath.Base(filename)))
	if err != nil {
		return apperr.Wrap(apperr.Internal, err, "problem with file upload")
	}
	defer func() { _ = f.Close() }()
	if _, err := io.Copy(f, r); err != nil {
		return apperr.Wrap(apperr.Internal, err, "problem with file upload")
	}
	return nil
}
