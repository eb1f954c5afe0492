// Package uploads stores multipart file uploads on local disk under a
// configurable directory. Files are named by receipt timestamp so repeated
// uploads never collide on the original filename.
package uploads

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/greenbasket/farmmarket-backend/pkg/errors"
	"github.com/greenbasket/farmmarket-backend/pkg/logger"
)

type Store struct {
	dir string
	log *logger.Logger
	now func() time.Time
}

func New(dir string, log *logger.Logger) (*Store, error) {
	if dir == "" {
		return nil, errors.New(errors.CodeInternal, "uploads: directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "uploads: create directory")
	}
	return &Store{dir: dir, log: log, now: time.Now}, nil
}

// Save writes the uploaded file to disk and returns its absolute path.
func (s *Store) Save(ctx context.Context, file multipart.File, header *multipart.FileHeader) (string, error) {
	name := fmt.Sprintf("%d%s", s.now().UnixMilli(), filepath.Ext(header.Filename))
	path := filepath.Join(s.dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", errors.Wrap(errors.CodeInternal, err, "uploads: create file")
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		s.Remove(ctx, path)
		return "", errors.Wrap(errors.CodeInternal, err, "uploads: write file")
	}
	return path, nil
}

// Remove deletes a stored file. Failures are logged and swallowed so cleanup
// paths never fail a request over a leftover temp file.
func (s *Store) Remove(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.log.Error(ctx, fmt.Sprintf("uploads: remove file %s", path), err)
	}
}
