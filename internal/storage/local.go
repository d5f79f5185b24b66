package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
)

// LocalStore writes images under <public>/uploads, which the server exposes
// statically.
type LocalStore struct {
	root string
}

// NewLocal creates the uploads directory if it does not exist.
func NewLocal(publicDir string) (*LocalStore, error) {
	root := filepath.Join(publicDir, UploadsDir)
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("storage/local: mkdir %s: %w", root, err)
	}
	return &LocalStore{root: root}, nil
}

// Save writes r to the uploads directory. A partially written file is
// removed.
func (s *LocalStore) Save(_ context.Context, name, _ string, r io.Reader, _ int64) (string, error) {
	name = filepath.Base(name)
	dst := filepath.Join(s.root, name)
	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("storage/local: create %s: %w", name, err)
	}

	_, err = io.Copy(f, r)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(dst)
		return "", fmt.Errorf("storage/local: write %s: %w", name, err)
	}
	return "/" + UploadsDir + "/" + url.PathEscape(name), nil
}
