package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_Save(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocal(dir)
	require.NoError(t, err)

	url, err := s.Save(context.Background(), "chair.png", "image/png", strings.NewReader("png-bytes"), 9)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/chair.png", url)

	data, err := os.ReadFile(filepath.Join(dir, "uploads", "chair.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestLocalStore_SaveStripsDirectories(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocal(dir)
	require.NoError(t, err)

	url, err := s.Save(context.Background(), "../../etc/evil.png", "image/png", strings.NewReader("x"), 1)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/evil.png", url)
	assert.FileExists(t, filepath.Join(dir, "uploads", "evil.png"))
}

func TestLocalStore_SaveEscapesURL(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocal(dir)
	require.NoError(t, err)

	url, err := s.Save(context.Background(), "chair#1?.png", "image/png", strings.NewReader("x"), 1)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/chair%231%3F.png", url)
	assert.FileExists(t, filepath.Join(dir, "uploads", "chair#1?.png"))
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestLocalStore_SaveRemovesPartialFile(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocal(dir)
	require.NoError(t, err)

	_, err = s.Save(context.Background(), "broken.png", "image/png", io.MultiReader(strings.NewReader("half"), failingReader{}), 8)
	require.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "uploads", "broken.png"))
}
