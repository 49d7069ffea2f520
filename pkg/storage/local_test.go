package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageOpen(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "book.pdf"), []byte("%PDF-1.7 funders"), 0o600))

	store := NewLocalStorage(dir)
	obj, err := store.Open(context.Background(), "book.pdf")
	require.NoError(t, err)
	defer obj.Body.Close()

	data, err := io.ReadAll(obj.Body)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7 funders", string(data))
	assert.Equal(t, int64(len(data)), obj.Size)
}

func TestLocalStorageMissing(t *testing.T) {
	store := NewLocalStorage(t.TempDir())
	_, err := store.Open(context.Background(), "nope.pdf")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStorageStaysInsideDir(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "private")
	require.NoError(t, os.Mkdir(dir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(root, "secret.txt"), []byte("x"), 0o600))

	store := NewLocalStorage(dir)
	_, err := store.Open(context.Background(), "../secret.txt")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStorageRejectsDirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o700))

	store := NewLocalStorage(dir)
	_, err := store.Open(context.Background(), "sub")
	assert.ErrorContains(t, err, "directory")

	_, err = store.Open(context.Background(), "/")
	assert.ErrorContains(t, err, "invalid asset key")
}

func TestLocalStorageCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLocalStorage(t.TempDir()).Open(ctx, "book.pdf")
	assert.ErrorIs(t, err, context.Canceled)
}
