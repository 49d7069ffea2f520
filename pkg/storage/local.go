package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage serves files from a directory that is not exposed as static content.
type LocalStorage struct {
	dir string
}

func NewLocalStorage(dir string) *LocalStorage {
	return &LocalStorage{dir: dir}
}

func (s *LocalStorage) Open(ctx context.Context, key string) (*Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	clean := filepath.Clean(string(filepath.Separator) + key)
	if strings.Trim(clean, string(filepath.Separator)) == "" {
		return nil, fmt.Errorf("invalid asset key %q", key)
	}
	path := filepath.Join(s.dir, clean)

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("asset %s: %w", key, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to open asset: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to stat asset: %w", err)
	}
	if info.IsDir() {
		f.Close()
		return nil, fmt.Errorf("asset %s is a directory", key)
	}

	return &Object{
		Body: f,
		Size: info.Size(),
	}, nil
}
