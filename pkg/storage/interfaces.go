package storage

import (
	"context"
	"errors"
	"io"
)

var ErrNotFound = errors.New("object not found")

// Object is an open asset. Callers must close Body.
type Object struct {
	Body io.ReadCloser
	Size int64
}

type AssetStore interface {
	Open(ctx context.Context, key string) (*Object, error)
}
