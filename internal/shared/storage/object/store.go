package object

import (
	"context"
	"io"
)

// ObjectStore persists source snapshots (submitted code, rewrites).
type ObjectStore interface {
	Save(ctx context.Context, userID string, name string, r io.Reader) (storageKey string, sizeBytes int64, err error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
}
