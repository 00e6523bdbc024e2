package object

import (
	"context"
	"io"
)

// ObjectStore defines the contract for saving, retrieving, and releasing
// binary objects. Delete exists so preview photos can be released as soon as
// they are replaced or consumed.
type ObjectStore interface {
	Save(ctx context.Context, fileName string, r io.Reader) (storageKey string, sizeBytes int64, mimeType string, err error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
	Delete(ctx context.Context, storageKey string) error
}
