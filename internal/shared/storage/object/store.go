package object

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned when a storage key does not exist.
var ErrNotFound = errors.New("object not found")

// Stored describes an object written by Save.
type Stored struct {
	Key       string
	SizeBytes int64
	MimeType  string
}

// ObjectStore defines the contract for saving and retrieving binary objects.
type ObjectStore interface {
	// Save writes r under the owner's namespace with a random prefix.
	Save(ctx context.Context, ownerID string, fileName string, r io.Reader) (Stored, error)
	// SaveWithKey writes r at a caller-chosen key.
	SaveWithKey(ctx context.Context, storageKey string, contentType string, r io.Reader) (int64, error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
	Delete(ctx context.Context, storageKey string) error
}
