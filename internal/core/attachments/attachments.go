package attachments

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned by an ObjectStore when the requested key does not
// exist. Deleting an absent object is treated as success by the janitor: the
// desired end state already holds.
var ErrNotFound = errors.New("attachment not found")

// ObjectStore is the contract for the attachment byte store. Keys are unique
// per upload and generated by the store.
type ObjectStore interface {
	// Put stores the given bytes and returns the key under which they live.
	Put(ctx context.Context, data []byte, contentType string) (string, error)

	// Open returns a reader for the stored object, or ErrNotFound.
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the stored object. Returns ErrNotFound if the key does
	// not exist; the caller decides whether that matters.
	Delete(ctx context.Context, key string) error
}
