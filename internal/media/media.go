// Package media stores photo blobs. Two implementations are provided:
// a local disk store served as static files, and an S3 store with
// presigned download URLs. The rest of the system only sees Store.
package media

import (
	"context"
	"io"
)

// Store persists photo blobs and resolves download URLs for them.
type Store interface {
	// Save writes the blob and returns the storage key to persist.
	Save(ctx context.Context, originalName, contentType string, r io.Reader) (string, error)

	// URL returns a URL a client can fetch the blob from.
	URL(ctx context.Context, key string) (string, error)

	// Delete removes the blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, key string) error
}
