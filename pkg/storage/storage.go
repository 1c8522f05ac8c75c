// Package storage provides blob storage for uploaded device artifacts.
// Keys are slash-separated relative paths ("device-downloads/<id>/fw.zip")
// and every stored blob is addressable through a public URL.
package storage

import (
	"context"
	"net/http"

	"github.com/JaimeStill/device-inventory/pkg/lifecycle"
)

// System defines blob storage operations.
type System interface {
	// Store writes data at key, replacing any existing blob (upsert).
	// Returns ErrInvalidKey if the key is empty or contains path traversal.
	Store(ctx context.Context, key string, data []byte) error

	// Retrieve returns the data stored at key or ErrNotFound.
	Retrieve(ctx context.Context, key string) ([]byte, error)

	// Delete removes the blob at key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error

	// Validate reports whether key exists.
	Validate(ctx context.Context, key string) (bool, error)

	// URL returns the public URL for key. The URL resolves without authentication.
	URL(key string) string

	// Handler serves stored blobs by key, relative to the mount point.
	Handler() http.Handler

	// Start registers lifecycle hooks with the coordinator.
	Start(lc *lifecycle.Coordinator) error
}
