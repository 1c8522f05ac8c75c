package uploads

import (
	"context"
	"fmt"
)

// Writer is the subset of storage.System used to persist blobs.
type Writer interface {
	Store(ctx context.Context, key string, data []byte) error
	URL(key string) string
}

// Blobs writes validated files into named buckets.
type Blobs struct {
	w Writer
}

// NewBlobs creates a Blobs over w.
func NewBlobs(w Writer) *Blobs {
	return &Blobs{w: w}
}

// Store writes data to bucket/path, overwriting any existing object, and
// returns a URL that resolves without authentication. Failures are not retried.
func (b *Blobs) Store(ctx context.Context, data []byte, bucket, path string) (string, error) {
	key := bucket + "/" + path
	if err := b.w.Store(ctx, key, data); err != nil {
		return "", fmt.Errorf("%w: %w", ErrStorageWrite, err)
	}
	return b.w.URL(key), nil
}
