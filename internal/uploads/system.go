// Package uploads validates firmware and package artifacts and writes them
// to blob storage.
package uploads

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
)

// System defines the upload pipeline: intake validation, then blob storage.
type System interface {
	// Upload validates u, reads its content, and stores it under
	// <key>/<sanitized filename>. Nothing is read or written when
	// validation fails.
	Upload(ctx context.Context, u Upload) (*Result, error)
}

type system struct {
	blobs  *Blobs
	bucket string
	logger *slog.Logger
}

// New creates an upload system writing into bucket.
func New(w Writer, bucket string, logger *slog.Logger) System {
	return &system{
		blobs:  NewBlobs(w),
		bucket: bucket,
		logger: logger.With("system", "uploads"),
	}
}

func (s *system) Upload(ctx context.Context, u Upload) (*Result, error) {
	key := u.Key
	if key == "" {
		key = uuid.NewString()
	}

	path, err := Plan(key, File{Name: u.Filename, Size: u.Size})
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(u.Content, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read content: %w", ErrInvalidFile, err)
	}
	if int64(len(data)) > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	url, err := s.blobs.Store(ctx, data, s.bucket, path)
	if err != nil {
		return nil, err
	}

	s.logger.Info("file uploaded", "path", path, "size", len(data))
	return &Result{Path: path, URL: url}, nil
}
