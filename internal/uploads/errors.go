package uploads

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/JaimeStill/device-inventory/pkg/storage"
)

// Domain errors for upload operations.
var (
	ErrInvalidFile         = errors.New("invalid file")
	ErrFileTooLarge        = fmt.Errorf("%w: file exceeds maximum upload size", ErrInvalidFile)
	ErrUnsupportedFileType = fmt.Errorf("%w: unsupported file type", ErrInvalidFile)
	ErrInvalidKey          = fmt.Errorf("%w: invalid association key", ErrInvalidFile)
	ErrStorageWrite        = errors.New("storage write failed")
)

// MapHTTPStatus maps domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrFileTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	if errors.Is(err, ErrInvalidFile) {
		return http.StatusBadRequest
	}
	if errors.Is(err, storage.ErrInvalidKey) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
