package dashboard

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/device-inventory/internal/devices"
	"github.com/JaimeStill/device-inventory/internal/uploads"
)

var (
	ErrInvalidState     = errors.New("invalid dialog state")
	ErrUploadInProgress = errors.New("an upload is already in progress")
	ErrDialogDisposed   = errors.New("dialog closed before the operation finished")
	ErrForbidden        = errors.New("administrator required")
	ErrRowIndex         = errors.New("software version row out of range")
)

// MapHTTPStatus maps dialog, device, and upload errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrInvalidState), errors.Is(err, ErrUploadInProgress), errors.Is(err, ErrDialogDisposed):
		return http.StatusConflict
	case errors.Is(err, ErrRowIndex):
		return http.StatusBadRequest
	case errors.Is(err, uploads.ErrInvalidFile):
		return uploads.MapHTTPStatus(err)
	default:
		return devices.MapHTTPStatus(err)
	}
}
