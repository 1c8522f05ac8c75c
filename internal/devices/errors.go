package devices

import (
	"errors"
	"net/http"
)

// Domain errors for device operations.
var (
	ErrNotFound               = errors.New("device not found")
	ErrDuplicate              = errors.New("device already exists")
	ErrValidation             = errors.New("validation failed")
	ErrDeviceCreate           = errors.New("device create failed")
	ErrSoftwareVersionInsert  = errors.New("software version insert failed")
	ErrDeviceUpdate           = errors.New("device update failed")
	ErrSoftwareVersionReplace = errors.New("software version replace failed")
	ErrDeviceDelete           = errors.New("device delete failed")
	ErrAggregateFetch         = errors.New("aggregate fetch failed")
	ErrDeviceList             = errors.New("device list failed")
	ErrSoftwareVersionList    = errors.New("software version list failed")
)

// MapHTTPStatus maps domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrValidation) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
