package devices

import (
	"context"

	"github.com/google/uuid"
)

// Store is the relational collaborator behind the device repository.
type Store interface {
	// ListDevices returns every device ordered by creation time ascending.
	// SoftwareVersions is not populated.
	ListDevices(ctx context.Context) ([]Device, error)

	// ListVersions returns every software version across all devices.
	ListVersions(ctx context.Context) ([]SoftwareVersion, error)

	InsertDevice(ctx context.Context, f Fields) (Device, error)

	// InsertVersions inserts rows for deviceID in one batch, preserving order.
	InsertVersions(ctx context.Context, deviceID uuid.UUID, rows []VersionInput) ([]SoftwareVersion, error)

	// UpdateDevice returns ErrNotFound when no row has id.
	UpdateDevice(ctx context.Context, id uuid.UUID, f Fields) error

	DeleteVersions(ctx context.Context, deviceID uuid.UUID) error

	// DeleteDevice returns ErrNotFound when no row has id.
	DeleteDevice(ctx context.Context, id uuid.UUID) error

	// InTx runs fn against a Store scoped to one transaction when the
	// backend supports it. Backends without transactions run fn directly.
	InTx(ctx context.Context, fn func(Store) error) error
}
