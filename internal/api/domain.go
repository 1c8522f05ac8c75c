package api

import (
	"github.com/JaimeStill/device-inventory/internal/config"
	"github.com/JaimeStill/device-inventory/internal/devices"
	"github.com/JaimeStill/device-inventory/internal/infrastructure"
	"github.com/JaimeStill/device-inventory/internal/uploads"
)

// Domain holds the domain systems shared by the API and dashboard modules.
type Domain struct {
	Devices devices.System
	Uploads uploads.System
}

// NewDomain creates the domain systems over the shared infrastructure.
func NewDomain(cfg *config.Config, infra *infrastructure.Infrastructure) *Domain {
	return &Domain{
		Devices: devices.New(
			devices.NewPostgresStore(infra.Database.Connection()),
			infra.Logger,
		),
		Uploads: uploads.New(
			infra.Storage,
			cfg.Uploads.Bucket,
			infra.Logger,
		),
	}
}
