package api

import (
	"net/http"

	"github.com/JaimeStill/device-inventory/internal/config"
	"github.com/JaimeStill/device-inventory/internal/devices"
	"github.com/JaimeStill/device-inventory/internal/infrastructure"
	"github.com/JaimeStill/device-inventory/internal/uploads"
	"github.com/JaimeStill/device-inventory/pkg/openapi"
	"github.com/JaimeStill/device-inventory/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	spec *openapi.Spec,
	infra *infrastructure.Infrastructure,
	domain *Domain,
	cfg *config.Config,
) {
	devicesHandler := devices.NewHandler(domain.Devices, infra.Logger)
	uploadsHandler := uploads.NewHandler(domain.Uploads, infra.Logger, cfg.Storage.MaxUploadSizeBytes())

	routes.Register(
		mux,
		cfg.API.BasePath,
		spec,
		devicesHandler.Routes(),
		uploadsHandler.Routes(),
	)
}
