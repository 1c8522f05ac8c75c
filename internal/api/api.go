// Package api assembles the JSON API module: device and upload routes, the
// generated OpenAPI document, and the module middleware chain.
package api

import (
	"net/http"

	"github.com/JaimeStill/device-inventory/internal/auth"
	"github.com/JaimeStill/device-inventory/internal/config"
	"github.com/JaimeStill/device-inventory/internal/infrastructure"
	"github.com/JaimeStill/device-inventory/pkg/middleware"
	"github.com/JaimeStill/device-inventory/pkg/module"
	"github.com/JaimeStill/device-inventory/pkg/openapi"
)

// NewModule creates the API module mounted at cfg.API.BasePath.
func NewModule(
	cfg *config.Config,
	infra *infrastructure.Infrastructure,
	domain *Domain,
) (*module.Module, error) {
	scoped := infra.Scoped("api")

	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)

	mux := http.NewServeMux()
	registerRoutes(mux, spec, scoped, domain, cfg)

	specBytes, err := openapi.MarshalJSON(spec)
	if err != nil {
		return nil, err
	}
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(specBytes))

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(scoped.Logger))
	m.Use(auth.Authenticate(scoped.Tokens, cfg.Auth.CookieName, scoped.Logger))

	return m, nil
}
