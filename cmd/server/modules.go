package main

import (
	"net/http"

	"github.com/JaimeStill/device-inventory/internal/api"
	"github.com/JaimeStill/device-inventory/internal/auth"
	"github.com/JaimeStill/device-inventory/internal/config"
	"github.com/JaimeStill/device-inventory/internal/infrastructure"
	"github.com/JaimeStill/device-inventory/pkg/middleware"
	"github.com/JaimeStill/device-inventory/pkg/module"
	"github.com/JaimeStill/device-inventory/web/app"
	"github.com/JaimeStill/device-inventory/web/scalar"
)

type Modules struct {
	API    *module.Module
	App    *module.Module
	Blobs  *module.Module
	Scalar *module.Module
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	domain := api.NewDomain(cfg, infra)

	apiModule, err := api.NewModule(cfg, infra, domain)
	if err != nil {
		return nil, err
	}

	appLogger := infra.Logger.With("module", "app")
	appModule, err := app.NewModule(
		cfg.App.BasePath,
		domain.Devices,
		domain.Uploads,
		cfg.Storage.MaxUploadSizeBytes(),
		infra.Logger,
	)
	if err != nil {
		return nil, err
	}
	appModule.Use(middleware.Logger(appLogger))
	appModule.Use(auth.Authenticate(infra.Tokens, cfg.Auth.CookieName, appLogger))

	blobsModule := module.New(cfg.Storage.PublicURL, infra.Storage.Handler())

	scalarModule, err := scalar.NewModule(
		"/scalar",
		cfg.API.BasePath+"/openapi.json",
		cfg.API.OpenAPI.Title,
	)
	if err != nil {
		return nil, err
	}

	return &Modules{
		API:    apiModule,
		App:    appModule,
		Blobs:  blobsModule,
		Scalar: scalarModule,
	}, nil
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
	router.Mount(m.App)
	router.Mount(m.Blobs)
	router.Mount(m.Scalar)
}

func buildRouter(infra *infrastructure.Infrastructure, cfg *config.Config) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", handleHealth)
	router.HandleNative("GET /readyz", handleReadiness(infra.Lifecycle, infra.Database, infra.Logger))
	router.HandleNative("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, cfg.App.BasePath+"/", http.StatusFound)
	})

	return router
}
