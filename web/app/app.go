// Package app serves the server-rendered device dashboard.
package app

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/device-inventory/internal/devices"
	"github.com/JaimeStill/device-inventory/internal/uploads"
	"github.com/JaimeStill/device-inventory/pkg/module"
	"github.com/JaimeStill/device-inventory/pkg/web"
)

//go:embed public/*
var publicFS embed.FS

//go:embed server/layouts/*
var layoutFS embed.FS

//go:embed server/views/*
var viewFS embed.FS

const layout = "app.html"

var publicFiles = []string{
	"app.css",
}

var (
	listView   = web.ViewDef{Route: "/{$}", Template: "devices.html", Title: "Devices", Bundle: "app"}
	dialogView = web.ViewDef{Template: "dialog.html", Title: "Device", Bundle: "app"}
)

var errorViews = []web.ViewDef{
	{Template: "404.html", Title: "Not Found", Bundle: "app"},
	{Template: "403.html", Title: "Forbidden", Bundle: "app"},
}

var funcs = template.FuncMap{
	"accept": func() string { return uploads.Accept },
}

// NewModule creates the dashboard module mounted at basePath. Cross-origin
// browser POSTs are rejected with 403, so cookie sessions cannot be replayed
// by another site's forms.
func NewModule(
	basePath string,
	devs devices.System,
	up uploads.System,
	maxUploadSize int64,
	logger *slog.Logger,
) (*module.Module, error) {
	all := append([]web.ViewDef{listView, dialogView}, errorViews...)
	ts, err := web.NewTemplateSet(
		layoutFS,
		viewFS,
		"server/layouts/*.html",
		"server/views",
		basePath,
		all,
		funcs,
	)
	if err != nil {
		return nil, err
	}

	h := &handler{
		templates:     ts,
		devices:       devs,
		uploads:       up,
		maxUploadSize: maxUploadSize,
		logger:        logger.With("module", "app"),
	}

	m := module.New(basePath, buildRouter(ts, h))
	m.Use(http.NewCrossOriginProtection().Handler)
	return m, nil
}

func buildRouter(ts *web.TemplateSet, h *handler) http.Handler {
	r := web.NewRouter()
	r.SetFallback(ts.ErrorHandler(layout, errorViews[0], http.StatusNotFound))

	r.HandleFunc("GET "+listView.Route, h.list)
	r.HandleFunc("GET /devices/new", h.requireAdmin(h.newDialog))
	r.HandleFunc("POST /devices/new", h.requireAdmin(h.submitAdd))
	r.HandleFunc("GET /devices/{id}/edit", h.requireAdmin(h.editDialog))
	r.HandleFunc("POST /devices/{id}/edit", h.requireAdmin(h.submitEdit))
	r.HandleFunc("POST /devices/{id}/delete", h.requireAdmin(h.delete))

	web.PublicFileRoutes(r, publicFS, "public", publicFiles...)

	return r
}
