package routes

import (
	"net/http"

	"github.com/JaimeStill/device-inventory/pkg/openapi"
)

// Register adds every route in groups to mux and documents them in spec
// under basePath. Mux patterns are relative to the module mount point.
func Register(mux *http.ServeMux, basePath string, spec *openapi.Spec, groups ...Group) {
	for _, group := range groups {
		register(mux, "", group)
		if spec != nil {
			group.AddToSpec(basePath, spec)
		}
	}
}

func register(mux *http.ServeMux, prefix string, group Group) {
	full := prefix + group.Prefix
	for _, route := range group.Routes {
		mux.HandleFunc(route.Method+" "+full+route.Pattern, route.Handler)
	}
	for _, child := range group.Children {
		register(mux, full, child)
	}
}
