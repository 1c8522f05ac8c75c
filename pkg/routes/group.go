// Package routes declares HTTP routes together with their OpenAPI
// operations so registration and documentation stay in one place.
package routes

import (
	"net/http"

	"github.com/JaimeStill/device-inventory/pkg/openapi"
)

// Route is a single HTTP endpoint. Pattern is relative to its group prefix.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
	OpenAPI *openapi.Operation
}

// Group represents a collection of routes under a common URL prefix.
// Groups can contain child groups for hierarchical route organization.
type Group struct {
	Prefix      string
	Tags        []string
	Description string
	Routes      []Route
	Children    []Group
	Schemas     map[string]*openapi.Schema
}

// AddToSpec documents the group's routes under basePath. Operations without
// tags inherit the group's tags; routes without OpenAPI metadata are skipped.
func (g *Group) AddToSpec(basePath string, spec *openapi.Spec) {
	g.addToSpec(basePath, spec)
}

func (g *Group) addToSpec(prefix string, spec *openapi.Spec) {
	full := prefix + g.Prefix

	if len(g.Schemas) > 0 {
		spec.Components.AddSchemas(g.Schemas)
	}

	for _, route := range g.Routes {
		if route.OpenAPI == nil {
			continue
		}

		op := route.OpenAPI
		if len(op.Tags) == 0 && len(g.Tags) > 0 {
			op.Tags = g.Tags
		}

		path := full + route.Pattern
		item, ok := spec.Paths[path]
		if !ok {
			item = &openapi.PathItem{}
			spec.Paths[path] = item
		}

		switch route.Method {
		case http.MethodGet:
			item.Get = op
		case http.MethodPost:
			item.Post = op
		case http.MethodPut:
			item.Put = op
		case http.MethodDelete:
			item.Delete = op
		}
	}

	for i := range g.Children {
		g.Children[i].addToSpec(full, spec)
	}
}
