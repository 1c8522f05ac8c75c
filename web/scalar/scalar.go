// Package scalar serves the interactive API reference for the OpenAPI document.
package scalar

import (
	"bytes"
	_ "embed"
	"html/template"
	"net/http"

	"github.com/JaimeStill/device-inventory/pkg/module"
	"github.com/JaimeStill/device-inventory/pkg/web"
)

//go:embed index.html
var indexHTML string

var index = template.Must(template.New("index").Parse(indexHTML))

// NewModule creates the reference module at prefix rendering the document at specURL.
func NewModule(prefix, specURL, title string) (*module.Module, error) {
	var buf bytes.Buffer
	err := index.Execute(&buf, struct {
		SpecURL string
		Title   string
	}{specURL, title})
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", web.ServeEmbeddedFile(buf.Bytes(), "text/html; charset=utf-8"))

	return module.New(prefix, mux), nil
}
