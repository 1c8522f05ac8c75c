package web

import (
	"io/fs"
	"mime"
	"net/http"
	"path"
)

// PublicFile returns a handler serving one file from dir within fsys.
func PublicFile(fsys fs.FS, dir, name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			http.NotFound(w, r)
			return
		}

		contentType := mime.TypeByExtension(path.Ext(name))
		if contentType == "" {
			contentType = http.DetectContentType(data)
		}
		w.Header().Set("Content-Type", contentType)
		w.Write(data)
	}
}

// PublicFileRoutes registers GET /<name> for each file on r.
func PublicFileRoutes(r *Router, fsys fs.FS, dir string, names ...string) {
	for _, name := range names {
		r.HandleFunc("GET /"+name, PublicFile(fsys, dir, name))
	}
}

// ServeEmbeddedFile returns a handler writing data with contentType.
func ServeEmbeddedFile(data []byte, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.Write(data)
	}
}
