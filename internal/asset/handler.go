// Package asset serves the static files of the browser host: the page, its
// scripts and the planar.wasm build.
package asset

import (
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path"
)

func init() {
	// Browsers refuse to stream-compile wasm served under any other type.
	_ = mime.AddExtensionType(".wasm", "application/wasm")
}

// Handler serves files from a web root directory.
type Handler struct {
	dir string
}

// NewHandler creates a handler for dir. A missing directory is logged, not
// fatal, so the API routes still come up.
func NewHandler(dir string) *Handler {
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		slog.Warn("web dir not found, static files will 404", "dir", dir)
	}
	return &Handler{dir: dir}
}

// Serve returns an http.Handler for the web root. The wasm build and the page
// change with every rebuild, so they are never cached.
func (h *Handler) Serve() http.Handler {
	fs := http.FileServer(http.Dir(h.dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch path.Ext(r.URL.Path) {
		case ".wasm", ".html", "":
			w.Header().Set("Cache-Control", "no-cache")
		default:
			w.Header().Set("Cache-Control", "public, max-age=3600")
		}
		fs.ServeHTTP(w, r)
	})
}
