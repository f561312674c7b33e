//go:build ui_embed

// Package ui serves the console frontend.
package ui

import (
	"embed"
	"io/fs"
	"net/http"
	"path"
	"strings"
)

// Build the console first (pnpm build), then: go build -tags ui_embed .
//
//go:embed all:dist
var distFS embed.FS

// Handler serves the embedded console. Unknown extension-less paths get
// index.html so client-side routes survive a reload.
func Handler() (http.Handler, error) {
	fsys, err := fs.Sub(distFS, "dist")
	if err != nil {
		return nil, err
	}

	fileServer := http.FileServer(http.FS(fsys))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
		if stat, statErr := fs.Stat(fsys, name); statErr == nil && !stat.IsDir() {
			fileServer.ServeHTTP(w, r)
			return
		}

		if !strings.Contains(path.Base(name), ".") {
			r.URL.Path = "/"
		}
		fileServer.ServeHTTP(w, r)
	}), nil
}
