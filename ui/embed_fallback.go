//go:build !ui_embed

// Package ui serves the console frontend.
package ui

import (
	"net/http"
)

const indexPage = `<!doctype html>
<html><head><meta charset="utf-8"><title>FFmpeg Builder API</title></head>
<body>
<h1>FFmpeg Builder API</h1>
<p>The console frontend is not embedded in this build.</p>
<ul>
<li><a href="/docs">API documentation</a></li>
<li><a href="/openapi.json">OpenAPI document</a></li>
<li><a href="/api/health">Health</a></li>
</ul>
</body></html>
`

// Handler serves a landing page linking to the API docs when the frontend
// is not built into the binary.
func Handler() (http.Handler, error) {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(indexPage))
	}), nil
}
