// Package web provides the embedded frontend files.
package web

import (
	"embed"
	"net/http"
)

// FS contains the embedded frontend files (index.html, static/css, static/js).
//
//go:embed index.html static
var FS embed.FS

// Handler serves the embedded frontend. index.html is served at the root
// and static assets under /static/.
func Handler() http.Handler {
	return http.FileServer(http.FS(FS))
}
