// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"net/http"
	"path"
	"strings"

	"github.com/tomtom215/cinematch/internal/config"
)

// Router sets up HTTP routes using Chi router.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	ui            http.Handler
}

// NewRouter creates a router for handler. cfg may be nil, in which case the
// secure middleware defaults apply (no CORS origins, 100 requests/minute).
func NewRouter(handler *Handler, cfg *config.Config) *Router {
	chiMw := NewChiMiddleware(nil)
	if cfg != nil {
		chiMw = ChiMiddlewareFromConfig(cfg.Security)
	}

	return &Router{
		handler:       handler,
		chiMiddleware: chiMw,
		ui:            http.FileServer(http.FS(uiFiles())),
	}
}

// serveStaticOrIndex serves the embedded UI, falling back to index.html for
// unknown paths.
func (router *Router) serveStaticOrIndex(w http.ResponseWriter, r *http.Request) {
	p := r.URL.Path

	switch ext := path.Ext(p); ext {
	case ".js", ".css":
		w.Header().Set("Cache-Control", "public, max-age=3600")
	case ".svg", ".png", ".ico":
		w.Header().Set("Cache-Control", "public, max-age=604800")
	default:
		w.Header().Set("Cache-Control", "public, max-age=300")
	}

	w.Header().Set("Content-Security-Policy",
		"default-src 'self'; script-src 'self'; style-src 'self'; connect-src 'self' ws: wss:; img-src 'self' data:; frame-ancestors 'none'")
	w.Header().Set("X-Content-Type-Options", "nosniff")

	if p == "/" || p == "/index.html" || !uiFileExists(strings.TrimPrefix(p, "/")) {
		serveIndex(w, r)
		return
	}
	router.ui.ServeHTTP(w, r)
}
