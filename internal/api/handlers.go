// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tomtom215/cinematch/internal/artifact"
	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/middleware"
	"github.com/tomtom215/cinematch/internal/recommend"
	ws "github.com/tomtom215/cinematch/internal/websocket"
)

// Version is reported by the health endpoint. Overridden at build time with
// -ldflags "-X github.com/tomtom215/cinematch/internal/api.Version=...".
var Version = "dev"

// Handler contains dependencies for API handlers
//
// Handler methods are split across files:
//   - handlers.go: Handler struct, constructor and WebSocket upgrade
//   - handlers_helpers.go: response and parameter helpers
//   - handlers_health.go: health and performance endpoints
//   - handlers_movies.go: catalog listing, suggestions and bundle metadata
//   - handlers_recommend.go: recommendations
type Handler struct {
	recommender *recommend.Recommender
	store       *catalog.Store
	catalogMeta *artifact.Metadata
	config      *config.Config
	wsHub       *ws.Hub
	perfMon     *middleware.PerformanceMonitor
	startTime   time.Time
}

// NewHandler creates a new API handler.
//
// rec may be nil, in which case catalog endpoints answer 503 and the
// readiness probe fails. meta describes the loaded bundle and may be nil
// when the store was built in memory. wsHub may be nil to disable the
// WebSocket channel.
//
// Example:
//
//	handler := api.NewHandler(rec, meta, cfg, hub)
//	router := api.NewRouter(handler, cfg)
//	http.ListenAndServe(cfg.Addr(), router.SetupChi())
func NewHandler(rec *recommend.Recommender, meta *artifact.Metadata, cfg *config.Config, wsHub *ws.Hub) *Handler {
	h := &Handler{
		recommender: rec,
		catalogMeta: meta,
		config:      cfg,
		wsHub:       wsHub,
		perfMon:     middleware.NewPerformanceMonitor(1000, time.Second),
		startTime:   time.Now(),
	}
	if rec != nil {
		h.store = rec.Store()
	}
	return h
}

// PerformanceMonitor returns the monitor fed by the API middleware.
func (h *Handler) PerformanceMonitor() *middleware.PerformanceMonitor {
	return h.perfMon
}

// catalogReady reports whether a catalog is loaded, answering 503 if not.
func (h *Handler) catalogReady(w http.ResponseWriter) bool {
	if h.recommender == nil || h.store == nil {
		respondError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Catalog is not loaded", nil)
		return false
	}
	return true
}

// getUpgrader returns the WebSocket upgrader
func (h *Handler) getUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		CheckOrigin:      h.checkWebSocketOrigin,
		HandshakeTimeout: 10 * time.Second,
	}
}

// checkWebSocketOrigin validates WebSocket connection origins
func (h *Handler) checkWebSocketOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")

	// Browsers always send Origin on WebSocket upgrades
	if origin == "" {
		logging.Warn().Msg("WebSocket connection rejected: missing Origin header")
		return false
	}

	if h.config == nil {
		return true
	}

	for _, allowedOrigin := range h.config.Security.CORSOrigins {
		if allowedOrigin == "*" || allowedOrigin == origin {
			return true
		}
	}

	logging.Warn().Str("origin", sanitizeLogValue(origin)).Msg("WebSocket connection rejected from unauthorized origin")
	return false
}

// WebSocket upgrades the connection and attaches it to the hub
//
// @Summary WebSocket recommendation channel
// @Description Upgrades to a WebSocket. Send {"type":"recommend","data":{"title":"..."}} and receive recommendations, not_found or error messages.
// @Tags Realtime
// @Success 101 {string} string "Switching Protocols"
// @Failure 503 {object} models.APIResponse "WebSocket service unavailable"
// @Router /ws [get]
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	if h.wsHub == nil {
		logging.Warn().Msg("WebSocket connection rejected: hub not initialized")
		respondError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "WebSocket service unavailable", nil)
		return
	}

	upgrader := h.getUpgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Error().Err(err).Msg("WebSocket upgrade error")
		return
	}

	client := ws.NewClient(h.wsHub, conn)
	if !h.wsHub.Attach(client) {
		_ = conn.Close()
		return
	}
	client.Start()
}
