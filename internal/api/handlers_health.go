// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/cinematch/internal/models"
)

// Health handles health check requests
//
// @Summary Get service health
// @Description Returns service health including whether a catalog is loaded, its size and uptime
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.HealthStatus} "Health status retrieved successfully"
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}

	loaded := h.store != nil
	status := "healthy"
	if !loaded {
		status = "degraded"
	}

	movieCount := 0
	if loaded {
		movieCount = h.store.Len()
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: models.HealthStatus{
			Status:        status,
			Version:       Version,
			CatalogLoaded: loaded,
			MovieCount:    movieCount,
			WebSocket:     h.wsHub != nil,
			Uptime:        time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// HealthLive handles liveness probe requests (Kubernetes-style)
//
// @Summary Liveness probe
// @Description Returns 200 OK while the process is alive
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse "Service is alive"
// @Router /health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"alive":  true,
			"uptime": time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// HealthReady handles readiness probe requests (Kubernetes-style)
//
// @Summary Readiness probe
// @Description Returns 200 OK once a catalog is loaded, 503 otherwise
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse "Service is ready"
// @Failure 503 {object} models.APIResponse "Service is not ready"
// @Router /health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}

	if h.store == nil {
		w.Header().Set("Cache-Control", "no-store")
		respondJSON(w, http.StatusServiceUnavailable, &models.APIResponse{
			Status: "error",
			Data:   map[string]interface{}{"ready": false},
			Metadata: models.Metadata{
				Timestamp: time.Now(),
			},
			Error: &models.APIError{
				Code:    "SERVICE_UNAVAILABLE",
				Message: "Catalog is not loaded",
			},
		})
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"ready":       true,
			"movie_count": h.store.Len(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// PerformanceStats returns per-route latency percentiles for recent requests
//
// @Summary API performance statistics
// @Description Returns request counts and p50/p95/p99 latency per route over the last 1000 API requests
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse{data=[]middleware.EndpointStats} "Performance statistics"
// @Router /health/performance [get]
func (h *Handler) PerformanceStats(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   h.perfMon.GetStats(),
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}
