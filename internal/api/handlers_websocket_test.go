// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tomtom215/cinematch/internal/config"
)

func TestCheckWebSocketOrigin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		origins []string
		origin  string
		want    bool
	}{
		{"missing origin", []string{"*"}, "", false},
		{"allowed origin", []string{"https://cinematch.example"}, "https://cinematch.example", true},
		{"unknown origin", []string{"https://cinematch.example"}, "https://evil.example", false},
		{"wildcard", []string{"*"}, "https://anything.example", true},
		{"no origins configured", nil, "https://cinematch.example", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := &Handler{config: &config.Config{Security: config.SecurityConfig{CORSOrigins: tt.origins}}}
			req := httptest.NewRequest(http.MethodGet, "/api/v1/ws", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			if got := h.checkWebSocketOrigin(req); got != tt.want {
				t.Errorf("checkWebSocketOrigin() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCheckWebSocketOrigin_NilConfig(t *testing.T) {
	t.Parallel()

	h := &Handler{}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/ws", nil)
	req.Header.Set("Origin", "https://cinematch.example")
	if !h.checkWebSocketOrigin(req) {
		t.Error("expected origin to be accepted without config")
	}
}

func TestWebSocket_NoHub(t *testing.T) {
	t.Parallel()

	rec := serve(t, newTestHandler(t).WebSocket, http.MethodGet, "/api/v1/ws")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}
