// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cinematch/internal/artifact"
	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/models"
	"github.com/tomtom215/cinematch/internal/recommend"
)

//nolint:gochecknoinits // init ensures consistent logging for tests
func init() {
	logging.Init(logging.Config{
		Level:  "info",
		Format: "console",
		Output: io.Discard,
	})
}

// exampleTitles and exampleMatrix form the seven-movie catalog where row A
// is [1.0, 0.9, 0.9, 0.5, 0.4, 0.3, 0.2].
var exampleTitles = []string{"A", "B", "C", "D", "E", "F", "G"}

func exampleMatrix() catalog.Matrix {
	m := catalog.Matrix{
		{1.0, 0.9, 0.9, 0.5, 0.4, 0.3, 0.2},
	}
	for i := 1; i < len(exampleTitles); i++ {
		row := make([]float64, len(exampleTitles))
		for j := range row {
			d := i - j
			if d < 0 {
				d = -d
			}
			row[j] = 1 / float64(1+d)
		}
		m = append(m, row)
	}
	return m
}

func newTestRecommender(t *testing.T) *recommend.Recommender {
	t.Helper()
	movies := make([]catalog.Movie, len(exampleTitles))
	for i, title := range exampleTitles {
		movies[i] = catalog.Movie{ID: 100 + i, Title: title, Tags: "tag" + title}
	}
	store, err := catalog.New(movies, exampleMatrix())
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	rec, err := recommend.New(store)
	if err != nil {
		t.Fatalf("recommend.New: %v", err)
	}
	return rec
}

func testConfig() *config.Config {
	return &config.Config{
		Security: config.SecurityConfig{
			CORSOrigins:       []string{"https://cinematch.example"},
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: true,
		},
	}
}

func testMetadata() *artifact.Metadata {
	return &artifact.Metadata{
		Name:       "movies",
		Version:    3,
		BuiltAt:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		MovieCount: len(exampleTitles),
		Checksum:   "abc123",
		Source:     "movies.csv+similarity.csv",
	}
}

// newTestHandler returns a handler over the example catalog without a hub.
func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	return NewHandler(newTestRecommender(t), testMetadata(), testConfig(), nil)
}

// newTestServer serves the full router for handler.
func newTestServer(t *testing.T, h *Handler) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(NewRouter(h, h.config).SetupChi())
	t.Cleanup(srv.Close)
	return srv
}

// decodeResponse decodes the envelope and, when data is non-nil, its data.
func decodeResponse(t *testing.T, body []byte, data interface{}) models.APIResponse {
	t.Helper()
	var raw struct {
		models.APIResponse
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		t.Fatalf("decode %s: %v", body, err)
	}
	if data != nil && len(raw.Data) > 0 {
		if err := json.Unmarshal(raw.Data, data); err != nil {
			t.Fatalf("decode data %s: %v", raw.Data, err)
		}
	}
	return raw.APIResponse
}

// serve runs one request against handler fn.
func serve(t *testing.T, fn http.HandlerFunc, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	fn(rec, httptest.NewRequest(method, target, nil))
	return rec
}
