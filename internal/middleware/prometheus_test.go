// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/cinematch/internal/metrics"
)

func chiAdapter(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

func TestPrometheusMetrics_LabelsByRoutePattern(t *testing.T) {
	t.Parallel()

	r := chi.NewRouter()
	r.Use(chiAdapter(PrometheusMetrics))
	r.Get("/prom-test/movies/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	for _, path := range []string{"/prom-test/movies/1", "/prom-test/movies/2?x=y"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusTeapot {
			t.Fatalf("%s: status = %d", path, rec.Code)
		}
	}

	got := testutil.ToFloat64(metrics.APIRequestsTotal.WithLabelValues("GET", "/prom-test/movies/{id}", "418"))
	if got != 2 {
		t.Errorf("api_requests_total = %v, want 2", got)
	}
}

func TestPrometheusMetrics_DefaultStatusAndUnmatched(t *testing.T) {
	t.Parallel()

	// Outside chi there is no route context.
	handler := PrometheusMetrics(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	before := testutil.ToFloat64(metrics.APIRequestsTotal.WithLabelValues("PATCH", UnmatchedRoute, "200"))
	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodPatch, "/anything", nil))

	after := testutil.ToFloat64(metrics.APIRequestsTotal.WithLabelValues("PATCH", UnmatchedRoute, "200"))
	if after-before != 1 {
		t.Errorf("unmatched counter delta = %v, want 1", after-before)
	}
}

func TestStatusRecorder_KeepsFirstStatus(t *testing.T) {
	t.Parallel()

	rec := newStatusRecorder(httptest.NewRecorder())
	rec.WriteHeader(http.StatusNotFound)
	rec.WriteHeader(http.StatusOK)
	if rec.statusCode != http.StatusNotFound {
		t.Errorf("statusCode = %d, want 404", rec.statusCode)
	}
	if rec.Unwrap() == nil {
		t.Error("Unwrap returned nil")
	}
}
