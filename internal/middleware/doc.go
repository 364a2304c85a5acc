// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package middleware provides HTTP instrumentation middleware.

Key Components:

  - PrometheusMetrics: request totals, latency and in-flight gauge
  - PerformanceMonitor: sliding window of recent requests with per-route
    percentiles and slow request logging

Both label requests by their chi route pattern (for example
"/api/v1/recommendations") rather than the raw URL path, so query strings and
unmatched paths cannot grow label cardinality. Requests that matched no route
are labelled "unmatched".

Usage:

	perf := middleware.NewPerformanceMonitor(1000, time.Second)

	r.Route("/api/v1", func(r chi.Router) {
	    r.Use(chiMiddleware(middleware.PrometheusMetrics))
	    r.Use(perf.Middleware)
	    r.Get("/recommendations", handler.Recommendations)
	})

	stats := perf.GetStats() // per-route p50/p95/p99
*/
package middleware
