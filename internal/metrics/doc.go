// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package metrics provides Prometheus metrics collection and export for observability.

Metrics are registered on the default registry with promauto and exposed at
the /metrics endpoint in Prometheus text format:

	curl http://localhost:8501/metrics

# Available Metrics

API Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: Requests in flight (gauge)

Recommendation Metrics:
  - recommendations_total: Queries by outcome (counter)
    Labels: source, status
  - recommendation_duration_seconds: Ranking latency (histogram)
  - recommendation_cache_lookups_total: Ranking cache hits and misses (counter)
    Labels: result

Catalog Metrics:
  - catalog_movies: Movies in the loaded catalog (gauge)
  - catalog_bundle_version: Loaded bundle version (gauge)
  - catalog_load_duration_seconds: Bundle load time (histogram)
    Labels: origin
  - catalog_load_errors_total: Failed loads (counter)
    Labels: reason
  - bundle_download_attempts_total / bundle_download_bytes_total

WebSocket Metrics:
  - websocket_connections, websocket_messages_sent_total,
    websocket_messages_received_total, websocket_errors_total

Circuit Breaker Metrics:
  - circuit_breaker_state: 0=closed, 1=half-open, 2=open (gauge)
  - circuit_breaker_requests_total: Labels name, result
  - circuit_breaker_consecutive_failures (gauge)
  - circuit_breaker_state_transitions_total: Labels name, from_state, to_state

# Usage

	start := time.Now()
	res, err := recommender.Recommend(title)
	metrics.RecordRecommendation("http", string(res.Status), time.Since(start))
*/
package metrics
