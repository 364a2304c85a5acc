// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package api provides the HTTP surface of the recommendation service.

Routing uses chi with the following layout:

	/api/v1/health              health, live, ready and performance probes
	/api/v1/movies              catalog page in catalog order
	/api/v1/movies/suggest      title prefix suggestions
	/api/v1/recommendations     top 5 similar movies for a title
	/api/v1/catalog             loaded bundle metadata
	/api/v1/ws                  WebSocket recommendation channel
	/metrics                    Prometheus metrics
	/swagger/*                  OpenAPI documentation
	/*                          embedded single-page UI

Every JSON response uses the models.APIResponse envelope:

	{
	  "status": "success",
	  "data": {...},
	  "metadata": {"timestamp": "2026-01-01T00:00:00Z"}
	}

Errors set status to "error" and carry a machine readable code:

	VALIDATION_ERROR     400  empty or malformed query parameters
	MOVIE_NOT_FOUND      404  title matched no catalog movie
	METHOD_NOT_ALLOWED   405
	RATE_LIMITED         429
	SERVICE_UNAVAILABLE  503  catalog or WebSocket hub not available
	INTERNAL_ERROR       500

Global middleware adds a request ID, real client IP, panic recovery and
CORS. API routes add per-IP rate limiting (go-chi/httprate), security
headers, gzip compression and Prometheus instrumentation.
*/
package api
