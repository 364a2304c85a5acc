// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package main provides the Cinematch HTTP server
//
// @title Cinematch API
// @version 1.0
// @description Content-based movie recommendations. Pick a title from the catalog and
// @description receive the five most similar movies from a precomputed similarity matrix.
// @description
// @description ## Error Responses
// @description
// @description All error responses follow this format:
// @description ```json
// @description {
// @description   "status": "error",
// @description   "data": null,
// @description   "error": {
// @description     "code": "MOVIE_NOT_FOUND",
// @description     "message": "The selected movie was not found. Try another."
// @description   },
// @description   "metadata": {
// @description     "timestamp": "2026-01-02T03:04:05Z"
// @description   }
// @description }
// @description ```
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/cinematch/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:8501
// @BasePath /api/v1
// @schemes http https
//
// @tag.name Core
// @tag.description Health checks and performance statistics
//
// @tag.name Catalog
// @tag.description Catalog listing, title suggestions and bundle metadata
//
// @tag.name Recommendations
// @tag.description Top-5 similar movies for a selected title
//
// @tag.name Realtime
// @tag.description WebSocket recommendation channel
package main
