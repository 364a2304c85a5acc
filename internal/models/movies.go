// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package models

import (
	"time"

	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/recommend"
)

// MoviesPage is a page of the catalog in catalog order.
type MoviesPage struct {
	Movies     []catalog.Movie `json:"movies"`
	Pagination PaginationInfo  `json:"pagination"`
}

// Suggestion is a title matching a prefix query.
type Suggestion struct {
	Index int    `json:"index"`
	Title string `json:"title"`
}

// SuggestionsResponse lists titles starting with Query.
type SuggestionsResponse struct {
	Query       string       `json:"query"`
	Suggestions []Suggestion `json:"suggestions"`
}

// RecommendationsResponse is the top-N list for a selected title.
type RecommendationsResponse struct {
	Query   string                     `json:"query"`
	Index   int                        `json:"index"`
	Status  recommend.Status           `json:"status"`
	Heading string                     `json:"heading"`
	Items   []recommend.Recommendation `json:"items"`
}

// CatalogInfo describes the loaded bundle.
type CatalogInfo struct {
	Name       string    `json:"name"`
	Version    int       `json:"version"`
	MovieCount int       `json:"movie_count"`
	BuiltAt    time.Time `json:"built_at"`
	Checksum   string    `json:"checksum"`
	Source     string    `json:"source,omitempty"`

	// ResultCache is present when the ranking cache is enabled.
	ResultCache *ResultCacheInfo `json:"result_cache,omitempty"`
}

// ResultCacheInfo reports ranking cache counters.
type ResultCacheInfo struct {
	Size      int     `json:"size"`
	Capacity  int     `json:"capacity"`
	Hits      int64   `json:"hits"`
	Misses    int64   `json:"misses"`
	Evictions int64   `json:"evictions"`
	HitRate   float64 `json:"hit_rate"`
}

// HealthStatus reports service health.
type HealthStatus struct {
	Status        string  `json:"status"` // "healthy" or "degraded"
	Version       string  `json:"version"`
	CatalogLoaded bool    `json:"catalog_loaded"`
	MovieCount    int     `json:"movie_count"`
	WebSocket     bool    `json:"websocket_enabled"`
	Uptime        float64 `json:"uptime_seconds"`
}

// User-facing messages shared by the HTTP API, the WebSocket channel and the UI.
const (
	MsgSelectMovie         = "Please select a movie first."
	MsgMovieNotFound       = "The selected movie was not found. Try another."
	RecommendationsHeading = "Based on your choice, you might also like:"
)

// NewRecommendationsResponse converts a recommender result for the wire.
func NewRecommendationsResponse(res recommend.Result) RecommendationsResponse {
	items := res.Items
	if items == nil {
		items = []recommend.Recommendation{}
	}
	return RecommendationsResponse{
		Query:   res.Query,
		Index:   res.Index,
		Status:  res.Status,
		Heading: RecommendationsHeading,
		Items:   items,
	}
}
