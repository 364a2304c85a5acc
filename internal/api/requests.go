// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

// Page size bounds for the catalog listing.
const (
	DefaultPageSize = 100
	MaxPageSize     = 1000
)

// MaxSuggestLimit caps the suggestions endpoint.
const MaxSuggestLimit = 50

// MoviesRequest is the query of GET /movies.
type MoviesRequest struct {
	Limit  int `query:"limit" validate:"min=1,max=1000"`
	Offset int `query:"offset" validate:"min=0"`
}

// SuggestRequest is the query of GET /movies/suggest.
type SuggestRequest struct {
	Query string `query:"q" validate:"notblank,max=200"`
	Limit int    `query:"limit" validate:"min=1,max=50"`
}
