// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"errors"

	"github.com/tomtom215/cinematch/internal/catalog"
)

// Limit is the number of recommendations returned for a title.
const Limit = 5

// ErrNotFound is returned when a title does not match any catalog movie.
var ErrNotFound = errors.New("movie not found")

// Status is the outcome of a recommendation query.
type Status string

const (
	// StatusOK means the title resolved and Items holds the ranking.
	StatusOK Status = "ok"

	// StatusNotFound means the title matched no catalog movie.
	StatusNotFound Status = "not_found"
)

// Recommendation is one ranked movie.
type Recommendation struct {
	// Rank is the 1-based position in the result.
	Rank int `json:"rank"`

	// Index is the movie's catalog row.
	Index int `json:"index"`

	// Movie is the recommended catalog entry.
	Movie catalog.Movie `json:"movie"`

	// Score is the similarity between the query movie and this one.
	Score float64 `json:"score"`
}

// Result is the outcome of Recommend.
type Result struct {
	// Query is the title as supplied by the caller.
	Query string `json:"query"`

	// Index is the resolved catalog row, or -1 when not found.
	Index int `json:"index"`

	// Status reports whether the title resolved.
	Status Status `json:"status"`

	// Items is ordered by descending score, ties broken by lower row.
	Items []Recommendation `json:"items"`
}

// Titles returns the recommended titles in rank order.
func (r Result) Titles() []string {
	titles := make([]string, len(r.Items))
	for i, item := range r.Items {
		titles[i] = item.Movie.Title
	}
	return titles
}
