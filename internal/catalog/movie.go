// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

// Movie is one catalog entry. Its identity is its row position in the
// catalog, not ID.
type Movie struct {
	// ID is the upstream movie identifier (e.g. a TMDB id).
	ID int `json:"id"`

	// Title is matched exactly and case-sensitively by IndexOf.
	Title string `json:"title"`

	// Tags is the free-text descriptor the similarity matrix was built from.
	Tags string `json:"tags,omitempty"`
}

// Matrix is a square similarity matrix. Matrix[i][j] scores movie i against
// movie j. Only rows are read; symmetry is not assumed.
type Matrix [][]float64
