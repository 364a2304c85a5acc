// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"fmt"
	"math"
)

// Store is the read-only catalog and similarity matrix.
type Store struct {
	movies  []Movie
	matrix  Matrix
	byTitle map[string]int
	titles  *titleTrie
}

// New validates movies and matrix and returns an immutable Store.
//
// The inputs are copied, so later changes by the caller are not observed.
// Any misalignment (matrix row count differing from the catalog length, a
// ragged row, an empty catalog or a non-finite score) is reported as an
// *InvariantError wrapping ErrInvariantViolation.
func New(movies []Movie, matrix Matrix) (*Store, error) {
	if err := Validate(movies, matrix); err != nil {
		return nil, err
	}

	n := len(movies)
	s := &Store{
		movies:  make([]Movie, n),
		matrix:  make(Matrix, n),
		byTitle: make(map[string]int, n),
		titles:  newTitleTrie(),
	}
	copy(s.movies, movies)

	for i, row := range matrix {
		s.matrix[i] = append([]float64(nil), row...)
	}

	for i, m := range s.movies {
		// First match wins for duplicate titles
		if _, dup := s.byTitle[m.Title]; !dup {
			s.byTitle[m.Title] = i
		}
		s.titles.insert(m.Title, i)
	}

	return s, nil
}

// Validate checks that movies and matrix form a consistent catalog without
// building a Store.
func Validate(movies []Movie, matrix Matrix) error {
	n := len(movies)
	if n == 0 {
		return invariantf(-1, 1, 0, "catalog is empty")
	}
	if len(matrix) != n {
		return invariantf(-1, n, len(matrix), "similarity matrix row count does not match catalog length")
	}
	for i, row := range matrix {
		if len(row) != n {
			return invariantf(i, n, len(row), "similarity matrix row has wrong column count")
		}
		for j, score := range row {
			if math.IsNaN(score) || math.IsInf(score, 0) {
				return invariantf(i, 0, 0, fmt.Sprintf("similarity score in column %d is not finite", j))
			}
		}
	}
	return nil
}

// Len returns the number of movies, which is also the matrix dimension.
func (s *Store) Len() int {
	return len(s.movies)
}

// Movie returns the movie at row i.
func (s *Store) Movie(i int) (Movie, bool) {
	if i < 0 || i >= len(s.movies) {
		return Movie{}, false
	}
	return s.movies[i], true
}

// Movies returns a copy of the catalog in row order.
func (s *Store) Movies() []Movie {
	out := make([]Movie, len(s.movies))
	copy(out, s.movies)
	return out
}

// Titles returns every title in row order, duplicates included.
func (s *Store) Titles() []string {
	out := make([]string, len(s.movies))
	for i, m := range s.movies {
		out[i] = m.Title
	}
	return out
}

// IndexOf resolves a title to the first row whose title matches exactly.
func (s *Store) IndexOf(title string) (int, bool) {
	i, ok := s.byTitle[title]
	return i, ok
}

// Row returns a copy of similarity row i.
func (s *Store) Row(i int) ([]float64, bool) {
	if i < 0 || i >= len(s.matrix) {
		return nil, false
	}
	return append([]float64(nil), s.matrix[i]...), true
}

// Suggest returns up to limit movies whose title starts with prefix,
// compared case-insensitively, in catalog order. A limit <= 0 means
// DefaultSuggestLimit.
func (s *Store) Suggest(prefix string, limit int) []Movie {
	if limit <= 0 {
		limit = DefaultSuggestLimit
	}
	rows := s.titles.withPrefix(prefix, limit)
	out := make([]Movie, 0, len(rows))
	for _, i := range rows {
		out = append(out, s.movies[i])
	}
	return out
}
