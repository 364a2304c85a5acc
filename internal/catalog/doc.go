// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package catalog holds the movie catalog and its pairwise similarity matrix.
//
// A Store is built once from a list of movies and an N×N matrix whose rows and
// columns are aligned with the catalog by position. Construction validates the
// alignment and rejects any mismatch with ErrInvariantViolation; after that the
// Store is immutable.
//
// # Title Resolution
//
// Titles are not unique by construction. IndexOf resolves a title to the first
// catalog row carrying it, using an index built at construction time.
//
// # Thread Safety
//
// A Store is never mutated after New returns, so all methods are safe for
// concurrent use without locking.
package catalog
