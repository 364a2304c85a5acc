// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package recommend ranks catalog movies by similarity to a chosen title.
//
// # Algorithm
//
// Recommend resolves the title to its first catalog row, reads that row of
// the similarity matrix and ranks every column by score, highest first. Equal
// scores keep ascending column order (a stable sort over pairs generated in
// column order). The query row itself is removed once and the first Limit
// remaining movies are returned.
//
// # Results
//
// A missing title is not a failure of the process: Recommend returns an empty
// Result with StatusNotFound together with an error matching ErrNotFound.
// Catalog/matrix inconsistencies are rejected when the catalog.Store is built
// and are never reported per call.
//
// # Usage
//
//	store, err := catalog.New(movies, matrix)
//	if err != nil {
//	    return err // wraps catalog.ErrInvariantViolation
//	}
//	rec, _ := recommend.New(store)
//
//	res, err := rec.Recommend("Avatar")
//	if errors.Is(err, recommend.ErrNotFound) {
//	    // ask the user to pick another title
//	}
//	fmt.Println(res.Titles())
//
// # Thread Safety
//
// A Recommender may be shared by any number of goroutines. Its only mutable
// state is the optional ranking cache, which is mutex-guarded.
package recommend
