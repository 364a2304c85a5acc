// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"errors"
	"fmt"
	"sort"

	"github.com/tomtom215/cinematch/internal/cache"
	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/metrics"
)

// Recommender answers top-k similarity queries against a catalog.Store.
// It is safe for concurrent use.
type Recommender struct {
	store *catalog.Store

	// rankings memoizes rank results by row index. nil disables caching.
	rankings *cache.LRU[int, []Recommendation]
}

// Option configures a Recommender.
type Option func(*Recommender)

// WithCache memoizes up to size rankings. The store never changes, so
// cached rankings stay valid for the Recommender's lifetime. size <= 0
// disables the cache.
func WithCache(size int) Option {
	return func(r *Recommender) {
		if size > 0 {
			r.rankings = cache.NewLRU[int, []Recommendation](size)
		}
	}
}

// candidate is one (column, score) pair of a similarity row.
type candidate struct {
	index int
	score float64
}

// New creates a Recommender over store.
func New(store *catalog.Store, opts ...Option) (*Recommender, error) {
	if store == nil {
		return nil, errors.New("catalog store is required")
	}
	r := &Recommender{store: store}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Store returns the catalog the Recommender reads from.
func (r *Recommender) Store() *catalog.Store {
	return r.store
}

// Recommend returns the Limit movies most similar to title.
//
// When title matches no catalog movie the Result is empty, its Status is
// StatusNotFound and the error matches ErrNotFound.
func (r *Recommender) Recommend(title string) (Result, error) {
	res, _, err := r.Lookup(title)
	return res, err
}

// CacheStats reports ranking cache counters. ok is false when caching is
// disabled.
func (r *Recommender) CacheStats() (stats cache.Stats, ok bool) {
	if r.rankings == nil {
		return cache.Stats{}, false
	}
	return r.rankings.Stats(), true
}

// Lookup is Recommend that also reports whether the ranking came from the
// cache.
func (r *Recommender) Lookup(title string) (Result, bool, error) {
	res := Result{
		Query:  title,
		Index:  -1,
		Status: StatusNotFound,
		Items:  []Recommendation{},
	}

	index, ok := r.store.IndexOf(title)
	if !ok {
		return res, false, fmt.Errorf("%w: %q", ErrNotFound, title)
	}

	res.Index = index
	res.Status = StatusOK

	if r.rankings != nil {
		items, hit := r.rankings.Get(index)
		metrics.RecordCacheLookup(hit)
		if hit {
			res.Items = cloneItems(items)
			return res, true, nil
		}
	}

	row, ok := r.store.Row(index)
	if !ok {
		// Unreachable for a store built by catalog.New.
		return Result{Query: title, Index: -1, Status: StatusNotFound, Items: []Recommendation{}}, false,
			fmt.Errorf("%w: row %d out of range", catalog.ErrInvariantViolation, index)
	}

	res.Items = r.rank(index, row)
	if r.rankings != nil {
		r.rankings.Add(index, cloneItems(res.Items))
	}
	return res, false, nil
}

// rank orders row by score and returns the top Limit entries other than self.
func (r *Recommender) rank(self int, row []float64) []Recommendation {
	pairs := make([]candidate, len(row))
	for j, score := range row {
		pairs[j] = candidate{index: j, score: score}
	}

	// Stable sort keeps ascending column order for equal scores
	sort.SliceStable(pairs, func(a, b int) bool {
		return pairs[a].score > pairs[b].score
	})

	items := make([]Recommendation, 0, Limit)
	skipped := false
	for _, p := range pairs {
		if len(items) == Limit {
			break
		}
		if !skipped && p.index == self {
			skipped = true
			continue
		}
		movie, _ := r.store.Movie(p.index)
		items = append(items, Recommendation{
			Rank:  len(items) + 1,
			Index: p.index,
			Movie: movie,
			Score: p.score,
		})
	}
	return items
}

// cloneItems copies items so cached rankings are never shared with callers.
func cloneItems(items []Recommendation) []Recommendation {
	out := make([]Recommendation, len(items))
	copy(out, items)
	return out
}
