// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/models"
)

// Movies returns a page of the catalog in catalog order
//
// @Summary List catalog movies
// @Description Returns movies in catalog order. The position of a movie is its catalog index.
// @Tags Catalog
// @Produce json
// @Param limit query int false "Page size (1-1000)" default(100)
// @Param offset query int false "Offset into the catalog" default(0)
// @Success 200 {object} models.APIResponse{data=models.MoviesPage} "Catalog page"
// @Failure 400 {object} models.APIResponse "Invalid pagination"
// @Failure 503 {object} models.APIResponse "Catalog not loaded"
// @Router /movies [get]
func (h *Handler) Movies(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) || !h.catalogReady(w) {
		return
	}
	start := time.Now()

	req := MoviesRequest{
		Limit:  getIntParam(r, "limit", DefaultPageSize),
		Offset: getIntParam(r, "offset", 0),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	total := h.store.Len()
	from := min(req.Offset, total)
	to := min(from+req.Limit, total)

	page := make([]catalog.Movie, 0, to-from)
	for i := from; i < to; i++ {
		movie, _ := h.store.Movie(i)
		page = append(page, movie)
	}

	respondSuccess(w, models.MoviesPage{
		Movies: page,
		Pagination: models.PaginationInfo{
			Limit:      req.Limit,
			Offset:     req.Offset,
			HasMore:    to < total,
			TotalCount: total,
		},
	}, start)
}

// SuggestMovies returns titles starting with a prefix
//
// @Summary Suggest movie titles
// @Description Case-insensitive title prefix search in catalog order, used to populate the title selector
// @Tags Catalog
// @Produce json
// @Param q query string true "Title prefix"
// @Param limit query int false "Maximum suggestions (1-50)" default(10)
// @Success 200 {object} models.APIResponse{data=models.SuggestionsResponse} "Matching titles"
// @Failure 400 {object} models.APIResponse "Missing prefix"
// @Failure 503 {object} models.APIResponse "Catalog not loaded"
// @Router /movies/suggest [get]
func (h *Handler) SuggestMovies(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) || !h.catalogReady(w) {
		return
	}
	start := time.Now()

	req := SuggestRequest{
		Query: r.URL.Query().Get("q"),
		Limit: getIntParam(r, "limit", catalog.DefaultSuggestLimit),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	movies := h.store.Suggest(req.Query, req.Limit)
	suggestions := make([]models.Suggestion, 0, len(movies))
	for _, m := range movies {
		idx, _ := h.store.IndexOf(m.Title)
		suggestions = append(suggestions, models.Suggestion{Index: idx, Title: m.Title})
	}

	respondSuccess(w, models.SuggestionsResponse{
		Query:       req.Query,
		Suggestions: suggestions,
	}, start)
}

// Catalog describes the loaded bundle
//
// @Summary Loaded catalog metadata
// @Description Returns the bundle name, version, build time, checksum and movie count
// @Tags Catalog
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.CatalogInfo} "Catalog metadata"
// @Failure 503 {object} models.APIResponse "Catalog not loaded"
// @Router /catalog [get]
func (h *Handler) Catalog(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) || !h.catalogReady(w) {
		return
	}
	start := time.Now()

	info := models.CatalogInfo{MovieCount: h.store.Len()}
	if h.catalogMeta != nil {
		info.Name = h.catalogMeta.Name
		info.Version = h.catalogMeta.Version
		info.BuiltAt = h.catalogMeta.BuiltAt
		info.Checksum = h.catalogMeta.Checksum
		info.Source = h.catalogMeta.Source
	}
	if stats, ok := h.recommender.CacheStats(); ok {
		info.ResultCache = &models.ResultCacheInfo{
			Size:      stats.Size,
			Capacity:  stats.Capacity,
			Hits:      stats.Hits,
			Misses:    stats.Misses,
			Evictions: stats.Evictions,
			HitRate:   stats.HitRate(),
		}
	}

	respondSuccess(w, info, start)
}
