// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/metrics"
	"github.com/tomtom215/cinematch/internal/models"
	"github.com/tomtom215/cinematch/internal/recommend"
)

// Recommendations returns the movies most similar to a title
//
// @Summary Recommend similar movies
// @Description Resolves the title exactly (case-sensitive, first catalog match) and returns up to 5 other movies by descending similarity, ties in catalog order.
// @Tags Recommendations
// @Produce json
// @Param title query string true "Exact catalog title"
// @Success 200 {object} models.APIResponse{data=models.RecommendationsResponse} "Recommendations"
// @Failure 400 {object} models.APIResponse "No title selected"
// @Failure 404 {object} models.APIResponse "Title not in catalog"
// @Failure 503 {object} models.APIResponse "Catalog not loaded"
// @Router /recommendations [get]
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) || !h.catalogReady(w) {
		return
	}
	start := time.Now()

	// Only an absent selection is rejected; any other string is looked up
	// verbatim so every catalog title stays reachable.
	title := r.URL.Query().Get("title")
	if title == "" {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", models.MsgSelectMovie, nil)
		return
	}

	res, cached, err := h.recommender.Lookup(title)
	duration := time.Since(start)

	switch {
	case err == nil:
		metrics.RecordRecommendation("http", string(res.Status), duration)
		logging.Ctx(r.Context()).Debug().
			Str("title", sanitizeLogValue(title)).
			Int("index", res.Index).
			Strs("results", res.Titles()).
			Bool("cached", cached).
			Msg("Recommendations served")
		respondSuccessCached(w, models.NewRecommendationsResponse(res), start, cached)

	case errors.Is(err, recommend.ErrNotFound):
		metrics.RecordRecommendation("http", string(recommend.StatusNotFound), duration)
		respondError(w, http.StatusNotFound, "MOVIE_NOT_FOUND", models.MsgMovieNotFound, nil)

	default:
		metrics.RecordRecommendation("http", "error", duration)
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Recommendations are unavailable right now.", err)
	}
}
