// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package models

import (
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/recommend"
)

func TestNewRecommendationsResponse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		res       recommend.Result
		wantItems int
	}{
		{
			name: "found",
			res: recommend.Result{
				Query:  "Alien",
				Index:  0,
				Status: recommend.StatusOK,
				Items: []recommend.Recommendation{
					{Rank: 1, Index: 1, Movie: catalog.Movie{ID: 2, Title: "Aliens"}, Score: 0.9},
				},
			},
			wantItems: 1,
		},
		{
			name:      "not found",
			res:       recommend.Result{Query: "Nope", Index: -1, Status: recommend.StatusNotFound},
			wantItems: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := NewRecommendationsResponse(tt.res)
			if got.Query != tt.res.Query || got.Index != tt.res.Index || got.Status != tt.res.Status {
				t.Errorf("got %+v, want fields from %+v", got, tt.res)
			}
			if got.Heading != RecommendationsHeading {
				t.Errorf("Heading = %q", got.Heading)
			}
			if got.Items == nil {
				t.Fatal("Items should never be nil")
			}
			if len(got.Items) != tt.wantItems {
				t.Errorf("len(Items) = %d, want %d", len(got.Items), tt.wantItems)
			}
		})
	}
}

func TestRecommendationsResponseJSON(t *testing.T) {
	t.Parallel()

	resp := NewRecommendationsResponse(recommend.Result{Query: "Nope", Index: -1, Status: recommend.StatusNotFound})
	body, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for _, want := range []string{`"items":[]`, `"status":"not_found"`, `"index":-1`} {
		if !strings.Contains(string(body), want) {
			t.Errorf("%s missing %s", body, want)
		}
	}
}

func TestMetadataCachedOmitted(t *testing.T) {
	t.Parallel()

	body, err := json.Marshal(Metadata{})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if strings.Contains(string(body), "cached") {
		t.Errorf("uncached metadata should omit the flag: %s", body)
	}

	body, err = json.Marshal(Metadata{Cached: true})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(body), `"cached":true`) {
		t.Errorf("cached metadata = %s", body)
	}
}
