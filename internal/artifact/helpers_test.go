// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package artifact

import (
	"bytes"
	"compress/gzip"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"testing"

	"github.com/tomtom215/cinematch/internal/catalog"
)

// testBundle returns an n-movie bundle where similarity decreases with
// distance, so row i ranks i+1, i+2, ... first.
func testBundle(t *testing.T, n int) *Bundle {
	t.Helper()

	movies := make([]catalog.Movie, n)
	matrix := make(catalog.Matrix, n)
	for i := range n {
		movies[i] = catalog.Movie{ID: 100 + i, Title: fmt.Sprintf("Movie %c", 'A'+i), Tags: "drama"}
		matrix[i] = make([]float64, n)
		for j := range n {
			d := i - j
			if d < 0 {
				d = -d
			}
			matrix[i][j] = 1 / float64(1+d)
		}
	}
	return &Bundle{Movies: movies, Similarity: matrix}
}

func newTestRepository(t *testing.T) *Repository {
	t.Helper()

	repo, err := NewRepository(t.TempDir())
	if err != nil {
		t.Fatalf("NewRepository() error = %v", err)
	}
	return repo
}

// compressForTest produces a payload and checksum for b without validating it.
func compressForTest(t *testing.T, b *Bundle) ([]byte, string) {
	t.Helper()

	var raw bytes.Buffer
	if err := gob.NewEncoder(&raw).Encode(b); err != nil {
		t.Fatal(err)
	}
	hash := sha256.Sum256(raw.Bytes())

	var compressed bytes.Buffer
	gzw := gzip.NewWriter(&compressed)
	if _, err := gzw.Write(raw.Bytes()); err != nil {
		t.Fatal(err)
	}
	if err := gzw.Close(); err != nil {
		t.Fatal(err)
	}
	return compressed.Bytes(), hex.EncodeToString(hash[:])
}
