// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package artifact

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tomtom215/cinematch/internal/catalog"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestImporter(t *testing.T) *Importer {
	t.Helper()

	imp, err := NewImporter()
	if err != nil {
		t.Fatalf("NewImporter() error = %v", err)
	}
	t.Cleanup(func() { _ = imp.Close() })
	return imp
}

func TestImporterImport(t *testing.T) {
	dir := t.TempDir()
	movies := writeFile(t, dir, "movies.csv", `movie_id,title,tags
19995,Avatar,action adventure
285,"Pirates of the Caribbean: At World's End",adventure fantasy
206647,Spectre,
`)
	similarity := writeFile(t, dir, "similarity.csv", `1.0,0.2,0.3
0.2,1,0.7
0.3,0.7,1.0
`)

	b, err := newTestImporter(t).Import(context.Background(), movies, similarity)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	if len(b.Movies) != 3 {
		t.Fatalf("imported %d movies, want 3", len(b.Movies))
	}
	want := []catalog.Movie{
		{ID: 19995, Title: "Avatar", Tags: "action adventure"},
		{ID: 285, Title: "Pirates of the Caribbean: At World's End", Tags: "adventure fantasy"},
		{ID: 206647, Title: "Spectre", Tags: ""},
	}
	for i, m := range want {
		if b.Movies[i] != m {
			t.Errorf("Movies[%d] = %+v, want %+v", i, b.Movies[i], m)
		}
	}
	if b.Similarity[1][2] != 0.7 || b.Similarity[1][1] != 1 {
		t.Errorf("Similarity row 1 = %v", b.Similarity[1])
	}
}

func TestImporterPreservesFileOrder(t *testing.T) {
	imp := newTestImporter(t)

	var preserved bool
	if err := imp.db.QueryRow("SELECT current_setting('preserve_insertion_order')").Scan(&preserved); err != nil {
		t.Fatalf("read setting: %v", err)
	}
	if !preserved {
		t.Fatal("preserve_insertion_order is off")
	}

	// Descending IDs and a row marker in column 0 catch any reordering
	// across DuckDB's parallel CSV chunks.
	const n = 300
	var movies, similarity strings.Builder
	movies.WriteString("movie_id,title,tags\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&movies, "%d,movie %d,\n", n-i, i)
		fmt.Fprintf(&similarity, "%d", i)
		for j := 1; j < n; j++ {
			similarity.WriteString(",0.5")
		}
		similarity.WriteString("\n")
	}
	dir := t.TempDir()
	b, err := imp.Import(context.Background(),
		writeFile(t, dir, "movies.csv", movies.String()),
		writeFile(t, dir, "similarity.csv", similarity.String()))
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	for i := 0; i < n; i++ {
		if b.Movies[i].ID != n-i || b.Movies[i].Title != fmt.Sprintf("movie %d", i) {
			t.Fatalf("movie %d = %+v", i, b.Movies[i])
		}
		if b.Similarity[i][0] != float64(i) {
			t.Fatalf("similarity row %d starts with %v", i, b.Similarity[i][0])
		}
	}
}

func TestImporterSizeMismatch(t *testing.T) {
	dir := t.TempDir()
	movies := writeFile(t, dir, "movies.csv", "movie_id,title,tags\n1,A,\n2,B,\n3,C,\n")
	similarity := writeFile(t, dir, "similarity.csv", "1.0,0.5\n0.5,1.0\n")

	_, err := newTestImporter(t).Import(context.Background(), movies, similarity)
	if !errors.Is(err, catalog.ErrInvariantViolation) {
		t.Errorf("Import() error = %v, want ErrInvariantViolation", err)
	}
}

func TestImporterMissingValue(t *testing.T) {
	dir := t.TempDir()
	movies := writeFile(t, dir, "movies.csv", "movie_id,title,tags\n1,A,\n2,B,\n")
	similarity := writeFile(t, dir, "similarity.csv", "1.0,0.5\n0.5,\n")

	if _, err := newTestImporter(t).Import(context.Background(), movies, similarity); err == nil {
		t.Error("Import() should fail on an empty similarity cell")
	}
}

func TestImporterMissingFile(t *testing.T) {
	dir := t.TempDir()
	similarity := writeFile(t, dir, "similarity.csv", "1.0\n")

	if _, err := newTestImporter(t).Import(context.Background(), filepath.Join(dir, "nope.csv"), similarity); err == nil {
		t.Error("Import() should fail for a missing movies file")
	}
}

func TestQuoteLiteral(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"/data/movies.csv":    "'/data/movies.csv'",
		"/data/o'brien's.csv": "'/data/o''brien''s.csv'",
	}
	for in, want := range tests {
		if got := quoteLiteral(in); got != want {
			t.Errorf("quoteLiteral(%q) = %s, want %s", in, got, want)
		}
	}
}
