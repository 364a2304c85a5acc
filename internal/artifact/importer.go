// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package artifact

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2" // DuckDB database/sql driver

	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/logging"
)

// Importer builds bundles from CSV sources using an in-memory DuckDB.
//
// movies.csv has a header row and the columns movie_id,title,tags (tags may
// be empty). similarity.csv has no header: N rows of N numeric columns. File
// order is catalog order.
type Importer struct {
	db *sql.DB
}

// NewImporter opens an in-memory DuckDB connection.
func NewImporter() (*Importer, error) {
	db, err := sql.Open("duckdb", ":memory:?autoinstall_known_extensions=false&autoload_known_extensions=false")
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	// Settings are per connection, so pin the pool to the one configured below.
	db.SetMaxOpenConns(1)

	// read_csv yields rows in file order only while insertion order is
	// preserved; catalog rows and matrix rows depend on it.
	if _, err := db.Exec("SET preserve_insertion_order = true"); err != nil {
		_ = db.Close() //nolint:errcheck // already failing
		return nil, fmt.Errorf("configure duckdb: %w", err)
	}
	return &Importer{db: db}, nil
}

// Close releases the DuckDB connection.
func (i *Importer) Close() error {
	return i.db.Close()
}

// Import reads both CSV files and returns a validated bundle.
func (i *Importer) Import(ctx context.Context, moviesPath, similarityPath string) (*Bundle, error) {
	movies, err := i.readMovies(ctx, moviesPath)
	if err != nil {
		return nil, err
	}
	matrix, err := i.readSimilarity(ctx, similarityPath)
	if err != nil {
		return nil, err
	}

	b := &Bundle{Movies: movies, Similarity: matrix}
	if err := b.Validate(); err != nil {
		return nil, err
	}

	logging.Info().
		Str("movies", moviesPath).
		Str("similarity", similarityPath).
		Int("count", len(movies)).
		Msg("Imported bundle sources")
	return b, nil
}

func (i *Importer) readMovies(ctx context.Context, path string) ([]catalog.Movie, error) {
	query := fmt.Sprintf(`SELECT movie_id, title, tags FROM read_csv(%s,
		header = true,
		columns = {'movie_id': 'BIGINT', 'title': 'VARCHAR', 'tags': 'VARCHAR'})`, quoteLiteral(path))

	rows, err := i.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("read movies %s: %w", path, err)
	}
	defer func() { _ = rows.Close() }() //nolint:errcheck // error surfaced through rows.Err

	var movies []catalog.Movie
	for rows.Next() {
		var (
			id    sql.NullInt64
			title sql.NullString
			tags  sql.NullString
		)
		if err := rows.Scan(&id, &title, &tags); err != nil {
			return nil, fmt.Errorf("scan movie row %d: %w", len(movies)+1, err)
		}
		if !title.Valid {
			return nil, fmt.Errorf("movie row %d: title is empty", len(movies)+1)
		}
		movies = append(movies, catalog.Movie{
			ID:    int(id.Int64),
			Title: title.String,
			Tags:  tags.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read movies %s: %w", path, err)
	}
	return movies, nil
}

func (i *Importer) readSimilarity(ctx context.Context, path string) (catalog.Matrix, error) {
	query := fmt.Sprintf("SELECT * FROM read_csv(%s, header = false)", quoteLiteral(path))

	rows, err := i.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("read similarity %s: %w", path, err)
	}
	defer func() { _ = rows.Close() }() //nolint:errcheck // error surfaced through rows.Err

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read similarity columns: %w", err)
	}

	values := make([]sql.NullFloat64, len(cols))
	dest := make([]any, len(cols))
	for c := range values {
		dest[c] = &values[c]
	}

	var matrix catalog.Matrix
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan similarity row %d: %w", len(matrix), err)
		}
		row := make([]float64, len(cols))
		for c, v := range values {
			if !v.Valid {
				return nil, fmt.Errorf("similarity row %d column %d: missing value", len(matrix), c)
			}
			row[c] = v.Float64
		}
		matrix = append(matrix, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read similarity %s: %w", path, err)
	}
	return matrix, nil
}

// quoteLiteral renders s as a SQL string literal.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
