// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package artifact persists and loads the movie catalog and its similarity matrix.

A Bundle pairs the ordered movie list with the N×N similarity matrix. Bundles
are built offline (Importer, from CSV files via DuckDB), stored in a versioned
Repository, optionally downloaded from a remote host (Fetcher) and turned into
a validated catalog.Store at startup (Loader).

# File Format

Each bundle file is a gob-encoded envelope holding Metadata and a compressed
payload. The payload is the gob-encoded Bundle, gzip-compressed, and its
SHA-256 checksum is recorded in Metadata. Files are named
{name}_v{version}.bundle.gz; version 0 always means "latest".

# Usage

	repo, err := artifact.NewRepository("/data/bundles")
	if err != nil {
	    return err
	}
	loader := artifact.NewLoader(repo, artifact.LoaderConfig{Name: "movies"})
	store, meta, err := loader.Load(ctx)
	if errors.Is(err, catalog.ErrInvariantViolation) {
	    // fatal: the catalog and matrix disagree
	}

# Thread Safety

Repository serializes writers and allows concurrent readers. Fetcher and
Loader are safe for concurrent use.
*/
package artifact
