// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Command cinematch manages catalog bundles and runs one-off recommendations.

	cinematch bundle build --movies movies.csv --similarity similarity.csv
	cinematch bundle list
	cinematch bundle inspect --version 3
	cinematch bundle prune --keep 2
	cinematch fetch --url https://example.com/movies_v4.bundle.gz
	cinematch recommend "The Dark Knight"

Bundle location and name default to the server configuration (BUNDLE_DIR,
BUNDLE_NAME, .env and CONFIG_PATH are honored) and can be overridden with
--dir and --name.
*/
package main
