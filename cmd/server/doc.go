// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package main is the Cinematch recommendation server.

Cinematch answers "movies like this one" from a precomputed catalog and
similarity matrix. The server loads one bundle at startup and serves a JSON
API, a WebSocket channel and a single-page UI from the same process.

# Startup

 1. .env file (godotenv), then configuration (koanf: defaults, YAML, env)
 2. Logging (zerolog)
 3. Catalog bundle from BUNDLE_DIR, downloaded from BUNDLE_URL when missing
 4. Recommender over the read-only store
 5. Supervisor tree (suture) with the WebSocket hub and HTTP server

A catalog whose size disagrees with the similarity matrix stops the server
before it listens.

	RootSupervisor ("cinematch")
	├── RealtimeSupervisor ("realtime-layer")
	│   └── WebSocket hub
	└── APISupervisor ("api-layer")
	    └── HTTP server

# Configuration

	HTTP_PORT=8501             # listen port
	HTTP_HOST=0.0.0.0
	BUNDLE_DIR=/data/bundles   # {name}_v{version}.bundle.gz files
	BUNDLE_NAME=movies
	BUNDLE_VERSION=0           # 0 = latest
	BUNDLE_URL=                # downloaded when no local bundle exists
	CORS_ORIGINS=*
	RATE_LIMIT_REQUESTS=100
	WS_ENABLED=true
	LOG_LEVEL=info
	LOG_FORMAT=json

CONFIG_PATH points at an optional YAML file with the same settings.

# Signals

SIGINT and SIGTERM cancel the tree. The HTTP server drains in-flight requests
for up to 10s and WebSocket clients receive a going-away close frame.

# Example

	cinematch bundle build --movies movies.csv --similarity similarity.csv
	BUNDLE_DIR=./bundles LOG_FORMAT=console ./server
*/
package main
