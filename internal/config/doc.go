// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package config loads and validates Cinematch configuration.

Configuration is layered with Koanf v2, later layers overriding earlier ones:

 1. Built-in defaults (defaultConfig)
 2. Optional YAML file: $CONFIG_PATH, ./config.yaml, ./config.yml,
    /etc/cinematch/config.yaml, /etc/cinematch/config.yml
 3. Environment variables (see envTransformFunc for the full mapping)

A .env file in the working directory is read by the binaries before Load runs.

# Example config.yaml

	server:
	  port: 8501
	  environment: production
	catalog:
	  bundle_dir: /data/bundles
	  bundle_name: movies
	  remote_url: https://files.example.com/movies_v1.bundle.gz
	security:
	  cors_origins: ["https://cinematch.example.com"]
	logging:
	  level: info
	  format: json

# Environment Variables

Server:
  - HTTP_PORT, HTTP_HOST, HTTP_TIMEOUT, ENVIRONMENT

Catalog:
  - BUNDLE_DIR: directory holding versioned bundle files (default: /data/bundles)
  - BUNDLE_NAME: bundle name (default: movies)
  - BUNDLE_VERSION: pin a version, 0 = latest (default: 0)
  - BUNDLE_URL: remote bundle fetched when no local bundle exists
  - BUNDLE_DOWNLOAD_TIMEOUT: download deadline (default: 5m)
  - BUNDLE_MAX_BYTES: download size cap (default: 1GiB)

Security:
  - CORS_ORIGINS: comma-separated origins (default: *)
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT

WebSocket:
  - WS_ENABLED, WS_MESSAGES_PER_SECOND, WS_BURST

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER
*/
package config
