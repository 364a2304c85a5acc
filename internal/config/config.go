// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package config

import (
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Security  SecurityConfig  `koanf:"security"`
	WebSocket WebSocketConfig `koanf:"websocket"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"` // "development", "staging", "production"
}

// CatalogConfig locates the movie/similarity bundle loaded at startup.
type CatalogConfig struct {
	// BundleDir holds {name}_v{version}.bundle.gz files.
	BundleDir string `koanf:"bundle_dir"`

	// BundleName selects which bundle family to load.
	BundleName string `koanf:"bundle_name"`

	// BundleVersion pins a version. 0 loads the latest.
	BundleVersion int `koanf:"bundle_version"`

	// RemoteURL is downloaded into BundleDir when no local bundle exists.
	RemoteURL string `koanf:"remote_url"`

	DownloadTimeout  time.Duration `koanf:"download_timeout"`
	MaxDownloadBytes int64         `koanf:"max_download_bytes"`

	// ResultCacheSize bounds the optional ranking cache. 0, the default,
	// disables it.
	ResultCacheSize int `koanf:"result_cache_size"`
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// WebSocketConfig controls the interactive recommendation channel.
type WebSocketConfig struct {
	Enabled bool `koanf:"enabled"`

	// MessagesPerSecond and Burst limit inbound messages per connection.
	MessagesPerSecond float64 `koanf:"messages_per_second"`
	Burst             int     `koanf:"burst"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// Load reads configuration from defaults, an optional YAML file and the
// environment, then validates it. See LoadWithKoanf.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
