// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package config

import (
	"fmt"
	"strings"
)

const (
	minRateLimitReqs = 1
	maxRateLimitReqs = 100000

	maxWebSocketBurst = 1000
)

var validEnvironments = map[string]bool{
	"development": true,
	"staging":     true,
	"production":  true,
}

var validLogLevels = []string{"trace", "debug", "info", "warn", "error"}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateCatalog(); err != nil {
		return err
	}
	if err := c.validateRateLimits(); err != nil {
		return err
	}
	if err := c.validateWebSocket(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if !validEnvironments[c.Server.Environment] {
		return fmt.Errorf("ENVIRONMENT must be one of: development, staging, production")
	}
	return nil
}

func (c *Config) validateCatalog() error {
	if strings.TrimSpace(c.Catalog.BundleDir) == "" {
		return fmt.Errorf("BUNDLE_DIR is required")
	}
	if strings.TrimSpace(c.Catalog.BundleName) == "" {
		return fmt.Errorf("BUNDLE_NAME is required")
	}
	if strings.Contains(c.Catalog.BundleName, "/") || strings.Contains(c.Catalog.BundleName, "..") {
		return fmt.Errorf("BUNDLE_NAME must not contain path separators")
	}
	if c.Catalog.BundleVersion < 0 {
		return fmt.Errorf("BUNDLE_VERSION must be 0 (latest) or a positive version")
	}
	if c.Catalog.RemoteURL != "" {
		if err := validateHTTPURL(c.Catalog.RemoteURL, "BUNDLE_URL"); err != nil {
			return err
		}
	}
	if c.Catalog.DownloadTimeout <= 0 {
		return fmt.Errorf("BUNDLE_DOWNLOAD_TIMEOUT must be positive")
	}
	if c.Catalog.MaxDownloadBytes <= 0 {
		return fmt.Errorf("BUNDLE_MAX_BYTES must be positive")
	}
	if c.Catalog.ResultCacheSize < 0 {
		return fmt.Errorf("RESULT_CACHE_SIZE must be non-negative")
	}
	return nil
}

func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitReqs || c.Security.RateLimitReqs > maxRateLimitReqs {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitReqs, maxRateLimitReqs)
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
	}
	return nil
}

func (c *Config) validateWebSocket() error {
	if !c.WebSocket.Enabled {
		return nil
	}
	if c.WebSocket.MessagesPerSecond <= 0 {
		return fmt.Errorf("WS_MESSAGES_PER_SECOND must be positive")
	}
	if c.WebSocket.Burst < 1 || c.WebSocket.Burst > maxWebSocketBurst {
		return fmt.Errorf("WS_BURST must be between 1 and %d", maxWebSocketBurst)
	}
	return nil
}

func (c *Config) validateLogging() error {
	level := strings.ToLower(c.Logging.Level)
	valid := false
	for _, l := range validLogLevels {
		if level == l {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("LOG_LEVEL must be one of: %s", strings.Join(validLogLevels, ", "))
	}

	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// IsDevelopment reports whether the server runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

// Addr returns the host:port listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
