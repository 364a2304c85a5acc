// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// clearConfigEnv unsets every mapped variable for the duration of the test.
func clearConfigEnv(t *testing.T) {
	t.Helper()
	keys := []string{ConfigPathEnvVar}
	for k := range envMappings {
		keys = append(keys, strings.ToUpper(k))
	}
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 8501 {
		t.Errorf("Server.Port = %d, want 8501", cfg.Server.Port)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want 0.0.0.0", cfg.Server.Host)
	}
	if cfg.Server.Environment != "development" {
		t.Errorf("Server.Environment = %q, want development", cfg.Server.Environment)
	}

	if cfg.Catalog.BundleDir != "/data/bundles" {
		t.Errorf("Catalog.BundleDir = %q, want /data/bundles", cfg.Catalog.BundleDir)
	}
	if cfg.Catalog.BundleName != "movies" {
		t.Errorf("Catalog.BundleName = %q, want movies", cfg.Catalog.BundleName)
	}
	if cfg.Catalog.BundleVersion != 0 {
		t.Errorf("Catalog.BundleVersion = %d, want 0", cfg.Catalog.BundleVersion)
	}
	if cfg.Catalog.RemoteURL != "" {
		t.Errorf("Catalog.RemoteURL should be empty by default, got %q", cfg.Catalog.RemoteURL)
	}
	if cfg.Catalog.DownloadTimeout != 5*time.Minute {
		t.Errorf("Catalog.DownloadTimeout = %v, want 5m", cfg.Catalog.DownloadTimeout)
	}
	if cfg.Catalog.MaxDownloadBytes != 1<<30 {
		t.Errorf("Catalog.MaxDownloadBytes = %d, want 1GiB", cfg.Catalog.MaxDownloadBytes)
	}
	if cfg.Catalog.ResultCacheSize != 0 {
		t.Errorf("Catalog.ResultCacheSize = %d, want 0 (cache off by default)", cfg.Catalog.ResultCacheSize)
	}

	if cfg.Security.RateLimitReqs != 100 {
		t.Errorf("Security.RateLimitReqs = %d, want 100", cfg.Security.RateLimitReqs)
	}
	if len(cfg.Security.CORSOrigins) != 1 || cfg.Security.CORSOrigins[0] != "*" {
		t.Errorf("Security.CORSOrigins = %v, want [*]", cfg.Security.CORSOrigins)
	}

	if !cfg.WebSocket.Enabled {
		t.Error("WebSocket.Enabled should be true by default")
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want json", cfg.Logging.Format)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"HTTP_PORT", "server.port"},
		{"HTTP_HOST", "server.host"},
		{"ENVIRONMENT", "server.environment"},
		{"BUNDLE_DIR", "catalog.bundle_dir"},
		{"BUNDLE_NAME", "catalog.bundle_name"},
		{"BUNDLE_VERSION", "catalog.bundle_version"},
		{"BUNDLE_URL", "catalog.remote_url"},
		{"BUNDLE_DOWNLOAD_TIMEOUT", "catalog.download_timeout"},
		{"BUNDLE_MAX_BYTES", "catalog.max_download_bytes"},
		{"RATE_LIMIT_REQUESTS", "security.rate_limit_reqs"},
		{"DISABLE_RATE_LIMIT", "security.rate_limit_disabled"},
		{"CORS_ORIGINS", "security.cors_origins"},
		{"WS_ENABLED", "websocket.enabled"},
		{"WS_MESSAGES_PER_SECOND", "websocket.messages_per_second"},
		{"WS_BURST", "websocket.burst"},
		{"LOG_LEVEL", "logging.level"},
		{"log_format", "logging.format"},

		// Unmapped variables are ignored
		{"PATH", ""},
		{"HOME", ""},
		{"UNKNOWN_SETTING", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := envTransformFunc(tt.input); got != tt.expected {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFindConfigFile(t *testing.T) {
	clearConfigEnv(t)

	origDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	tmpDir := t.TempDir()
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(origDir); err != nil {
			t.Errorf("restore working directory: %v", err)
		}
	})

	t.Run("no config file", func(t *testing.T) {
		if got := findConfigFile(); got != "" {
			t.Errorf("findConfigFile() = %q, want empty", got)
		}
	})

	t.Run("config.yaml in working directory", func(t *testing.T) {
		if err := os.WriteFile("config.yaml", []byte("server: {}"), 0o644); err != nil {
			t.Fatal(err)
		}
		defer os.Remove("config.yaml")

		if got := findConfigFile(); got != "config.yaml" {
			t.Errorf("findConfigFile() = %q, want config.yaml", got)
		}
	})

	t.Run("CONFIG_PATH takes priority", func(t *testing.T) {
		customPath := filepath.Join(tmpDir, "custom.yaml")
		if err := os.WriteFile(customPath, []byte("server: {}"), 0o644); err != nil {
			t.Fatal(err)
		}
		t.Setenv(ConfigPathEnvVar, customPath)

		if got := findConfigFile(); got != customPath {
			t.Errorf("findConfigFile() = %q, want %q", got, customPath)
		}
	})

	t.Run("missing CONFIG_PATH falls through", func(t *testing.T) {
		t.Setenv(ConfigPathEnvVar, "/non/existent/config.yaml")

		if got := findConfigFile(); got != "" {
			t.Errorf("findConfigFile() = %q, want empty", got)
		}
	})
}

func TestLoadWithKoanfEnvVars(t *testing.T) {
	clearConfigEnv(t)

	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("BUNDLE_DIR", "/srv/bundles")
	t.Setenv("BUNDLE_VERSION", "3")
	t.Setenv("BUNDLE_URL", "https://files.example.com/movies_v3.bundle.gz")
	t.Setenv("BUNDLE_DOWNLOAD_TIMEOUT", "90s")
	t.Setenv("RESULT_CACHE_SIZE", "256")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("WS_ENABLED", "false")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Catalog.BundleDir != "/srv/bundles" {
		t.Errorf("Catalog.BundleDir = %q, want /srv/bundles", cfg.Catalog.BundleDir)
	}
	if cfg.Catalog.BundleVersion != 3 {
		t.Errorf("Catalog.BundleVersion = %d, want 3", cfg.Catalog.BundleVersion)
	}
	if cfg.Catalog.RemoteURL != "https://files.example.com/movies_v3.bundle.gz" {
		t.Errorf("Catalog.RemoteURL = %q", cfg.Catalog.RemoteURL)
	}
	if cfg.Catalog.DownloadTimeout != 90*time.Second {
		t.Errorf("Catalog.DownloadTimeout = %v, want 90s", cfg.Catalog.DownloadTimeout)
	}
	if cfg.Catalog.ResultCacheSize != 256 {
		t.Errorf("Catalog.ResultCacheSize = %d, want 256", cfg.Catalog.ResultCacheSize)
	}
	if len(cfg.Security.CORSOrigins) != 2 || cfg.Security.CORSOrigins[1] != "https://b.example.com" {
		t.Errorf("Security.CORSOrigins = %v, want two trimmed origins", cfg.Security.CORSOrigins)
	}
	if cfg.WebSocket.Enabled {
		t.Error("WebSocket.Enabled should be false")
	}

	// Unset values keep defaults
	if cfg.Catalog.BundleName != "movies" {
		t.Errorf("Catalog.BundleName = %q, want movies", cfg.Catalog.BundleName)
	}
}

func TestLoadWithKoanfConfigFile(t *testing.T) {
	clearConfigEnv(t)

	configContent := `
server:
  port: 8080
  environment: production
catalog:
  bundle_dir: /var/lib/cinematch
  bundle_name: classics
logging:
  level: warn
  format: console
`
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, configPath)

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if !cfg.IsProduction() {
		t.Error("IsProduction() should be true")
	}
	if cfg.Catalog.BundleDir != "/var/lib/cinematch" {
		t.Errorf("Catalog.BundleDir = %q", cfg.Catalog.BundleDir)
	}
	if cfg.Catalog.BundleName != "classics" {
		t.Errorf("Catalog.BundleName = %q", cfg.Catalog.BundleName)
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("Logging.Format = %q, want console", cfg.Logging.Format)
	}
}

func TestLoadWithKoanfEnvOverridesFile(t *testing.T) {
	clearConfigEnv(t)

	configContent := `
server:
  port: 8080
logging:
  level: warn
`
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, configPath)
	t.Setenv("HTTP_PORT", "9999")
	t.Setenv("LOG_LEVEL", "error")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 9999 {
		t.Errorf("Server.Port = %d, want 9999 (env overrides file)", cfg.Server.Port)
	}
	if cfg.Logging.Level != "error" {
		t.Errorf("Logging.Level = %q, want error (env overrides file)", cfg.Logging.Level)
	}
}

func TestLoadWithKoanfValidation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"invalid port", map[string]string{"HTTP_PORT": "70000"}, "HTTP_PORT"},
		{"invalid environment", map[string]string{"ENVIRONMENT": "qa"}, "ENVIRONMENT"},
		{"negative bundle version", map[string]string{"BUNDLE_VERSION": "-1"}, "BUNDLE_VERSION"},
		{"bundle name with separator", map[string]string{"BUNDLE_NAME": "../etc"}, "BUNDLE_NAME"},
		{"bundle url scheme", map[string]string{"BUNDLE_URL": "ftp://files.example.com/a.gz"}, "BUNDLE_URL"},
		{"zero max bytes", map[string]string{"BUNDLE_MAX_BYTES": "0"}, "BUNDLE_MAX_BYTES"},
		{"rate limit too high", map[string]string{"RATE_LIMIT_REQUESTS": "1000000"}, "RATE_LIMIT_REQUESTS"},
		{"websocket burst", map[string]string{"WS_BURST": "0"}, "WS_BURST"},
		{"log level", map[string]string{"LOG_LEVEL": "verbose"}, "LOG_LEVEL"},
		{"log format", map[string]string{"LOG_FORMAT": "xml"}, "LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearConfigEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := LoadWithKoanf()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to mention %s", err, tt.wantErr)
			}
		})
	}
}

func TestDisabledSectionsSkipValidation(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("DISABLE_RATE_LIMIT", "true")
	t.Setenv("RATE_LIMIT_REQUESTS", "0")
	t.Setenv("WS_ENABLED", "false")
	t.Setenv("WS_BURST", "0")

	if _, err := LoadWithKoanf(); err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
}
