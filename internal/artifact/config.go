// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package artifact

import (
	"github.com/tomtom215/cinematch/internal/config"
)

// NewLoaderFromConfig opens the bundle repository named by cfg and builds a
// Loader for it. A Fetcher is attached only when a remote URL is configured.
func NewLoaderFromConfig(cfg config.CatalogConfig) (*Loader, *Repository, error) {
	repo, err := NewRepository(cfg.BundleDir)
	if err != nil {
		return nil, nil, err
	}

	var fetcher *Fetcher
	if cfg.RemoteURL != "" {
		fetcher = NewFetcher(FetcherConfig{
			Timeout:  cfg.DownloadTimeout,
			MaxBytes: cfg.MaxDownloadBytes,
		})
	}

	return NewLoader(repo, fetcher, LoaderConfig{
		Name:      cfg.BundleName,
		Version:   cfg.BundleVersion,
		RemoteURL: cfg.RemoteURL,
	}), repo, nil
}
