// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package artifact

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/metrics"
)

// Load origins reported in metrics and logs.
const (
	OriginLocal  = "local"
	OriginRemote = "remote"
)

// LoaderConfig selects which bundle a Loader produces.
type LoaderConfig struct {
	// Name is the bundle family.
	Name string

	// Version pins a version. 0 loads the latest.
	Version int

	// RemoteURL is fetched when the repository has no matching bundle.
	RemoteURL string
}

// Loader produces the catalog store used by the server.
type Loader struct {
	repo    *Repository
	fetcher *Fetcher
	cfg     LoaderConfig
}

// NewLoader creates a Loader. fetcher may be nil when cfg.RemoteURL is empty.
func NewLoader(repo *Repository, fetcher *Fetcher, cfg LoaderConfig) *Loader {
	return &Loader{repo: repo, fetcher: fetcher, cfg: cfg}
}

// Load reads the configured bundle, downloading it first when it is missing
// locally and a remote URL is configured, and builds the validated store.
// Catalog/matrix disagreement is returned wrapping catalog.ErrInvariantViolation.
func (l *Loader) Load(ctx context.Context) (*catalog.Store, *Metadata, error) {
	start := time.Now()
	origin := OriginLocal

	b, meta, err := l.repo.Load(ctx, l.cfg.Name, l.cfg.Version)
	if errors.Is(err, ErrBundleNotFound) && l.cfg.RemoteURL != "" && l.fetcher != nil {
		logging.Info().
			Str("bundle", l.cfg.Name).
			Int("version", l.cfg.Version).
			Str("url", l.cfg.RemoteURL).
			Msg("Bundle not found locally, downloading")

		origin = OriginRemote
		b, meta, err = l.fetch(ctx)
	}
	if err != nil {
		metrics.RecordCatalogLoadError(errorReason(err))
		return nil, nil, err
	}

	store, err := b.Store()
	if err != nil {
		metrics.RecordCatalogLoadError(errorReason(err))
		return nil, nil, fmt.Errorf("%s v%d: %w", meta.Name, meta.Version, err)
	}

	duration := time.Since(start)
	metrics.RecordCatalogLoad(origin, store.Len(), meta.Version, duration)
	logging.Info().
		Str("bundle", meta.Name).
		Int("version", meta.Version).
		Int("movies", store.Len()).
		Str("origin", origin).
		Dur("duration", duration).
		Msg("Catalog loaded")

	return store, meta, nil
}

// fetch downloads the remote bundle, installs it and loads it back.
func (l *Loader) fetch(ctx context.Context) (*Bundle, *Metadata, error) {
	meta, err := l.Download(ctx)
	if err != nil {
		return nil, nil, err
	}
	return l.repo.Load(ctx, meta.Name, meta.Version)
}

// Download fetches the configured remote bundle and installs it into the
// repository, whether or not a local copy already exists.
func (l *Loader) Download(ctx context.Context) (*Metadata, error) {
	if l.fetcher == nil || l.cfg.RemoteURL == "" {
		return nil, fmt.Errorf("%w: no remote URL configured", ErrDownloadFailed)
	}

	tmp, err := os.CreateTemp("", "cinematch-download-*")
	if err != nil {
		return nil, fmt.Errorf("create download file: %w", err)
	}
	defer func() {
		_ = tmp.Close()           //nolint:errcheck // cleanup
		_ = os.Remove(tmp.Name()) //nolint:errcheck // cleanup
	}()

	if _, err := l.fetcher.Fetch(ctx, l.cfg.RemoteURL, tmp); err != nil {
		return nil, err
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind download: %w", err)
	}
	return l.repo.Install(ctx, l.cfg.Name, l.cfg.Version, tmp)
}

// errorReason maps a load error to a metrics label.
func errorReason(err error) string {
	switch {
	case errors.Is(err, catalog.ErrInvariantViolation):
		return "invariant"
	case errors.Is(err, ErrBundleNotFound):
		return "not_found"
	case errors.Is(err, ErrChecksumMismatch):
		return "checksum"
	case errors.Is(err, ErrBundleTooLarge), errors.Is(err, ErrDownloadFailed):
		return "download"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "decode"
	}
}
