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
	"net/http"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/metrics"
)

const (
	// DefaultMaxBytes caps a single download at 1GiB.
	DefaultMaxBytes int64 = 1 << 30

	// DefaultDownloadTimeout bounds a single download.
	DefaultDownloadTimeout = 5 * time.Minute

	breakerName = "bundle-download"
)

// FetcherConfig configures a Fetcher.
type FetcherConfig struct {
	// Timeout bounds each download. Default: DefaultDownloadTimeout.
	Timeout time.Duration

	// MaxBytes caps the response body size. Default: DefaultMaxBytes.
	MaxBytes int64

	// Client overrides the HTTP client (tests).
	Client *http.Client
}

// Fetcher downloads bundle files over HTTP(S).
//
// Downloads run through a circuit breaker so a dead file host fails fast
// instead of stalling every restart for the full timeout:
// - Max 1 request in half-open state
// - 1 minute measurement window
// - 2 minute timeout before attempting recovery
// - Opens after 3 consecutive failures
type Fetcher struct {
	client   *http.Client
	cb       *gobreaker.CircuitBreaker[int64]
	timeout  time.Duration
	maxBytes int64
}

// NewFetcher creates a Fetcher.
func NewFetcher(cfg FetcherConfig) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultDownloadTimeout
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = DefaultMaxBytes
	}
	client := cfg.Client
	if client == nil {
		client = &http.Client{}
	}

	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0) // 0 = closed
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(breakerName).Set(0)

	cb := gobreaker.NewCircuitBreaker[int64](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			shouldTrip := counts.ConsecutiveFailures >= 3
			if shouldTrip {
				logging.Warn().Uint32("consecutive_failures", counts.ConsecutiveFailures).Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return shouldTrip
		},

		// Cancellation by the caller says nothing about the remote host
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})

	return &Fetcher{
		client:   client,
		cb:       cb,
		timeout:  cfg.Timeout,
		maxBytes: cfg.MaxBytes,
	}
}

// Fetch downloads url into dst and returns the number of bytes written.
// Non-200 responses and oversized bodies fail with ErrDownloadFailed and
// ErrBundleTooLarge respectively.
func (f *Fetcher) Fetch(ctx context.Context, url string, dst io.Writer) (int64, error) {
	n, err := f.cb.Execute(func() (int64, error) {
		return f.download(ctx, url, dst)
	})

	switch {
	case err == nil:
		metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "success").Inc()
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(breakerName).Set(0)
		metrics.RecordDownload("success", n)
		return n, nil

	case errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "rejected").Inc()
		metrics.RecordDownload("rejected", 0)
		logging.Warn().Err(err).Msg("[CIRCUIT BREAKER] Download rejected")
		return 0, fmt.Errorf("%w: %w", ErrDownloadFailed, err)

	default:
		metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "failure").Inc()
		counts := f.cb.Counts()
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(breakerName).Set(float64(counts.ConsecutiveFailures))
		result := "failure"
		if errors.Is(err, ErrBundleTooLarge) {
			result = "too_large"
		}
		metrics.RecordDownload(result, n)
		return n, err
	}
}

func (f *Fetcher) download(ctx context.Context, url string, dst io.Writer) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return 0, fmt.Errorf("%w: build request: %w", ErrDownloadFailed, err)
	}
	req.Header.Set("Accept", "application/octet-stream")

	resp, err := f.client.Do(req) //nolint:gosec // URL comes from operator configuration
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrDownloadFailed, err)
	}
	defer func() { _ = resp.Body.Close() }() //nolint:errcheck // error on close after read is not actionable

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("%w: unexpected status %d", ErrDownloadFailed, resp.StatusCode)
	}
	if resp.ContentLength > f.maxBytes {
		return 0, fmt.Errorf("%w: content length %d exceeds %d bytes", ErrBundleTooLarge, resp.ContentLength, f.maxBytes)
	}

	// Read one byte past the cap to detect oversized bodies without a Content-Length
	n, err := io.Copy(dst, io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return n, fmt.Errorf("%w: read body: %w", ErrDownloadFailed, err)
	}
	if n > f.maxBytes {
		return n, fmt.Errorf("%w: more than %d bytes", ErrBundleTooLarge, f.maxBytes)
	}
	return n, nil
}

// State returns the circuit breaker state name.
func (f *Fetcher) State() string {
	return stateToString(f.cb.State())
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to string for logging
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
