// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/tomtom215/cinematch/docs" // swagger spec
	"github.com/tomtom215/cinematch/internal/api"
	"github.com/tomtom215/cinematch/internal/artifact"
	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/recommend"
	"github.com/tomtom215/cinematch/internal/supervisor"
	"github.com/tomtom215/cinematch/internal/supervisor/services"
	ws "github.com/tomtom215/cinematch/internal/websocket"
)

// Set with -ldflags "-X main.version=..."
var version = "dev"

const shutdownTimeout = 10 * time.Second

func main() {
	if err := config.LoadDotEnv(); err != nil {
		logging.Fatal().Err(err).Msg("Failed to load .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	api.Version = version

	logging.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Str("bundle_dir", cfg.Catalog.BundleDir).
		Str("bundle", cfg.Catalog.BundleName).
		Msg("Starting Cinematch")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rec, meta, err := loadRecommender(ctx, cfg)
	if err != nil {
		if errors.Is(err, catalog.ErrInvariantViolation) {
			logging.Fatal().Err(err).Msg("Catalog and similarity matrix disagree; refusing to start")
		}
		logging.Fatal().Err(err).Msg("Failed to load catalog")
	}

	tree, server, err := setup(cfg, rec, meta)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to build supervisor tree")
	}

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received, waiting for services to stop")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	if unstopped, _ := tree.UnstoppedServiceReport(); len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Cinematch stopped")
}

// loadRecommender loads the catalog bundle and wraps it in a recommender.
func loadRecommender(ctx context.Context, cfg *config.Config) (*recommend.Recommender, *artifact.Metadata, error) {
	loader, _, err := artifact.NewLoaderFromConfig(cfg.Catalog)
	if err != nil {
		return nil, nil, err
	}

	store, meta, err := loader.Load(ctx)
	if err != nil {
		return nil, nil, err
	}

	rec, err := recommend.New(store, recommend.WithCache(cfg.Catalog.ResultCacheSize))
	if err != nil {
		return nil, nil, err
	}

	logging.Info().
		Str("bundle", meta.Name).
		Int("version", meta.Version).
		Int("movies", store.Len()).
		Int("result_cache", cfg.Catalog.ResultCacheSize).
		Str("checksum", meta.Checksum).
		Msg("Catalog loaded")
	return rec, meta, nil
}

// setup wires the API, the optional WebSocket hub and the HTTP server into a
// supervisor tree.
func setup(cfg *config.Config, rec *recommend.Recommender, meta *artifact.Metadata) (*supervisor.SupervisorTree, *http.Server, error) {
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  shutdownTimeout,
	})
	if err != nil {
		return nil, nil, err
	}

	var hub *ws.Hub
	if cfg.WebSocket.Enabled {
		hub = ws.NewHub(rec, ws.HubConfig{
			MessagesPerSecond: cfg.WebSocket.MessagesPerSecond,
			Burst:             cfg.WebSocket.Burst,
		})
		tree.AddRealtimeService(services.NewWebSocketHubService(hub))
	} else {
		logging.Info().Msg("WebSocket channel disabled (WS_ENABLED=false)")
	}

	handler := api.NewHandler(rec, meta, cfg, hub)
	router := api.NewRouter(handler, cfg)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, shutdownTimeout))

	return tree, server, nil
}
