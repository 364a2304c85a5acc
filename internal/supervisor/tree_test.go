// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package supervisor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/cinematch/internal/logging"
)

var _ suture.Service = (*MockService)(nil)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, d time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}

func TestNewSupervisorTree(t *testing.T) {
	t.Parallel()

	t.Run("explicit config", func(t *testing.T) {
		t.Parallel()
		tree, err := NewSupervisorTree(quietLogger(), TreeConfig{
			FailureThreshold: 3,
			FailureBackoff:   time.Second,
			ShutdownTimeout:  2 * time.Second,
		})
		if err != nil {
			t.Fatalf("NewSupervisorTree: %v", err)
		}
		if tree.Root() == nil {
			t.Fatal("root supervisor is nil")
		}
		cfg := tree.Config()
		if cfg.FailureThreshold != 3 || cfg.FailureBackoff != time.Second || cfg.ShutdownTimeout != 2*time.Second {
			t.Errorf("config = %+v", cfg)
		}
		if cfg.FailureDecay != 30 {
			t.Errorf("FailureDecay = %v, want default 30", cfg.FailureDecay)
		}
	})

	t.Run("zero config takes defaults", func(t *testing.T) {
		t.Parallel()
		tree, err := NewSupervisorTree(nil, TreeConfig{})
		if err != nil {
			t.Fatalf("NewSupervisorTree: %v", err)
		}
		if tree.Config() != DefaultTreeConfig() {
			t.Errorf("config = %+v, want %+v", tree.Config(), DefaultTreeConfig())
		}
	})
}

func TestDefaultTreeConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultTreeConfig()
	if cfg.FailureThreshold != 5 || cfg.FailureDecay != 30 ||
		cfg.FailureBackoff != 15*time.Second || cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("DefaultTreeConfig() = %+v", cfg)
	}
}

func TestSupervisorTree_StartsBothLayers(t *testing.T) {
	t.Parallel()

	tree, _ := NewSupervisorTree(logging.NewSlogLogger(), TreeConfig{ShutdownTimeout: time.Second})
	hub := NewMockService("hub")
	http := NewMockService("http")
	tree.AddRealtimeService(hub)
	tree.AddAPIService(http)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := tree.ServeBackground(ctx)

	if !waitFor(t, time.Second, func() bool { return hub.StartCount() >= 1 && http.StartCount() >= 1 }) {
		t.Fatalf("services not started: hub=%d http=%d", hub.StartCount(), http.StartCount())
	}

	cancel()
	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			t.Errorf("Serve returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("tree did not shut down")
	}
	if hub.StopCount() < 1 || http.StopCount() < 1 {
		t.Errorf("services not stopped: hub=%d http=%d", hub.StopCount(), http.StopCount())
	}
}

func TestSupervisorTree_RestartsFailingService(t *testing.T) {
	t.Parallel()

	tree, _ := NewSupervisorTree(quietLogger(), TreeConfig{
		FailureThreshold: 10,
		FailureBackoff:   10 * time.Millisecond,
		ShutdownTimeout:  time.Second,
	})
	failing := NewMockService("failing-hub")
	failing.SetFailCount(2)
	stable := NewMockService("http")
	tree.AddRealtimeService(failing)
	tree.AddAPIService(stable)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	errCh := tree.ServeBackground(ctx)

	if !waitFor(t, time.Second, func() bool { return failing.StartCount() >= 3 }) {
		t.Errorf("failing service started %d times, want >= 3", failing.StartCount())
	}
	if stable.StartCount() != 1 {
		t.Errorf("stable service started %d times, want 1", stable.StartCount())
	}

	cancel()
	<-errCh
}

func TestSupervisorTree_RemoveRealtimeService(t *testing.T) {
	t.Parallel()

	tree, _ := NewSupervisorTree(quietLogger(), TreeConfig{ShutdownTimeout: time.Second})
	svc := NewMockService("hub")
	token := tree.AddRealtimeService(svc)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := tree.ServeBackground(ctx)

	if !waitFor(t, time.Second, func() bool { return svc.StartCount() == 1 }) {
		t.Fatal("service not started")
	}
	if err := tree.RemoveRealtimeService(token); err != nil {
		t.Fatalf("RemoveRealtimeService: %v", err)
	}
	if !waitFor(t, time.Second, func() bool { return svc.StopCount() == 1 }) {
		t.Error("removed service did not stop")
	}

	cancel()
	<-errCh
	if report, err := tree.UnstoppedServiceReport(); err != nil || len(report) != 0 {
		t.Errorf("UnstoppedServiceReport() = %v, %v", report, err)
	}
}
