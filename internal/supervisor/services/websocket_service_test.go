// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/cinematch/internal/recommend"
	"github.com/tomtom215/cinematch/internal/websocket"
)

var _ suture.Service = (*WebSocketHubService)(nil)

type noRecommendations struct{}

func (noRecommendations) Recommend(title string) (recommend.Result, error) {
	return recommend.Result{Query: title, Index: -1, Status: recommend.StatusNotFound}, recommend.ErrNotFound
}

type flakyHub struct {
	runs  atomic.Int32
	fails int32
}

func (f *flakyHub) RunWithContext(ctx context.Context) error {
	if f.runs.Add(1) <= f.fails {
		return errors.New("hub crashed")
	}
	<-ctx.Done()
	return ctx.Err()
}

func TestWebSocketHubService_String(t *testing.T) {
	t.Parallel()

	if got := NewWebSocketHubService(&flakyHub{}).String(); got != "websocket-hub" {
		t.Errorf("String() = %q", got)
	}
}

func TestWebSocketHubService_RealHub(t *testing.T) {
	t.Parallel()

	hub := websocket.NewHub(noRecommendations{}, websocket.DefaultHubConfig())
	svc := NewWebSocketHubService(hub)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	cancel()
	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("hub did not stop")
	}

	select {
	case <-hub.Done():
	default:
		t.Error("hub Done channel not closed after shutdown")
	}
}

func TestWebSocketHubService_RestartedBySupervisor(t *testing.T) {
	t.Parallel()

	hub := &flakyHub{fails: 2}
	started := make(chan struct{})
	sup := suture.New("test-realtime", suture.Spec{
		FailureThreshold: 5,
		FailureBackoff:   10 * time.Millisecond,
		Timeout:          time.Second,
	})
	sup.Add(NewWebSocketHubService(hub))
	sup.Add(serviceFunc(func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	}))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := sup.ServeBackground(ctx)
	<-started

	deadline := time.Now().Add(2 * time.Second)
	for hub.runs.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	<-errCh

	if got := hub.runs.Load(); got != 3 {
		t.Errorf("hub ran %d times, want 3", got)
	}
}

type serviceFunc func(ctx context.Context) error

func (f serviceFunc) Serve(ctx context.Context) error { return f(ctx) }
