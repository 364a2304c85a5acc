// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package websocket

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/metrics"
	"github.com/tomtom215/cinematch/internal/models"
	"github.com/tomtom215/cinematch/internal/recommend"
)

// ShutdownReason represents why the hub stopped
type ShutdownReason string

const (
	// ShutdownReasonContextCanceled indicates shutdown due to context cancellation
	ShutdownReasonContextCanceled ShutdownReason = "context_canceled"

	// ShutdownReasonContextDeadline indicates shutdown due to context deadline exceeded
	ShutdownReasonContextDeadline ShutdownReason = "context_deadline"
)

// Message types
const (
	MessageTypeRecommend       = "recommend"
	MessageTypePing            = "ping"
	MessageTypePong            = "pong"
	MessageTypeRecommendations = "recommendations"
	MessageTypeNotFound        = "not_found"
	MessageTypeError           = "error"
)

// Error codes carried by error messages
const (
	ErrCodeValidation  = "VALIDATION_ERROR"
	ErrCodeRateLimited = "RATE_LIMITED"
	ErrCodeInvalid     = "INVALID_MESSAGE"
	ErrCodeUnknownType = "UNKNOWN_TYPE"
	ErrCodeInternal    = "INTERNAL_ERROR"
)

// Message is a server to client message.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// NotFoundData is the payload of a not_found message.
type NotFoundData struct {
	Query   string `json:"query"`
	Message string `json:"message"`
}

// ErrorData is the payload of an error message.
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Recommender answers title queries.
type Recommender interface {
	Recommend(title string) (recommend.Result, error)
}

// HubConfig configures per-connection limits.
type HubConfig struct {
	// MessagesPerSecond is the sustained inbound message rate per connection.
	MessagesPerSecond float64

	// Burst is the number of messages allowed above the sustained rate.
	Burst int
}

// DefaultHubConfig returns the limits used when none are configured.
func DefaultHubConfig() HubConfig {
	return HubConfig{MessagesPerSecond: 5, Burst: 10}
}

// Hub maintains the set of active clients.
type Hub struct {
	clients     map[*Client]bool
	Register    chan *Client
	Unregister  chan *Client
	mu          sync.RWMutex
	recommender Recommender
	cfg         HubConfig
	done        chan struct{}
	doneOnce    sync.Once
}

// NewHub creates a hub answering queries with rec.
func NewHub(rec Recommender, cfg HubConfig) *Hub {
	if cfg.MessagesPerSecond <= 0 || cfg.Burst < 1 {
		cfg = DefaultHubConfig()
	}
	return &Hub{
		clients:     make(map[*Client]bool),
		Register:    make(chan *Client),
		Unregister:  make(chan *Client),
		recommender: rec,
		cfg:         cfg,
		done:        make(chan struct{}),
	}
}

// newLimiter returns a fresh per-connection limiter.
func (h *Hub) newLimiter() *rate.Limiter {
	return rate.NewLimiter(rate.Limit(h.cfg.MessagesPerSecond), h.cfg.Burst)
}

// RunWithContext processes registrations until ctx is canceled, then closes
// every client. It always returns ctx.Err().
func (h *Hub) RunWithContext(ctx context.Context) error {
	for {
		// Check context first to prioritize shutdown
		select {
		case <-ctx.Done():
			h.logGracefulShutdown(ctx)
			return ctx.Err()
		default:
		}

		select {
		case <-ctx.Done():
			h.logGracefulShutdown(ctx)
			return ctx.Err()

		case client := <-h.Register:
			h.mu.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.mu.Unlock()
			metrics.WSConnections.Inc()
			logging.Info().Int("total_clients", count).Msg("websocket client connected")

		case client := <-h.Unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.closeSend()
				metrics.WSConnections.Dec()
			}
			count := len(h.clients)
			h.mu.Unlock()
			logging.Info().Int("total_clients", count).Msg("websocket client disconnected")
		}
	}
}

// Done is closed once the hub has stopped. Sends on Register and Unregister
// must also select on it.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

// Attach registers client unless the hub has stopped.
func (h *Hub) Attach(client *Client) bool {
	select {
	case h.Register <- client:
		return true
	case <-h.done:
		return false
	}
}

// logGracefulShutdown closes all clients and logs the shutdown
func (h *Hub) logGracefulShutdown(ctx context.Context) {
	h.doneOnce.Do(func() { close(h.done) })
	clientCount := h.GetClientCount()
	h.closeAllClients()

	logging.Info().
		Str("component", "websocket-hub").
		Str("reason", string(getShutdownReason(ctx))).
		Int("clients_closed", clientCount).
		Msg("websocket hub stopped")
}

// getShutdownReason determines the shutdown reason from context error
func getShutdownReason(ctx context.Context) ShutdownReason {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return ShutdownReasonContextDeadline
	}
	return ShutdownReasonContextCanceled
}

// closeAllClients closes every client's send channel in registration order.
func (h *Hub) closeAllClients() {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	sort.Slice(clients, func(i, j int) bool {
		return clients[i].id < clients[j].id
	})

	for _, client := range clients {
		client.closeSend()
		delete(h.clients, client)
		metrics.WSConnections.Dec()
	}
}

// GetClientCount returns the number of connected clients
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// answer resolves a recommend request to the reply message.
func (h *Hub) answer(title string) Message {
	if title == "" {
		metrics.WSErrors.WithLabelValues("validation").Inc()
		return errorMessage(ErrCodeValidation, models.MsgSelectMovie)
	}

	start := time.Now()
	res, err := h.recommender.Recommend(title)
	duration := time.Since(start)

	switch {
	case err == nil:
		metrics.RecordRecommendation("websocket", string(res.Status), duration)
		return Message{Type: MessageTypeRecommendations, Data: models.NewRecommendationsResponse(res)}

	case errors.Is(err, recommend.ErrNotFound):
		metrics.RecordRecommendation("websocket", string(res.Status), duration)
		return Message{Type: MessageTypeNotFound, Data: NotFoundData{Query: title, Message: models.MsgMovieNotFound}}

	default:
		metrics.RecordRecommendation("websocket", "error", duration)
		metrics.WSErrors.WithLabelValues("recommend").Inc()
		logging.Error().Err(err).Msg("websocket recommendation failed")
		return errorMessage(ErrCodeInternal, "Recommendations are unavailable right now.")
	}
}

func errorMessage(code, msg string) Message {
	return Message{Type: MessageTypeError, Data: ErrorData{Code: code, Message: msg}}
}
