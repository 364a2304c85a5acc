// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package websocket

import (
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cinematch/internal/models"
	"github.com/tomtom215/cinematch/internal/recommend"
)

func TestClient_Constants(t *testing.T) {
	t.Parallel()

	if pingPeriod >= pongWait {
		t.Errorf("pingPeriod %v must be shorter than pongWait %v", pingPeriod, pongWait)
	}
	if writeWait != 10*time.Second {
		t.Errorf("writeWait = %v, want 10s", writeWait)
	}
}

func TestNewClient_UniqueIDs(t *testing.T) {
	t.Parallel()

	hub := NewHub(nil, DefaultHubConfig())
	a := NewClient(hub, nil)
	b := NewClient(hub, nil)
	if a.ID() == b.ID() {
		t.Errorf("client IDs should differ, both %d", a.ID())
	}
	if b.ID() <= a.ID() {
		t.Errorf("client IDs should increase: %d then %d", a.ID(), b.ID())
	}
}

func TestClient_Recommend(t *testing.T) {
	t.Parallel()

	hub := NewHub(newTestRecommender(t), HubConfig{MessagesPerSecond: 100, Burst: 100})
	startHub(t, hub)
	conn := dialWebSocket(t, setupHubServer(t, hub))

	send(t, conn, `{"type":"recommend","data":{"title":"D"}}`)
	msg := receive(t, conn)
	if msg.Type != MessageTypeRecommendations {
		t.Fatalf("type = %q, want %q (data %s)", msg.Type, MessageTypeRecommendations, msg.Data)
	}

	var resp models.RecommendationsResponse
	if err := json.Unmarshal(msg.Data, &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != recommend.StatusOK || resp.Index != 3 {
		t.Errorf("status=%q index=%d, want ok/3", resp.Status, resp.Index)
	}
	if resp.Heading != models.RecommendationsHeading {
		t.Errorf("heading = %q", resp.Heading)
	}

	want := []string{"C", "E", "B", "F", "A"}
	if len(resp.Items) != len(want) {
		t.Fatalf("got %d items, want %d", len(resp.Items), len(want))
	}
	for i, item := range resp.Items {
		if item.Movie.Title != want[i] {
			t.Errorf("item %d = %q, want %q", i, item.Movie.Title, want[i])
		}
		if item.Rank != i+1 {
			t.Errorf("item %d rank = %d", i, item.Rank)
		}
	}
}

func TestClient_ErrorReplies(t *testing.T) {
	t.Parallel()

	hub := NewHub(newTestRecommender(t), HubConfig{MessagesPerSecond: 100, Burst: 100})
	startHub(t, hub)
	conn := dialWebSocket(t, setupHubServer(t, hub))

	tests := []struct {
		name     string
		input    string
		wantType string
		wantCode string
		wantMsg  string
	}{
		{"not found", `{"type":"recommend","data":{"title":"Z"}}`, MessageTypeNotFound, "", models.MsgMovieNotFound},
		{"case sensitive", `{"type":"recommend","data":{"title":"a"}}`, MessageTypeNotFound, "", models.MsgMovieNotFound},
		{"empty title", `{"type":"recommend","data":{"title":""}}`, MessageTypeError, ErrCodeValidation, models.MsgSelectMovie},
		{"whitespace title is looked up", `{"type":"recommend","data":{"title":"  "}}`, MessageTypeNotFound, "", models.MsgMovieNotFound},
		{"missing data", `{"type":"recommend"}`, MessageTypeError, ErrCodeValidation, models.MsgSelectMovie},
		{"bad json", `not json`, MessageTypeError, ErrCodeInvalid, ""},
		{"bad data", `{"type":"recommend","data":"D"}`, MessageTypeError, ErrCodeInvalid, ""},
		{"unknown type", `{"type":"subscribe"}`, MessageTypeError, ErrCodeUnknownType, ""},
		{"ping", `{"type":"ping"}`, MessageTypePong, "", ""},
	}

	// Sequential on one connection: replies arrive in request order.
	for _, tt := range tests {
		send(t, conn, tt.input)
		msg := receive(t, conn)
		if msg.Type != tt.wantType {
			t.Errorf("%s: type = %q, want %q", tt.name, msg.Type, tt.wantType)
			continue
		}
		switch tt.wantType {
		case MessageTypeNotFound:
			var data NotFoundData
			if err := json.Unmarshal(msg.Data, &data); err != nil {
				t.Fatalf("%s: decode: %v", tt.name, err)
			}
			if data.Message != tt.wantMsg {
				t.Errorf("%s: message = %q, want %q", tt.name, data.Message, tt.wantMsg)
			}
		case MessageTypeError:
			var data ErrorData
			if err := json.Unmarshal(msg.Data, &data); err != nil {
				t.Fatalf("%s: decode: %v", tt.name, err)
			}
			if data.Code != tt.wantCode {
				t.Errorf("%s: code = %q, want %q", tt.name, data.Code, tt.wantCode)
			}
			if tt.wantMsg != "" && data.Message != tt.wantMsg {
				t.Errorf("%s: message = %q, want %q", tt.name, data.Message, tt.wantMsg)
			}
		}
	}
}

func TestClient_RateLimited(t *testing.T) {
	t.Parallel()

	hub := NewHub(newTestRecommender(t), HubConfig{MessagesPerSecond: 0.001, Burst: 2})
	startHub(t, hub)
	conn := dialWebSocket(t, setupHubServer(t, hub))

	for i := 0; i < 3; i++ {
		send(t, conn, `{"type":"ping"}`)
	}
	for i, want := range []string{MessageTypePong, MessageTypePong, MessageTypeError} {
		msg := receive(t, conn)
		if msg.Type != want {
			t.Fatalf("reply %d type = %q, want %q", i, msg.Type, want)
		}
		if want == MessageTypeError {
			var data ErrorData
			if err := json.Unmarshal(msg.Data, &data); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if data.Code != ErrCodeRateLimited {
				t.Errorf("code = %q, want %q", data.Code, ErrCodeRateLimited)
			}
		}
	}
}

func TestClient_EnqueueAfterClose(t *testing.T) {
	t.Parallel()

	hub := NewHub(nil, DefaultHubConfig())
	client := NewClient(hub, nil)
	client.closeSend()
	client.closeSend() // second close is a no-op

	// Must not panic on a closed channel.
	client.enqueue(Message{Type: MessageTypePong})
}

func TestClient_EnqueueDropsWhenFull(t *testing.T) {
	t.Parallel()

	hub := NewHub(nil, DefaultHubConfig())
	client := NewClient(hub, nil)
	for i := 0; i < sendBufferSize+5; i++ {
		client.enqueue(Message{Type: MessageTypePong})
	}
	if got := len(client.send); got != sendBufferSize {
		t.Errorf("buffered = %d, want %d", got, sendBufferSize)
	}
}
