// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package websocket serves interactive recommendation queries over WebSocket.

Each connection is a Client with a read pump and a write pump. The Hub tracks
connected clients, answers queries through the shared recommender and closes
every client when its context is canceled.

# Protocol

Client to server:

	{"type": "recommend", "data": {"title": "Avatar"}}
	{"type": "ping"}

Server to client:

	{"type": "recommendations", "data": {"query": "Avatar", "status": "ok", "heading": "...", "items": [...]}}
	{"type": "not_found", "data": {"query": "Avatar 3", "message": "The selected movie was not found. Try another."}}
	{"type": "error", "data": {"code": "VALIDATION_ERROR", "message": "Please select a movie first."}}
	{"type": "pong"}

# Rate Limiting

Inbound messages are limited per connection with golang.org/x/time/rate.
Messages over the limit are answered with an error of code RATE_LIMITED and
otherwise ignored.
*/
package websocket
