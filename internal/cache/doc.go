// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package cache provides a bounded, thread-safe LRU used to memoize
// recommendation rankings.
//
// The catalog is immutable once loaded, so entries never go stale and the
// cache has no TTL: capacity alone bounds memory.
package cache
