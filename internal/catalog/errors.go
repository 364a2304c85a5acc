// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"errors"
	"fmt"
)

// ErrInvariantViolation is returned when the catalog and similarity matrix
// cannot be aligned. It is fatal at load time.
var ErrInvariantViolation = errors.New("catalog invariant violation")

// InvariantError describes why a catalog/matrix pair was rejected.
type InvariantError struct {
	// Reason is a short human-readable description.
	Reason string

	// Expected and Actual carry the sizes involved, when relevant.
	Expected int
	Actual   int

	// Row is the offending matrix row, or -1 when the whole matrix is at fault.
	Row int
}

// Error implements the error interface.
func (e *InvariantError) Error() string {
	msg := fmt.Sprintf("%s: %s", ErrInvariantViolation, e.Reason)
	if e.Row >= 0 {
		msg += fmt.Sprintf(" at row %d", e.Row)
	}
	if e.Expected != e.Actual {
		msg += fmt.Sprintf(" (expected %d, got %d)", e.Expected, e.Actual)
	}
	return msg
}

// Unwrap allows errors.Is(err, ErrInvariantViolation).
func (e *InvariantError) Unwrap() error {
	return ErrInvariantViolation
}

func invariantf(row, expected, actual int, reason string) error {
	return &InvariantError{Reason: reason, Expected: expected, Actual: actual, Row: row}
}
