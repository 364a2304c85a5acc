// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package artifact

import "errors"

var (
	// ErrBundleNotFound is returned when no bundle file matches a name and version.
	ErrBundleNotFound = errors.New("bundle not found")

	// ErrChecksumMismatch is returned when a payload does not match its recorded checksum.
	ErrChecksumMismatch = errors.New("checksum mismatch")

	// ErrDownloadFailed is returned when a remote bundle cannot be retrieved.
	ErrDownloadFailed = errors.New("bundle download failed")

	// ErrBundleTooLarge is returned when a download exceeds the configured size cap.
	ErrBundleTooLarge = errors.New("bundle exceeds size limit")

	// ErrInvalidName is returned for bundle names that cannot form a file name.
	ErrInvalidName = errors.New("invalid bundle name")
)
