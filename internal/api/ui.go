// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/tomtom215/cinematch/internal/logging"
)

//go:embed ui
var uiEmbed embed.FS

// uiFiles returns the embedded UI rooted at its directory.
func uiFiles() fs.FS {
	sub, err := fs.Sub(uiEmbed, "ui")
	if err != nil {
		// The directory is embedded at build time
		panic(err)
	}
	return sub
}

// uiFileExists reports whether name is a regular file in the embedded UI.
func uiFileExists(name string) bool {
	if name == "" {
		return false
	}
	info, err := fs.Stat(uiFiles(), name)
	return err == nil && !info.IsDir()
}

// serveIndex writes index.html.
func serveIndex(w http.ResponseWriter, _ *http.Request) {
	data, err := fs.ReadFile(uiFiles(), "index.html")
	if err != nil {
		logging.Error().Err(err).Msg("Failed to read embedded index.html")
		http.Error(w, "UI unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(data); err != nil {
		logging.Debug().Err(err).Msg("Failed to write index.html")
	}
}
