// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package artifact

import (
	"bytes"
	"compress/gzip"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"github.com/tomtom215/cinematch/internal/catalog"
)

// Bundle is the catalog and similarity matrix as persisted on disk.
// Movies[i] corresponds to row and column i of Similarity.
type Bundle struct {
	Movies     []catalog.Movie
	Similarity catalog.Matrix
}

// Metadata describes a stored bundle.
type Metadata struct {
	// Name is the bundle family (e.g., "movies").
	Name string `json:"name"`

	// Version is the bundle version (monotonically increasing).
	Version int `json:"version"`

	// BuiltAt is when the bundle was built from its sources.
	BuiltAt time.Time `json:"built_at"`

	// SavedAt is when the bundle was written.
	SavedAt time.Time `json:"saved_at"`

	// MovieCount is the catalog length N.
	MovieCount int `json:"movie_count"`

	// Checksum is the SHA-256 checksum of the uncompressed payload.
	Checksum string `json:"checksum"`

	// SizeBytes is the compressed payload size in bytes.
	SizeBytes int64 `json:"size_bytes"`

	// Source records where the bundle came from (CSV paths or a URL).
	Source string `json:"source,omitempty"`
}

// Validate reports whether the bundle satisfies the catalog invariants.
func (b *Bundle) Validate() error {
	return catalog.Validate(b.Movies, b.Similarity)
}

// Store builds the read-only catalog store from the bundle.
func (b *Bundle) Store() (*catalog.Store, error) {
	return catalog.New(b.Movies, b.Similarity)
}

// storedFile is the on-disk envelope for bundle files.
type storedFile struct {
	Metadata       Metadata
	CompressedData []byte
}

// Encode validates b, then writes it to w with meta. Checksum, SizeBytes,
// MovieCount and SavedAt are filled in; the completed metadata is returned.
//
//nolint:gocritic // meta passed by value so callers keep their copy untouched
func Encode(w io.Writer, b *Bundle, meta Metadata) (*Metadata, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(b); err != nil {
		return nil, fmt.Errorf("encode bundle: %w", err)
	}
	rawData := buf.Bytes()

	hash := sha256.Sum256(rawData)
	meta.Checksum = hex.EncodeToString(hash[:])

	var compressed bytes.Buffer
	gzw := gzip.NewWriter(&compressed)
	if _, err := gzw.Write(rawData); err != nil {
		return nil, fmt.Errorf("compress bundle: %w", err)
	}
	if err := gzw.Close(); err != nil {
		return nil, fmt.Errorf("finalize compression: %w", err)
	}

	meta.SizeBytes = int64(compressed.Len())
	meta.MovieCount = len(b.Movies)
	meta.SavedAt = time.Now().UTC()
	if meta.BuiltAt.IsZero() {
		meta.BuiltAt = meta.SavedAt
	}

	sf := storedFile{Metadata: meta, CompressedData: compressed.Bytes()}
	if err := gob.NewEncoder(w).Encode(sf); err != nil {
		return nil, fmt.Errorf("write bundle file: %w", err)
	}
	return &meta, nil
}

// Decode reads a bundle written by Encode and verifies its checksum.
// The returned bundle is not validated; call Store or Validate.
func Decode(r io.Reader) (*Bundle, *Metadata, error) {
	sf, err := readEnvelope(r)
	if err != nil {
		return nil, nil, err
	}

	gzr, err := gzip.NewReader(bytes.NewReader(sf.CompressedData))
	if err != nil {
		return nil, nil, fmt.Errorf("decompress bundle: %w", err)
	}
	defer func() { _ = gzr.Close() }() //nolint:errcheck // error on gzip close after read is not actionable

	rawData, err := io.ReadAll(gzr)
	if err != nil {
		return nil, nil, fmt.Errorf("read decompressed data: %w", err)
	}

	hash := sha256.Sum256(rawData)
	checksum := hex.EncodeToString(hash[:])
	if checksum != sf.Metadata.Checksum {
		return nil, nil, fmt.Errorf("%w: expected %s, got %s", ErrChecksumMismatch, sf.Metadata.Checksum, checksum)
	}

	var b Bundle
	if err := gob.NewDecoder(bytes.NewReader(rawData)).Decode(&b); err != nil {
		return nil, nil, fmt.Errorf("decode bundle: %w", err)
	}

	return &b, &sf.Metadata, nil
}

// ReadMetadata reads only the metadata of a bundle file. The payload is not
// decompressed or verified.
func ReadMetadata(r io.Reader) (*Metadata, error) {
	sf, err := readEnvelope(r)
	if err != nil {
		return nil, err
	}
	return &sf.Metadata, nil
}

func readEnvelope(r io.Reader) (*storedFile, error) {
	var sf storedFile
	if err := gob.NewDecoder(r).Decode(&sf); err != nil {
		return nil, fmt.Errorf("read bundle file: %w", err)
	}
	return &sf, nil
}
