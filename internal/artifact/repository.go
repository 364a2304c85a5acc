// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package artifact

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// FileExtension is the suffix of every bundle file.
const FileExtension = ".bundle.gz"

// Repository manages versioned bundle files in a directory.
type Repository struct {
	dir string
	mu  sync.RWMutex

	// latest version per bundle name
	versions map[string]int
}

// NewRepository opens (creating if needed) a bundle directory and indexes
// the bundles already present.
func NewRepository(dir string) (*Repository, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil { //nolint:gosec // 0750 is acceptable for bundle storage
		return nil, fmt.Errorf("create bundle directory: %w", err)
	}

	r := &Repository{
		dir:      dir,
		versions: make(map[string]int),
	}
	if err := r.scan(); err != nil {
		return nil, fmt.Errorf("scan existing bundles: %w", err)
	}
	return r, nil
}

// Dir returns the repository directory.
func (r *Repository) Dir() string {
	return r.dir
}

// scan rebuilds the latest-version index from the directory listing.
func (r *Repository) scan() error {
	all, err := r.allVersions()
	if err != nil {
		return err
	}
	r.versions = make(map[string]int, len(all))
	for name, versions := range all {
		r.versions[name] = versions[0]
	}
	return nil
}

// allVersions returns every stored version per name, sorted descending.
func (r *Repository) allVersions() (map[string][]int, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, err
	}

	all := make(map[string][]int)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name, version, ok := parseBundleFilename(entry.Name())
		if !ok {
			continue
		}
		all[name] = append(all[name], version)
	}
	for _, versions := range all {
		sort.Sort(sort.Reverse(sort.IntSlice(versions)))
	}
	return all, nil
}

// parseBundleFilename splits "movies_v3.bundle.gz" into ("movies", 3).
func parseBundleFilename(filename string) (name string, version int, ok bool) {
	base, found := strings.CutSuffix(filename, FileExtension)
	if !found {
		return "", 0, false
	}

	// The last "_v" separates name from version
	idx := strings.LastIndex(base, "_v")
	if idx <= 0 {
		return "", 0, false
	}

	version, err := strconv.Atoi(base[idx+2:])
	if err != nil || version < 1 {
		return "", 0, false
	}
	return base[:idx], version, true
}

// validateName rejects names that would escape the directory or break parsing.
func validateName(name string) error {
	if name == "" || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// Path returns the file path for a bundle version.
func (r *Repository) Path(name string, version int) string {
	return filepath.Join(r.dir, fmt.Sprintf("%s_v%d%s", name, version, FileExtension))
}

// Save writes b as name at version. Version 0 allocates the next version.
//
//nolint:gocritic // meta passed by value is acceptable for this write operation
func (r *Repository) Save(ctx context.Context, name string, version int, b *Bundle, meta Metadata) (*Metadata, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if version <= 0 {
		version = r.versions[name] + 1
	}
	meta.Name = name
	meta.Version = version

	var saved *Metadata
	err := r.writeAtomic(r.Path(name, version), func(w io.Writer) error {
		var encErr error
		saved, encErr = Encode(w, b, meta)
		return encErr
	})
	if err != nil {
		return nil, err
	}

	if version > r.versions[name] {
		r.versions[name] = version
	}
	return saved, nil
}

// Install copies an already-encoded bundle from src into the repository.
// The copy is verified (checksum and catalog invariants) before it becomes
// visible. Version 0 uses the version recorded in the file, or the next
// free version when the file records none.
func (r *Repository) Install(ctx context.Context, name string, version int, src io.Reader) (*Metadata, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	tmp, err := os.CreateTemp(r.dir, ".install-*")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }() //nolint:errcheck // temp file is already renamed on success

	if _, err := io.Copy(tmp, src); err != nil {
		_ = tmp.Close() //nolint:errcheck // copy error takes precedence
		return nil, fmt.Errorf("write bundle: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		_ = tmp.Close() //nolint:errcheck // seek error takes precedence
		return nil, fmt.Errorf("rewind bundle: %w", err)
	}

	b, meta, err := Decode(tmp)
	_ = tmp.Close() //nolint:errcheck // file was only read after the copy
	if err != nil {
		return nil, err
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if version <= 0 {
		version = meta.Version
	}
	if version <= 0 {
		version = r.versions[name] + 1
	}

	if err := os.Rename(tmpName, r.Path(name, version)); err != nil {
		return nil, fmt.Errorf("install bundle: %w", err)
	}
	if version > r.versions[name] {
		r.versions[name] = version
	}

	meta.Name = name
	meta.Version = version
	return meta, nil
}

// Load reads and verifies a bundle. Version 0 loads the latest version.
func (r *Repository) Load(ctx context.Context, name string, version int) (*Bundle, *Metadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	f, version, err := r.open(name, version)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = f.Close() }() //nolint:errcheck // error on close after read is not actionable

	b, meta, err := Decode(f)
	if err != nil {
		return nil, nil, fmt.Errorf("%s v%d: %w", name, version, err)
	}

	// The file name is authoritative for name and version
	meta.Name = name
	meta.Version = version
	return b, meta, nil
}

// Inspect returns the metadata of a bundle without decoding its payload.
func (r *Repository) Inspect(ctx context.Context, name string, version int) (*Metadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, version, err := r.open(name, version)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }() //nolint:errcheck // error on close after read is not actionable

	meta, err := ReadMetadata(f)
	if err != nil {
		return nil, fmt.Errorf("%s v%d: %w", name, version, err)
	}
	meta.Name = name
	meta.Version = version
	return meta, nil
}

// open resolves version 0 to the latest version and opens the file.
func (r *Repository) open(name string, version int) (*os.File, int, error) {
	if err := validateName(name); err != nil {
		return nil, 0, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if version <= 0 {
		latest, ok := r.versions[name]
		if !ok {
			return nil, 0, fmt.Errorf("%w: %s", ErrBundleNotFound, name)
		}
		version = latest
	}

	f, err := os.Open(r.Path(name, version)) //nolint:gosec // path is built from a validated name
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, 0, fmt.Errorf("%w: %s v%d", ErrBundleNotFound, name, version)
		}
		return nil, 0, fmt.Errorf("open bundle file: %w", err)
	}
	return f, version, nil
}

// LatestVersion returns the latest version stored for name.
func (r *Repository) LatestVersion(name string) (int, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	version, ok := r.versions[name]
	return version, ok
}

// List returns metadata for every stored bundle, ordered by name and then
// by version descending. Unreadable files are skipped.
func (r *Repository) List(ctx context.Context) ([]Metadata, error) {
	r.mu.RLock()
	all, err := r.allVersions()
	r.mu.RUnlock()
	if err != nil {
		return nil, fmt.Errorf("read directory: %w", err)
	}

	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)

	var list []Metadata
	for _, name := range names {
		for _, version := range all[name] {
			meta, err := r.Inspect(ctx, name, version)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return nil, ctxErr
				}
				continue
			}
			list = append(list, *meta)
		}
	}
	return list, nil
}

// Delete removes a specific bundle version.
func (r *Repository) Delete(ctx context.Context, name string, version int) error {
	if err := validateName(name); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.Remove(r.Path(name, version)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s v%d", ErrBundleNotFound, name, version)
		}
		return fmt.Errorf("delete bundle: %w", err)
	}
	if err := r.scan(); err != nil {
		return fmt.Errorf("read directory: %w", err)
	}
	return nil
}

// Prune removes old versions of name, keeping the newest keep versions.
// It returns the removed versions.
func (r *Repository) Prune(ctx context.Context, name string, keep int) ([]int, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if keep < 1 {
		keep = 1
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.allVersions()
	if err != nil {
		return nil, fmt.Errorf("read directory: %w", err)
	}

	versions := all[name]
	if len(versions) <= keep {
		return nil, nil
	}

	var removed []int
	for _, v := range versions[keep:] {
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		if err := os.Remove(r.Path(name, v)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return removed, fmt.Errorf("delete bundle: %w", err)
		}
		removed = append(removed, v)
	}
	return removed, r.scan()
}

// writeAtomic writes to a temp file in the repository and renames it to
// path once write succeeds, so readers never observe a partial file.
func (r *Repository) writeAtomic(path string, write func(io.Writer) error) error {
	tmp, err := os.CreateTemp(r.dir, ".write-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if err := write(tmp); err != nil {
		_ = tmp.Close()        //nolint:errcheck // write error takes precedence
		_ = os.Remove(tmpName) //nolint:errcheck // best-effort cleanup
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName) //nolint:errcheck // best-effort cleanup
		return fmt.Errorf("close bundle file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName) //nolint:errcheck // best-effort cleanup
		return fmt.Errorf("rename bundle file: %w", err)
	}
	return nil
}
