// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
)

// FileGateway persists the whole data set as one JSON document. Every write
// rewrites the file through a temp file and rename, so a crash leaves either
// the old or the new version on disk.
//
// It is the local fallback when the primary backend is unreachable and is
// meant for development and single-node demos.
type FileGateway struct {
	*MemoryGateway
	path string
}

// NewFileGateway opens or creates the JSON store at path.
func NewFileGateway(path string) (*FileGateway, error) {
	if path == "" {
		return nil, fmt.Errorf("file store path is empty")
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create file store directory: %w", err)
		}
	}

	mem := NewMemoryGateway()
	mem.name = "file"

	data, err := os.ReadFile(path) //nolint:gosec // path comes from operator configuration
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read file store: %w", err)
	case len(data) > 0:
		var s snapshot
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("decode file store %s: %w", path, err)
		}
		mem.load(s)
	}

	f := &FileGateway{MemoryGateway: mem, path: path}
	mem.persist = f.write
	return f, nil
}

// Path returns the backing file.
func (f *FileGateway) Path() string { return f.path }

func (f *FileGateway) write(s snapshot) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode file store: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".cinemapulse-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace file store: %w", err)
	}
	return nil
}
