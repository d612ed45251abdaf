// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package directory owns the canonical researcher store: JSON persistence
// with load-boundary normalization, the submission merge pass, and the
// SQLite change-audit log.
package directory

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/scholar-directory/internal/sentinel"
	"github.com/pdiddy/scholar-directory/pkg/types"
)

// Store persists the canonical directory as a single JSON document.
// There is no partial or streaming API; the whole collection is read and
// written each time.
type Store struct {
	path string
}

// NewStore returns a store backed by the JSON file at cfg.Path.
func NewStore(cfg types.StoreConfig) *Store {
	return &Store{path: cfg.Path}
}

// Load reads the full ordered record collection. A missing file or
// malformed JSON is a structural failure: the caller aborts before any
// merge logic runs. Legacy encodings are normalized here so downstream
// code only sees "" for blank scalars and empty slices for blank lists.
func (s *Store) Load() ([]types.Researcher, error) {
	records, err := ReadRecords(s.path)
	if err != nil {
		return nil, err
	}
	for i := range records {
		Normalize(&records[i])
	}
	return records, nil
}

// Save writes the full ordered record collection via a temporary file.
func (s *Store) Save(records []types.Researcher) error {
	return WriteRecords(s.path, records)
}

// Path returns the store's JSON file path.
func (s *Store) Path() string {
	return s.path
}

// Names returns the set of record names, used by classification to
// suppress add candidates that already exist.
func Names(records []types.Researcher) map[string]struct{} {
	names := make(map[string]struct{}, len(records))
	for i := range records {
		names[records[i].Name] = struct{}{}
	}
	return names
}

// Normalize rewrites one record's legacy blank encodings in place:
// sentinel scalars become "", nil slices become empty slices. Records
// written before standardized_interests existed lack the key entirely.
func Normalize(r *types.Researcher) {
	r.Name = sentinel.Clean(r.Name)
	r.Affiliation = sentinel.Clean(r.Affiliation)
	r.Position = sentinel.Clean(r.Position)
	r.Photo = sentinel.Clean(r.Photo)
	r.Scholar = sentinel.Clean(r.Scholar)
	r.LinkedIn = sentinel.Clean(r.LinkedIn)
	r.Twitter = sentinel.Clean(r.Twitter)
	r.Website = sentinel.Clean(r.Website)
	r.LastUpdate = sentinel.Clean(r.LastUpdate)
	if r.Interests == nil {
		r.Interests = []string{}
	}
	if r.StandardizedInterests == nil {
		r.StandardizedInterests = []string{}
	}
}

// ReadRecords reads an ordered researcher list from a JSON file. Used for
// both the canonical store and the candidate hand-off files.
func ReadRecords(path string) ([]types.Researcher, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var records []types.Researcher
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return records, nil
}

// WriteRecords writes an ordered researcher list as JSON via a temporary
// file in the destination directory, renamed on success.
func WriteRecords(path string, records []types.Researcher) error {
	if records == nil {
		records = []types.Researcher{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling records: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".store-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	_, writeErr := tmp.Write(data)
	closeErr := tmp.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing records: %w", writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
