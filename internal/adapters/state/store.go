// Package state persists the cache record across process restarts. It is
// strictly a warm-start optimization: a missing or corrupt state file only
// costs one cold rebuild check.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/stamp/internal/core/domain"
	"go.trai.ch/stamp/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.StateStore = (*Store)(nil)

// Store implements ports.StateStore using a flat JSON file with an
// xxhash64 integrity checksum, so torn or hand-edited writes surface as
// domain.ErrStateCorrupt instead of silently poisoning the cache.
type Store struct {
	path string
}

// envelope is the on-disk representation.
type envelope struct {
	Record   domain.CacheRecord `json:"record"`
	Checksum string             `json:"checksum"`
}

// NewStore creates a StateStore backed by the file at the given path.
func NewStore(path string) *Store {
	return &Store{path: filepath.Clean(path)}
}

// Persist writes the record and its checksum to disk.
func (s *Store) Persist(rec domain.CacheRecord) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return zerr.Wrap(err, "failed to marshal cache record")
	}

	data, err := json.MarshalIndent(envelope{
		Record:   rec,
		Checksum: checksum(payload),
	}, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal state envelope")
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil { //nolint:gosec // Observable by external collaborators
		return zerr.With(zerr.Wrap(err, "failed to write state file"), "path", s.path)
	}
	return nil
}

// Restore reads the last persisted record. A missing file yields nil, nil;
// anything unreadable or inconsistent yields domain.ErrStateCorrupt for
// the caller to log and discard.
func (s *Store) Restore() (*domain.CacheRecord, error) {
	data, err := os.ReadFile(s.path) //nolint:gosec // Path is cleaned and provided by trusted caller
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read state file"), "path", s.path)
	}

	if len(data) == 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrStateCorrupt, "state file is empty"), "path", s.path)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrStateCorrupt, err.Error()), "path", s.path)
	}

	payload, err := json.Marshal(env.Record)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to re-marshal cache record")
	}
	if checksum(payload) != env.Checksum {
		return nil, zerr.With(zerr.Wrap(domain.ErrStateCorrupt, "checksum mismatch"), "path", s.path)
	}

	return &env.Record, nil
}

// checksum computes the xxhash64 hex digest of the payload.
func checksum(payload []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(payload))
}
