// Package state persists the whole entity graph as one JSON document.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"photosafe/internal/backup"
)

// FileStore reads and rewrites the state document at a fixed path. There is
// no partial update: every mutation loads the whole document, changes one
// entity list, and saves the whole document back. Two concurrent
// load-mutate-save sequences can lose an update; the deployment relies on an
// admin console's low write concurrency.
type FileStore struct {
	path   string
	logger backup.Logger
}

var _ backup.StateStore = (*FileStore)(nil)

// NewFileStore creates a FileStore for the given document path.
func NewFileStore(path string, logger backup.Logger) *FileStore {
	return &FileStore{path: path, logger: logger}
}

// Load reads the state document. A missing, unreadable, or unparseable file
// yields a fresh default state instead of an error; corruption is treated
// as "never initialized". Collections absent from the document come back
// empty, never nil.
func (s *FileStore) Load() (*backup.BackupState, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("state file unreadable, starting from empty state", "path", s.path, "error", err)
		}
		return backup.NewBackupState(), nil
	}

	var state backup.BackupState
	if err := json.Unmarshal(data, &state); err != nil {
		s.logger.Warn("state file corrupt, starting from empty state", "path", s.path, "error", err)
		return backup.NewBackupState(), nil
	}

	state.Normalize()
	return &state, nil
}

// Save serializes the whole state as pretty-printed JSON and overwrites the
// document, creating the parent directory if needed. The write goes through
// a temp file and rename so a crash mid-write cannot leave a torn document.
func (s *FileStore) Save(state *backup.BackupState) error {
	state.Normalize()

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("serializing state: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".state-*")
	if err != nil {
		return fmt.Errorf("creating temp state file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp state file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing state file: %w", err)
	}
	return nil
}
