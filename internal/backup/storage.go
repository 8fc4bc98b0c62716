package backup

import (
	"context"
	"time"
)

// FileInfo describes one file visible through a storage adapter.
type FileInfo struct {
	Path       string    `json:"path"`
	Size       int64     `json:"size"`
	ModifiedAt time.Time `json:"modifiedAt"`
}

// Storage is the capability set every backend must provide. Paths are
// relative to the backend's own base; adapters join them internally.
// Partial implementations must fail explicitly on the operations they do not
// support, never silently no-op on read/write.
type Storage interface {
	// ListFiles enumerates files (not subdirectories) under prefix.
	ListFiles(ctx context.Context, prefix string) ([]FileInfo, error)

	// ReadFile returns the full contents of the file at path.
	ReadFile(ctx context.Context, path string) ([]byte, error)

	// WriteFile writes data to path, creating parent directories as needed.
	WriteFile(ctx context.Context, path string, data []byte) error

	// EnsureDir makes sure the directory at path exists.
	EnsureDir(ctx context.Context, path string) error
}

// StateStore is the persistence contract for the state document. Load never
// fails on a missing or corrupt file; it returns a default-filled state
// instead. Save rewrites the whole document.
type StateStore interface {
	Load() (*BackupState, error)
	Save(state *BackupState) error
}
