package storage

import (
	"context"

	"photosafe/internal/backup"
)

// Cloud115Storage stands in for the 115 cloud backend, which has no
// integration yet. Every data operation fails loudly and names the missing
// operation, so callers can tell "not integrated" apart from a transient
// failure. It must never silently no-op on read or write.
type Cloud115Storage struct{}

var _ backup.Storage = (*Cloud115Storage)(nil)

// NewCloud115Storage creates the placeholder adapter.
func NewCloud115Storage() *Cloud115Storage { return &Cloud115Storage{} }

func (*Cloud115Storage) ListFiles(context.Context, string) ([]backup.FileInfo, error) {
	return nil, &backup.NotImplementedError{Backend: "cloud_115", Operation: "ListFiles"}
}

func (*Cloud115Storage) ReadFile(context.Context, string) ([]byte, error) {
	return nil, &backup.NotImplementedError{Backend: "cloud_115", Operation: "ReadFile"}
}

func (*Cloud115Storage) WriteFile(context.Context, string, []byte) error {
	return &backup.NotImplementedError{Backend: "cloud_115", Operation: "WriteFile"}
}

// EnsureDir is a harmless no-op: the remote backend has no local directory
// concept to prepare.
func (*Cloud115Storage) EnsureDir(context.Context, string) error { return nil }
