// Package storage provides the Storage adapter implementations: a local
// directory tree, an S3-compatible object store, an in-memory store for
// tests, and the not-yet-integrated 115 cloud backend.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"photosafe/internal/backup"
)

// LocalStorage serves a fixed base directory. Every operation joins the
// given relative path onto the base; callers confine paths before they get
// here.
type LocalStorage struct {
	basePath string
}

var _ backup.Storage = (*LocalStorage)(nil)

// NewLocalStorage creates a LocalStorage rooted at basePath.
func NewLocalStorage(basePath string) *LocalStorage {
	return &LocalStorage{basePath: basePath}
}

// ListFiles enumerates regular files (not subdirectories) under prefix.
// Paths in the result are relative to the base.
func (l *LocalStorage) ListFiles(_ context.Context, prefix string) ([]backup.FileInfo, error) {
	dir := filepath.Join(l.basePath, prefix)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", prefix, err)
	}

	files := []backup.FileInfo{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", entry.Name(), err)
		}
		files = append(files, backup.FileInfo{
			Path:       filepath.Join(prefix, entry.Name()),
			Size:       info.Size(),
			ModifiedAt: info.ModTime(),
		})
	}
	return files, nil
}

// ReadFile returns the contents of the file at path.
func (l *LocalStorage) ReadFile(_ context.Context, path string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(l.basePath, path))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// WriteFile writes data to path, creating parent directories first.
func (l *LocalStorage) WriteFile(_ context.Context, path string, data []byte) error {
	full := filepath.Join(l.basePath, path)
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return fmt.Errorf("creating parent directory for %s: %w", path, err)
	}
	if err := os.WriteFile(full, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// EnsureDir makes sure the directory at path exists.
func (l *LocalStorage) EnsureDir(_ context.Context, path string) error {
	if err := os.MkdirAll(filepath.Join(l.basePath, path), 0755); err != nil {
		return fmt.Errorf("creating directory %s: %w", path, err)
	}
	return nil
}
