package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"photosafe/internal/backup"
)

// MemoryStorage is an in-memory implementation of the Storage interface,
// useful for testing. Safe for concurrent use.
type MemoryStorage struct {
	mu       sync.RWMutex
	files    map[string][]byte
	modified map[string]time.Time
	now      func() time.Time
}

var _ backup.Storage = (*MemoryStorage)(nil)

// NewMemoryStorage creates an empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		files:    map[string][]byte{},
		modified: map[string]time.Time{},
		now:      time.Now,
	}
}

// ListFiles enumerates stored files whose path starts with prefix, sorted by
// path for determinism.
func (m *MemoryStorage) ListFiles(_ context.Context, prefix string) ([]backup.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	files := []backup.FileInfo{}
	for path, data := range m.files {
		if !strings.HasPrefix(path, prefix) {
			continue
		}
		files = append(files, backup.FileInfo{
			Path:       path,
			Size:       int64(len(data)),
			ModifiedAt: m.modified[path],
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// ReadFile returns the stored contents for path.
func (m *MemoryStorage) ReadFile(_ context.Context, path string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.files[path]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", path)
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// WriteFile stores data under path.
func (m *MemoryStorage) WriteFile(_ context.Context, path string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]byte, len(data))
	copy(stored, data)
	m.files[path] = stored
	m.modified[path] = m.now()
	return nil
}

// EnsureDir is a no-op: the in-memory store has no directory concept.
func (m *MemoryStorage) EnsureDir(context.Context, string) error { return nil }
