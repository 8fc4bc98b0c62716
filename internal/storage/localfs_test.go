package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLocalStorage_WriteAndRead(t *testing.T) {
	ctx := context.Background()
	s := NewLocalStorage(t.TempDir())

	if err := s.WriteFile(ctx, "photos/2024/IMG_0001.heic", []byte("payload")); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	got, err := s.ReadFile(ctx, "photos/2024/IMG_0001.heic")
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if !bytes.Equal(got, []byte("payload")) {
		t.Errorf("ReadFile() = %q, want %q", got, "payload")
	}
}

func TestLocalStorage_ReadMissingFile(t *testing.T) {
	s := NewLocalStorage(t.TempDir())

	if _, err := s.ReadFile(context.Background(), "absent.jpg"); err == nil {
		t.Error("ReadFile() on missing file expected error, got nil")
	}
}

func TestLocalStorage_ListFiles(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()
	s := NewLocalStorage(base)

	for _, path := range []string{"album/a.jpg", "album/b.mov"} {
		if err := s.WriteFile(ctx, path, []byte("x")); err != nil {
			t.Fatalf("WriteFile(%s) error: %v", path, err)
		}
	}
	if err := os.MkdirAll(filepath.Join(base, "album", "nested"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	files, err := s.ListFiles(ctx, "album")
	if err != nil {
		t.Fatalf("ListFiles() error: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("len(files) = %d, want 2 (subdirectories excluded)", len(files))
	}
	for _, f := range files {
		if filepath.Dir(f.Path) != "album" {
			t.Errorf("file path %q not relative to the base", f.Path)
		}
		if f.Size != 1 {
			t.Errorf("file %s size = %d, want 1", f.Path, f.Size)
		}
	}
}

func TestLocalStorage_ListFilesMissingDir(t *testing.T) {
	s := NewLocalStorage(t.TempDir())

	if _, err := s.ListFiles(context.Background(), "absent"); err == nil {
		t.Error("ListFiles() on missing directory expected error, got nil")
	}
}

func TestLocalStorage_EnsureDir(t *testing.T) {
	base := t.TempDir()
	s := NewLocalStorage(base)

	if err := s.EnsureDir(context.Background(), "deep/nested/dir"); err != nil {
		t.Fatalf("EnsureDir() error: %v", err)
	}

	info, err := os.Stat(filepath.Join(base, "deep/nested/dir"))
	if err != nil {
		t.Fatalf("stat created dir: %v", err)
	}
	if !info.IsDir() {
		t.Error("EnsureDir() target is not a directory")
	}
}
