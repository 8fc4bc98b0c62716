package state

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"photosafe/internal/backup"
)

func TestFileStore_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "backup-state.json")
	store := NewFileStore(path, backup.NewNopLogger())

	original := backup.NewBackupState()
	original.Storages = append(original.Storages, backup.StorageTarget{
		ID:   "st-1",
		Name: "primary",
		Type: backup.StorageTypeLocalFS,
	})
	original.Jobs = append(original.Jobs, backup.BackupJob{ID: "job-1", Name: "nightly"})

	if err := store.Save(original); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(loaded.Storages) != 1 || loaded.Storages[0].ID != "st-1" {
		t.Errorf("loaded.Storages = %+v, want the saved target", loaded.Storages)
	}
	if len(loaded.Jobs) != 1 || loaded.Jobs[0].Name != "nightly" {
		t.Errorf("loaded.Jobs = %+v, want the saved job", loaded.Jobs)
	}
}

func TestFileStore_LoadMissingFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "nope.json"), backup.NewNopLogger())

	state, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if state == nil {
		t.Fatal("Load() returned nil state")
	}
	if state.Storages == nil || len(state.Storages) != 0 {
		t.Errorf("state.Storages = %v, want empty non-nil slice", state.Storages)
	}
}

func TestFileStore_LoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("writing corrupt file: %v", err)
	}
	store := NewFileStore(path, backup.NewNopLogger())

	state, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(state.Storages) != 0 || len(state.Jobs) != 0 {
		t.Errorf("corrupt file should load as empty state, got %+v", state)
	}
}

func TestFileStore_LoadPartialDocument(t *testing.T) {
	// A document written by an older build may lack newer collections. They
	// must come back empty, never nil.
	path := filepath.Join(t.TempDir(), "state.json")
	doc := `{"storages":[{"id":"st-1","name":"only","type":"local_fs","basePath":"/media","encrypted":false}]}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("writing partial file: %v", err)
	}
	store := NewFileStore(path, backup.NewNopLogger())

	state, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(state.Storages) != 1 {
		t.Errorf("len(Storages) = %d, want 1", len(state.Storages))
	}
	for name, coll := range map[string]bool{
		"Jobs":     state.Jobs == nil,
		"Assets":   state.Assets == nil,
		"JobRuns":  state.JobRuns == nil,
		"Users":    state.Users == nil,
		"Sessions": state.Sessions == nil,
	} {
		if coll {
			t.Errorf("%s is nil, want empty slice", name)
		}
	}
}

func TestFileStore_SaveWritesEveryTopLevelKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	store := NewFileStore(path, backup.NewNopLogger())

	if err := store.Save(&backup.BackupState{}); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading state file: %v", err)
	}
	for _, key := range []string{`"storages"`, `"jobs"`, `"assets"`, `"jobRuns"`, `"settings"`, `"users"`, `"sessions"`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("state document missing top-level key %s", key)
		}
	}
}

func TestFileStore_SaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(filepath.Join(dir, "state.json"), backup.NewNopLogger())

	if err := store.Save(backup.NewBackupState()); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading dir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "state.json" {
		names := []string{}
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("directory contents = %v, want only state.json", names)
	}
}

func TestFileStore_SaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	store := NewFileStore(path, backup.NewNopLogger())

	first := backup.NewBackupState()
	first.Jobs = append(first.Jobs, backup.BackupJob{ID: "job-1"})
	if err := store.Save(first); err != nil {
		t.Fatalf("first Save() error: %v", err)
	}

	second := backup.NewBackupState()
	if err := store.Save(second); err != nil {
		t.Fatalf("second Save() error: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(loaded.Jobs) != 0 {
		t.Errorf("loaded.Jobs = %+v, want empty after overwrite", loaded.Jobs)
	}
}
