package backup_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"photosafe/internal/backup"
	"photosafe/internal/storage"
)

func TestSyncer_CopiesAllItems(t *testing.T) {
	ctx := context.Background()
	src := storage.NewMemoryStorage()
	dst := storage.NewMemoryStorage()

	files := map[string][]byte{
		"a.heic": []byte("photo a"),
		"a.mov":  []byte("video a"),
		"b.jpg":  []byte("photo b"),
	}
	for path, data := range files {
		if err := src.WriteFile(ctx, path, data); err != nil {
			t.Fatalf("seeding %s: %v", path, err)
		}
	}

	syncer := backup.NewSyncer(testCipher(t), backup.NewNopLogger())
	items := []backup.SyncItem{
		{SourcePath: "a.heic", DestinationPath: "2024/a.heic"},
		{SourcePath: "a.mov", DestinationPath: "2024/a.mov"},
		{SourcePath: "b.jpg", DestinationPath: "2024/b.jpg"},
	}

	uploaded, err := syncer.Run(ctx, src, dst, items)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if uploaded != 3 {
		t.Errorf("uploaded = %d, want 3", uploaded)
	}

	got, err := dst.ReadFile(ctx, "2024/a.mov")
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if !bytes.Equal(got, []byte("video a")) {
		t.Errorf("destination bytes = %q, want %q", got, "video a")
	}
}

func TestSyncer_EncryptedItemRoundTrips(t *testing.T) {
	ctx := context.Background()
	src := storage.NewMemoryStorage()
	dst := storage.NewMemoryStorage()
	cipher := testCipher(t)

	plaintext := []byte("sensitive photo bytes")
	if err := src.WriteFile(ctx, "secret.heic", plaintext); err != nil {
		t.Fatalf("seeding source: %v", err)
	}

	syncer := backup.NewSyncer(cipher, backup.NewNopLogger())
	uploaded, err := syncer.Run(ctx, src, dst, []backup.SyncItem{
		{SourcePath: "secret.heic", DestinationPath: "secret.heic", Encrypted: true},
	})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if uploaded != 1 {
		t.Errorf("uploaded = %d, want 1", uploaded)
	}

	stored, err := dst.ReadFile(ctx, "secret.heic")
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if bytes.Contains(stored, plaintext) {
		t.Error("destination holds plaintext, want ciphertext envelope")
	}

	decrypted, err := cipher.Decrypt(stored)
	if err != nil {
		t.Fatalf("Decrypt() error: %v", err)
	}
	if !bytes.Equal(decrypted, plaintext) {
		t.Errorf("decrypted = %q, want %q", decrypted, plaintext)
	}
}

func TestSyncer_AbortsOnFirstFailure(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemoryStorage()
	dst := storage.NewMemoryStorage()

	for _, path := range []string{"one.jpg", "two.jpg", "three.jpg"} {
		if err := mem.WriteFile(ctx, path, []byte(path)); err != nil {
			t.Fatalf("seeding %s: %v", path, err)
		}
	}
	src := &faultyStorage{Storage: mem, failRead: map[string]bool{"two.jpg": true}}

	syncer := backup.NewSyncer(testCipher(t), backup.NewNopLogger())
	items := []backup.SyncItem{
		{SourcePath: "one.jpg", DestinationPath: "one.jpg"},
		{SourcePath: "two.jpg", DestinationPath: "two.jpg"},
		{SourcePath: "three.jpg", DestinationPath: "three.jpg"},
	}

	uploaded, err := syncer.Run(ctx, src, dst, items)
	if err == nil {
		t.Fatal("Run() error = nil, want failure from second item")
	}
	if !strings.Contains(err.Error(), "two.jpg") {
		t.Errorf("Run() error = %v, want mention of failing path", err)
	}
	if uploaded != 1 {
		t.Errorf("uploaded = %d, want 1", uploaded)
	}

	if _, err := dst.ReadFile(ctx, "one.jpg"); err != nil {
		t.Errorf("first item missing from destination: %v", err)
	}
	// The failure must stop the queue; item three is never attempted.
	if _, err := dst.ReadFile(ctx, "three.jpg"); err == nil {
		t.Error("third item was written after the abort")
	}
}

func TestSyncer_WriteFailurePropagates(t *testing.T) {
	ctx := context.Background()
	src := storage.NewMemoryStorage()
	if err := src.WriteFile(ctx, "a.jpg", []byte("a")); err != nil {
		t.Fatalf("seeding source: %v", err)
	}
	dst := &faultyStorage{Storage: storage.NewMemoryStorage(), failWrite: map[string]bool{"a.jpg": true}}

	syncer := backup.NewSyncer(testCipher(t), backup.NewNopLogger())
	uploaded, err := syncer.Run(ctx, src, dst, []backup.SyncItem{
		{SourcePath: "a.jpg", DestinationPath: "a.jpg"},
	})
	if err == nil {
		t.Fatal("Run() error = nil, want write failure")
	}
	if uploaded != 0 {
		t.Errorf("uploaded = %d, want 0", uploaded)
	}
}

func TestSyncer_EmptyQueue(t *testing.T) {
	syncer := backup.NewSyncer(testCipher(t), backup.NewNopLogger())
	uploaded, err := syncer.Run(context.Background(), storage.NewMemoryStorage(), storage.NewMemoryStorage(), nil)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if uploaded != 0 {
		t.Errorf("uploaded = %d, want 0", uploaded)
	}
}
