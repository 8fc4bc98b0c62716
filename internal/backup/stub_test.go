package backup_test

import (
	"context"
	"fmt"

	"photosafe/internal/backup"
)

// stubFactory maps storage target ids to pre-built adapters.
type stubFactory struct {
	byID map[string]backup.Storage
}

var _ backup.StorageFactory = stubFactory{}

func (f stubFactory) ForTarget(target backup.StorageTarget) (backup.Storage, error) {
	s, ok := f.byID[target.ID]
	if !ok {
		return nil, fmt.Errorf("no stub adapter for target %s", target.ID)
	}
	return s, nil
}

// faultyStorage wraps another adapter and fails reads or writes on chosen
// paths.
type faultyStorage struct {
	backup.Storage
	failRead  map[string]bool
	failWrite map[string]bool
}

func (f *faultyStorage) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if f.failRead[path] {
		return nil, fmt.Errorf("injected read failure: %s", path)
	}
	return f.Storage.ReadFile(ctx, path)
}

func (f *faultyStorage) WriteFile(ctx context.Context, path string, data []byte) error {
	if f.failWrite[path] {
		return fmt.Errorf("injected write failure: %s", path)
	}
	return f.Storage.WriteFile(ctx, path, data)
}
