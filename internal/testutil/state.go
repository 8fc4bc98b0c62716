package testutil

import (
	"encoding/json"
	"sync"

	"photosafe/internal/backup"
)

// MemoryStateStore keeps the state document in memory. Load returns a deep
// copy so mutations only land through Save, mirroring the file-backed store.
type MemoryStateStore struct {
	mu    sync.Mutex
	state *backup.BackupState
}

var _ backup.StateStore = (*MemoryStateStore)(nil)

// NewMemoryStateStore creates a store holding the given initial state.
// A nil initial state starts empty.
func NewMemoryStateStore(initial *backup.BackupState) *MemoryStateStore {
	if initial == nil {
		initial = backup.NewBackupState()
	}
	initial.Normalize()
	return &MemoryStateStore{state: initial}
}

func (m *MemoryStateStore) Load() (*backup.BackupState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return deepCopy(m.state)
}

func (m *MemoryStateStore) Save(state *backup.BackupState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied, err := deepCopy(state)
	if err != nil {
		return err
	}
	m.state = copied
	return nil
}

func deepCopy(state *backup.BackupState) (*backup.BackupState, error) {
	data, err := json.Marshal(state)
	if err != nil {
		return nil, err
	}
	var out backup.BackupState
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	out.Normalize()
	return &out, nil
}
