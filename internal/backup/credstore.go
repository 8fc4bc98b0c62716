package backup

import (
	"sync"
	"time"
)

// credential is one single-use, time-boxed preview credential bound to an
// asset.
type credential struct {
	assetID   string
	expiresAt time.Time
}

// credentialStore is an in-memory key-value store with single-use expiry
// semantics. It is process-local and intentionally not persisted: no preview
// session should outlive a process lifecycle.
//
// The check and the delete happen under one lock so two concurrent
// redemptions of the same credential can never both succeed. Expiry is
// evaluated lazily on take; expired entries that are never looked up stay in
// the map until process exit, which is harmless since they can never be
// redeemed.
type credentialStore struct {
	mu    sync.Mutex
	creds map[string]credential
}

func newCredentialStore() *credentialStore {
	return &credentialStore{creds: map[string]credential{}}
}

// put records a credential for assetID under id.
func (s *credentialStore) put(id, assetID string, expiresAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds[id] = credential{assetID: assetID, expiresAt: expiresAt}
}

// take consumes the credential under id. The entry is removed on first
// lookup regardless of validity; ok is true only when the credential existed,
// is bound to assetID, and has not passed its deadline.
func (s *credentialStore) take(id, assetID string, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, found := s.creds[id]
	if !found {
		return false
	}
	delete(s.creds, id)

	if c.assetID != assetID {
		return false
	}
	return !now.After(c.expiresAt)
}

// len reports the number of live entries. Used by tests.
func (s *credentialStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.creds)
}
