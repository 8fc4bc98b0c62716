package backup

// Cipher is authenticated symmetric encryption of opaque byte payloads under
// one long-lived master key. Encrypt returns a self-contained envelope;
// Decrypt splits it back apart and fails on any tampering. A failed
// authentication check must abort the calling operation outright, never
// downgraded or retried.
type Cipher interface {
	Encrypt(plaintext []byte) ([]byte, error)
	Decrypt(envelope []byte) ([]byte, error)
}

// StorageFactory builds a Storage adapter for a configured target.
type StorageFactory interface {
	ForTarget(target StorageTarget) (Storage, error)
}
