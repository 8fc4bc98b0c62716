package crypto

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"filippo.io/age"
)

// Master key file handling. The 32-byte key is generated once and stored on
// disk encrypted with an age scrypt recipient, so the passphrase is the only
// secret a user has to remember. The decrypted key is held in memory only.

// GenerateKeyFile creates a fresh random master key, encrypts it with the
// passphrase, and writes it to path. Fails if the file already exists.
func GenerateKeyFile(path, passphrase string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("key file already exists at %s", path)
	}

	key := make([]byte, KeySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return fmt.Errorf("generating master key: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating key directory: %w", err)
	}

	recipient, err := age.NewScryptRecipient(passphrase)
	if err != nil {
		return fmt.Errorf("creating scrypt recipient: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("creating key file: %w", err)
	}
	defer f.Close()

	w, err := age.Encrypt(f, recipient)
	if err != nil {
		return fmt.Errorf("creating encrypted writer: %w", err)
	}
	if _, err := w.Write(key); err != nil {
		return fmt.Errorf("writing encrypted key: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalizing encrypted key: %w", err)
	}

	return nil
}

// UnlockKeyFile decrypts the master key at path using the passphrase.
// Returns an error if the passphrase is wrong or the file does not hold
// exactly 32 bytes.
func UnlockKeyFile(path, passphrase string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading key file: %w", err)
	}

	identity, err := age.NewScryptIdentity(passphrase)
	if err != nil {
		return nil, fmt.Errorf("creating scrypt identity: %w", err)
	}

	r, err := age.Decrypt(bytes.NewReader(data), identity)
	if err != nil {
		return nil, fmt.Errorf("decrypting key file: %w", err)
	}

	key, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading decrypted key: %w", err)
	}

	if len(key) != KeySize {
		return nil, ErrInvalidKeyLength
	}
	return key, nil
}
