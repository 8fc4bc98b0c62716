// Package crypto implements the envelope encryption used for assets at
// rest: AES-256-GCM with a self-contained byte layout of
// nonce[12] || tag[16] || ciphertext.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"photosafe/internal/backup"
)

const (
	// KeySize is the only accepted master key length (AES-256).
	KeySize = 32

	nonceSize = 12
	tagSize   = 16
	headerLen = nonceSize + tagSize
)

var (
	// ErrInvalidKeyLength means the master key did not decode to exactly
	// 32 bytes. This is a startup-fatal misconfiguration.
	ErrInvalidKeyLength = errors.New("master key must be exactly 32 bytes")

	// ErrAuthenticationFailed means an envelope was malformed, truncated,
	// or failed its authentication check. Never retried, never swallowed.
	ErrAuthenticationFailed = errors.New("envelope authentication failed")
)

// Cipher encrypts and decrypts byte payloads under one long-lived key.
// No key rotation or derivation happens here; the key is supplied whole by
// configuration.
type Cipher struct {
	aead cipher.AEAD
}

var _ backup.Cipher = (*Cipher)(nil)

// NewCipher builds a Cipher from a 32-byte key.
func NewCipher(key []byte) (*Cipher, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKeyLength
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("creating AES cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("creating GCM: %w", err)
	}

	return &Cipher{aead: aead}, nil
}

// Encrypt seals plaintext into an envelope. A fresh random nonce is drawn on
// every call; nonce reuse under the same key would break the scheme, so the
// nonce is never caller-supplied.
func (c *Cipher) Encrypt(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, nonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generating nonce: %w", err)
	}

	// Seal appends the tag to the ciphertext; the envelope wants it up
	// front, right after the nonce.
	sealed := c.aead.Seal(nil, nonce, plaintext, nil)
	ciphertext := sealed[:len(sealed)-tagSize]
	tag := sealed[len(sealed)-tagSize:]

	envelope := make([]byte, 0, headerLen+len(ciphertext))
	envelope = append(envelope, nonce...)
	envelope = append(envelope, tag...)
	envelope = append(envelope, ciphertext...)
	return envelope, nil
}

// Decrypt splits an envelope at its fixed offsets and opens it. Any
// malformed or tampered envelope fails with ErrAuthenticationFailed.
func (c *Cipher) Decrypt(envelope []byte) ([]byte, error) {
	if len(envelope) < headerLen {
		return nil, ErrAuthenticationFailed
	}

	nonce := envelope[:nonceSize]
	tag := envelope[nonceSize:headerLen]
	ciphertext := envelope[headerLen:]

	sealed := make([]byte, 0, len(ciphertext)+tagSize)
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, ErrAuthenticationFailed
	}
	return plaintext, nil
}
