// Package config reads the photosafe TOML configuration.
package config

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"photosafe/internal/crypto"
)

// Config is the main configuration for photosafe.
type Config struct {
	ListenAddr string `toml:"listen_addr"`
	BrowseRoot string `toml:"browse_root"`
	StatePath  string `toml:"state_path"`
	LogDir     string `toml:"log_dir"`

	// Exactly one of the two key sources must be set. master_key_hex is a
	// hex-encoded 32-byte key, convenient for development; master_key_path
	// points to an age passphrase-encrypted key file (see `photosafe keys init`).
	MasterKeyHex  string `toml:"master_key_hex,omitempty"`
	MasterKeyPath string `toml:"master_key_path,omitempty"`
}

// NewConfig creates a Config with defaults rooted at baseDir.
func NewConfig(baseDir string) *Config {
	return &Config{
		ListenAddr:    ":8080",
		BrowseRoot:    filepath.Join(baseDir, "media"),
		StatePath:     filepath.Join(baseDir, "state", "backup-state.json"),
		LogDir:        filepath.Join(baseDir, "log"),
		MasterKeyPath: filepath.Join(baseDir, "keys", "master.key.age"),
	}
}

// MasterKey resolves the 32-byte master key from the configured source.
// passphrase is only consulted for the key-file source.
func (c *Config) MasterKey(passphrase string) ([]byte, error) {
	switch {
	case c.MasterKeyHex != "":
		key, err := hex.DecodeString(c.MasterKeyHex)
		if err != nil {
			return nil, fmt.Errorf("decoding master_key_hex: %w", err)
		}
		if len(key) != crypto.KeySize {
			return nil, crypto.ErrInvalidKeyLength
		}
		return key, nil
	case c.MasterKeyPath != "":
		return crypto.UnlockKeyFile(c.MasterKeyPath, passphrase)
	default:
		return nil, fmt.Errorf("no master key configured: set master_key_hex or master_key_path")
	}
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

// writeToFile writes a Config to the specified file path.
func writeToFile(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init initializes a new config file at the specified path.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
