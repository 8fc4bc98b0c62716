// Package app wires the photosafe process together from configuration.
package app

import (
	"fmt"
	"net/http"
	"os"

	"photosafe/internal/backup"
	"photosafe/internal/config"
	"photosafe/internal/crypto"
	"photosafe/internal/server"
	"photosafe/internal/state"
	"photosafe/internal/storage"
)

// App holds the fully constructed service graph. The caller must call Close
// when done.
type App struct {
	cfg     *config.Config
	service *backup.Service
	preview *backup.PreviewService
	server  *server.Server
	logger  backup.Logger
	logFile *os.File
}

// New builds an App from config. The passphrase unlocks the master key file
// when the config uses one; a bad key length is startup-fatal.
func New(cfg *config.Config, passphrase string) (*App, error) {
	logger, logFile, err := newLogger(cfg.LogDir)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	key, err := cfg.MasterKey(passphrase)
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("resolving master key: %w", err)
	}

	cipher, err := crypto.NewCipher(key)
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("creating cipher: %w", err)
	}

	stateStore := state.NewFileStore(cfg.StatePath, logger)
	storages := storage.NewFactory()
	syncer := backup.NewSyncer(cipher, logger)

	service := backup.NewService(stateStore, storages, syncer, cfg.BrowseRoot, logger, backup.RealClock{}, backup.UUIDGenerator{})
	preview := backup.NewPreviewService(stateStore, storages, cipher, logger, backup.RealClock{}, backup.UUIDGenerator{})
	srv := server.New(service, preview, cipher, logger)

	return &App{
		cfg:     cfg,
		service: service,
		preview: preview,
		server:  srv,
		logger:  logger,
		logFile: logFile,
	}, nil
}

// ListenAndServe runs the HTTP server until it fails.
func (a *App) ListenAndServe() error {
	a.logger.Info("server listening", "addr", a.cfg.ListenAddr)
	return http.ListenAndServe(a.cfg.ListenAddr, a.server.Router())
}

// Close releases process resources.
func (a *App) Close() error {
	if a.logFile != nil {
		return a.logFile.Close()
	}
	return nil
}
