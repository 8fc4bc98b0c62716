// Package server is the thin HTTP layer over the backup core. Handlers
// validate little, delegate everything, and map core denials onto status
// codes; the real invariants live in internal/backup.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"photosafe/internal/backup"
)

// Server exposes the core's external interface over HTTP.
type Server struct {
	service *backup.Service
	preview *backup.PreviewService
	cipher  backup.Cipher
	logger  backup.Logger
}

// New creates a Server.
func New(service *backup.Service, preview *backup.PreviewService, cipher backup.Cipher, logger backup.Logger) *Server {
	return &Server{
		service: service,
		preview: preview,
		cipher:  cipher,
		logger:  logger,
	}
}

// Router builds the chi router with all API routes mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/storages", s.handleListStorages)
		r.Post("/storages", s.handleCreateStorage)
		r.Delete("/storages/{id}", s.handleDeleteStorage)
		r.Get("/storages/{id}/browse", s.handleBrowseStorage)

		r.Get("/jobs", s.handleListJobs)
		r.Post("/jobs", s.handleCreateJob)
		r.Delete("/jobs/{id}", s.handleDeleteJob)

		r.Get("/assets", s.handleListAssets)
		r.Post("/assets", s.handleCreateAsset)
		r.Delete("/assets/{id}", s.handleDeleteAsset)
		r.Post("/assets/{id}/preview-token", s.handleIssuePreviewToken)

		r.Post("/preview", s.handleRedeemPreviewToken)
		r.Get("/preview/stream", s.handlePreviewStream)

		r.Get("/runs", s.handleListJobRuns)
		r.Post("/sync", s.handleRunSync)

		r.Get("/browse", s.handleBrowseFilesystem)
		r.Post("/encrypt", s.handleEncrypt)
	})

	return r
}
