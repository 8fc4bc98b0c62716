package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"photosafe/internal/backup"
)

func (s *Server) handleListStorages(w http.ResponseWriter, r *http.Request) {
	storages, err := s.service.ListStorages()
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, storages)
}

func (s *Server) handleCreateStorage(w http.ResponseWriter, r *http.Request) {
	var target backup.StorageTarget
	if err := json.NewDecoder(r.Body).Decode(&target); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := s.service.CreateStorage(target)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleDeleteStorage(w http.ResponseWriter, r *http.Request) {
	if err := s.service.DeleteStorage(chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleBrowseStorage(w http.ResponseWriter, r *http.Request) {
	listing, err := s.service.BrowseStorage(r.Context(), chi.URLParam(r, "id"), r.URL.Query().Get("path"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listing)
}

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.service.ListJobs()
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jobs)
}

func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var job backup.BackupJob
	if err := json.NewDecoder(r.Body).Decode(&job); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := s.service.CreateJob(job)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	if err := s.service.DeleteJob(chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListAssets(w http.ResponseWriter, r *http.Request) {
	assets, err := s.service.ListAssets()
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, assets)
}

func (s *Server) handleCreateAsset(w http.ResponseWriter, r *http.Request) {
	var asset backup.BackupAsset
	if err := json.NewDecoder(r.Body).Decode(&asset); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := s.service.CreateAsset(asset)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleDeleteAsset(w http.ResponseWriter, r *http.Request) {
	if err := s.service.DeleteAsset(chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleIssuePreviewToken(w http.ResponseWriter, r *http.Request) {
	grant, err := s.preview.IssueToken(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, grant)
}

func (s *Server) handleRedeemPreviewToken(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	descriptor, err := s.preview.RedeemToken(q.Get("token"), q.Get("asset"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, descriptor)
}

func (s *Server) handlePreviewStream(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	stream, err := s.preview.OpenStream(r.Context(), q.Get("ticket"), q.Get("asset"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	defer stream.Reader.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	if _, err := io.Copy(w, stream.Reader); err != nil {
		s.logger.Error("streaming preview", "asset", stream.Asset.ID, "error", err)
	}
}

func (s *Server) handleListJobRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := s.service.ListJobRuns()
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

type syncRequest struct {
	SourceTargetID      string            `json:"sourceTargetId"`
	DestinationTargetID string            `json:"destinationTargetId"`
	JobID               string            `json:"jobId,omitempty"`
	Items               []backup.SyncItem `json:"items"`
}

type syncResponse struct {
	ItemsUploaded int `json:"itemsUploaded"`
}

func (s *Server) handleRunSync(w http.ResponseWriter, r *http.Request) {
	var req syncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	uploaded, err := s.service.RunSync(r.Context(), req.SourceTargetID, req.DestinationTargetID, req.JobID, req.Items)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, syncResponse{ItemsUploaded: uploaded})
}

func (s *Server) handleBrowseFilesystem(w http.ResponseWriter, r *http.Request) {
	listing, err := s.service.BrowseFilesystem(r.URL.Query().Get("path"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listing)
}

// handleEncrypt seals an arbitrary byte blob. Exposed standalone for ad-hoc
// testing of the envelope format.
func (s *Server) handleEncrypt(w http.ResponseWriter, r *http.Request) {
	plaintext, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "reading request body failed")
		return
	}

	envelope, err := s.cipher.Encrypt(plaintext)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(envelope); err != nil {
		s.logger.Error("writing envelope response", "error", err)
	}
}

// writeError maps core denials onto status codes. Confinement violations and
// credential denials are denials, not crashes; anything unrecognized is a 500.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, backup.ErrPathOutsideStorage),
		errors.Is(err, backup.ErrPathOutsideBrowseRoot):
		writeJSONError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, backup.ErrTokenInvalidOrExpired):
		writeJSONError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, backup.ErrStorageNotFound),
		errors.Is(err, backup.ErrAssetNotFound),
		errors.Is(err, backup.ErrJobNotFound):
		writeJSONError(w, http.StatusNotFound, err.Error())
	case backup.IsNotImplemented(err):
		writeJSONError(w, http.StatusNotImplemented, err.Error())
	default:
		s.logger.Error("request failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
