package backup

import (
	"context"
	"fmt"
	"path/filepath"
)

// Service is the orchestration layer over the state document and the storage
// adapters. Every mutation is a load→mutate→save of the whole document; the
// deployment is single-writer, so no lock is taken around the sequence (two
// concurrent writers could lose an update).
type Service struct {
	state      StateStore
	storages   StorageFactory
	syncer     *Syncer
	browseRoot string
	logger     Logger
	clock      Clock
	idgen      IDGenerator
}

// NewService wires a Service.
func NewService(state StateStore, storages StorageFactory, syncer *Syncer, browseRoot string, logger Logger, clock Clock, idgen IDGenerator) *Service {
	return &Service{
		state:      state,
		storages:   storages,
		syncer:     syncer,
		browseRoot: browseRoot,
		logger:     logger,
		clock:      clock,
		idgen:      idgen,
	}
}

// ListStorages returns all configured storage targets.
func (s *Service) ListStorages() ([]StorageTarget, error) {
	state, err := s.state.Load()
	if err != nil {
		return nil, fmt.Errorf("loading state: %w", err)
	}
	return state.Storages, nil
}

// CreateStorage registers a new storage target and returns it with its
// assigned id. For local types the base path is resolved to absolute form.
func (s *Service) CreateStorage(target StorageTarget) (*StorageTarget, error) {
	if isLocalType(target.Type) {
		abs, err := filepath.Abs(target.BasePath)
		if err != nil {
			return nil, fmt.Errorf("resolving base path: %w", err)
		}
		target.BasePath = abs
	}
	target.ID = s.idgen.New()

	state, err := s.state.Load()
	if err != nil {
		return nil, fmt.Errorf("loading state: %w", err)
	}
	state.Storages = append(state.Storages, target)
	if err := s.state.Save(state); err != nil {
		return nil, fmt.Errorf("saving state: %w", err)
	}

	s.logger.Info("storage target created", "id", target.ID, "type", target.Type, "name", target.Name)
	return &target, nil
}

// DeleteStorage removes a storage target by id.
func (s *Service) DeleteStorage(id string) error {
	state, err := s.state.Load()
	if err != nil {
		return fmt.Errorf("loading state: %w", err)
	}

	kept := state.Storages[:0]
	found := false
	for _, t := range state.Storages {
		if t.ID == id {
			found = true
			continue
		}
		kept = append(kept, t)
	}
	if !found {
		return ErrStorageNotFound
	}
	state.Storages = kept

	if err := s.state.Save(state); err != nil {
		return fmt.Errorf("saving state: %w", err)
	}
	s.logger.Info("storage target deleted", "id", id)
	return nil
}

// ListJobs returns all backup jobs.
func (s *Service) ListJobs() ([]BackupJob, error) {
	state, err := s.state.Load()
	if err != nil {
		return nil, fmt.Errorf("loading state: %w", err)
	}
	return state.Jobs, nil
}

// CreateJob registers a new backup job. Source and destination target ids
// are not validated here; a job may reference a target created later.
func (s *Service) CreateJob(job BackupJob) (*BackupJob, error) {
	job.ID = s.idgen.New()

	state, err := s.state.Load()
	if err != nil {
		return nil, fmt.Errorf("loading state: %w", err)
	}
	state.Jobs = append(state.Jobs, job)
	if err := s.state.Save(state); err != nil {
		return nil, fmt.Errorf("saving state: %w", err)
	}

	s.logger.Info("backup job created", "id", job.ID, "name", job.Name)
	return &job, nil
}

// DeleteJob removes a backup job by id.
func (s *Service) DeleteJob(id string) error {
	state, err := s.state.Load()
	if err != nil {
		return fmt.Errorf("loading state: %w", err)
	}

	kept := state.Jobs[:0]
	found := false
	for _, j := range state.Jobs {
		if j.ID == id {
			found = true
			continue
		}
		kept = append(kept, j)
	}
	if !found {
		return ErrJobNotFound
	}
	state.Jobs = kept

	if err := s.state.Save(state); err != nil {
		return fmt.Errorf("saving state: %w", err)
	}
	s.logger.Info("backup job deleted", "id", id)
	return nil
}

// ListAssets returns all tracked assets.
func (s *Service) ListAssets() ([]BackupAsset, error) {
	state, err := s.state.Load()
	if err != nil {
		return nil, fmt.Errorf("loading state: %w", err)
	}
	return state.Assets, nil
}

// CreateAsset registers a new backup asset.
func (s *Service) CreateAsset(asset BackupAsset) (*BackupAsset, error) {
	if asset.SizeBytes < 0 {
		return nil, fmt.Errorf("asset size must be non-negative, got %d", asset.SizeBytes)
	}
	asset.ID = s.idgen.New()

	state, err := s.state.Load()
	if err != nil {
		return nil, fmt.Errorf("loading state: %w", err)
	}
	state.Assets = append(state.Assets, asset)
	if err := s.state.Save(state); err != nil {
		return nil, fmt.Errorf("saving state: %w", err)
	}

	s.logger.Info("asset created", "id", asset.ID, "name", asset.Name, "kind", asset.Kind)
	return &asset, nil
}

// DeleteAsset removes an asset by id.
func (s *Service) DeleteAsset(id string) error {
	state, err := s.state.Load()
	if err != nil {
		return fmt.Errorf("loading state: %w", err)
	}

	kept := state.Assets[:0]
	found := false
	for _, a := range state.Assets {
		if a.ID == id {
			found = true
			continue
		}
		kept = append(kept, a)
	}
	if !found {
		return ErrAssetNotFound
	}
	state.Assets = kept

	if err := s.state.Save(state); err != nil {
		return fmt.Errorf("saving state: %w", err)
	}
	s.logger.Info("asset deleted", "id", id)
	return nil
}

// ListJobRuns returns the recorded job-run history.
func (s *Service) ListJobRuns() ([]JobRun, error) {
	state, err := s.state.Load()
	if err != nil {
		return nil, fmt.Errorf("loading state: %w", err)
	}
	return state.JobRuns, nil
}

// RunSync executes an explicit-item backup run from one storage target to
// another and appends a JobRun to the history. jobID may be empty for ad-hoc
// runs. Returns the count of items uploaded; on failure the count covers
// only fully completed items.
func (s *Service) RunSync(ctx context.Context, sourceTargetID, destinationTargetID, jobID string, items []SyncItem) (int, error) {
	state, err := s.state.Load()
	if err != nil {
		return 0, fmt.Errorf("loading state: %w", err)
	}

	source := state.FindStorage(sourceTargetID)
	if source == nil {
		return 0, fmt.Errorf("source: %w", ErrStorageNotFound)
	}
	destination := state.FindStorage(destinationTargetID)
	if destination == nil {
		return 0, fmt.Errorf("destination: %w", ErrStorageNotFound)
	}

	src, err := s.storages.ForTarget(*source)
	if err != nil {
		return 0, fmt.Errorf("creating source adapter: %w", err)
	}
	dst, err := s.storages.ForTarget(*destination)
	if err != nil {
		return 0, fmt.Errorf("creating destination adapter: %w", err)
	}

	startedAt := s.clock.Now()
	uploaded, runErr := s.syncer.Run(ctx, src, dst, items)

	run := JobRun{
		ID:            s.idgen.New(),
		JobID:         jobID,
		StartedAt:     startedAt,
		FinishedAt:    s.clock.Now(),
		Status:        "ok",
		ItemsUploaded: uploaded,
	}
	if runErr != nil {
		run.Status = "failed"
		run.Error = runErr.Error()
	}
	s.appendJobRun(run)

	return uploaded, runErr
}

// appendJobRun records a run in the state document. History is best effort:
// a failed save is logged, not propagated, so it never masks a sync error.
func (s *Service) appendJobRun(run JobRun) {
	state, err := s.state.Load()
	if err != nil {
		s.logger.Error("loading state for job run", "error", err)
		return
	}
	state.JobRuns = append(state.JobRuns, run)
	if err := s.state.Save(state); err != nil {
		s.logger.Error("recording job run", "error", err)
	}
}

func isLocalType(storageType string) bool {
	return storageType == StorageTypeLocalFS || storageType == StorageTypeExternalSSD
}
