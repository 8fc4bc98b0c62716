package backup

import "time"

// Storage target types. local_fs and external_ssd are both backed by a local
// directory tree; cloud_115 is a remote backend that is not integrated yet;
// s3 is an S3-compatible object store.
const (
	StorageTypeLocalFS     = "local_fs"
	StorageTypeExternalSSD = "external_ssd"
	StorageTypeCloud115    = "cloud_115"
	StorageTypeS3          = "s3"
)

// Asset kinds.
const (
	AssetKindPhoto          = "photo"
	AssetKindVideo          = "video"
	AssetKindLivePhotoImage = "live_photo_image"
	AssetKindLivePhotoVideo = "live_photo_video"
)

// StorageTarget is a named backup endpoint: a local path, an external drive,
// or a remote cloud, with an at-rest encryption flag.
type StorageTarget struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	BasePath  string `json:"basePath"`
	Encrypted bool   `json:"encrypted"`

	// S3-specific fields, only used when Type == "s3".
	S3Bucket   string `json:"s3Bucket,omitempty"`
	S3Prefix   string `json:"s3Prefix,omitempty"`
	S3Region   string `json:"s3Region,omitempty"`
	S3Endpoint string `json:"s3Endpoint,omitempty"`
}

// BackupJob describes a source→destination copy. Target ids are not validated
// against existing storages at write time.
type BackupJob struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	SourceTargetID      string `json:"sourceTargetId"`
	SourcePath          string `json:"sourcePath"`
	DestinationTargetID string `json:"destinationTargetId"`
	DestinationPath     string `json:"destinationPath"`
	Schedule            string `json:"schedule,omitempty"` // cron expression, unused by this process
	WatchMode           bool   `json:"watchMode"`
	Enabled             bool   `json:"enabled"`
}

// BackupAsset is one tracked photo/video file. Name is the path relative to
// the owning storage target's base. LivePhotoAssetID links the image and video
// halves of one live photo.
type BackupAsset struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Kind             string    `json:"kind"`
	StorageTargetID  string    `json:"storageTargetId"`
	Encrypted        bool      `json:"encrypted"`
	SizeBytes        int64     `json:"sizeBytes"`
	CapturedAt       time.Time `json:"capturedAt"`
	LivePhotoAssetID string    `json:"livePhotoAssetId,omitempty"`
}

// JobRun records one execution of a backup job.
type JobRun struct {
	ID            string    `json:"id"`
	JobID         string    `json:"jobId"`
	StartedAt     time.Time `json:"startedAt"`
	FinishedAt    time.Time `json:"finishedAt"`
	Status        string    `json:"status"` // "ok" or "failed"
	ItemsUploaded int       `json:"itemsUploaded"`
	Error         string    `json:"error,omitempty"`
}

// Settings holds process-wide preferences.
type Settings struct {
	NotificationsEnabled bool   `json:"notificationsEnabled"`
	WebhookURL           string `json:"webhookUrl,omitempty"`
}

// User is an admin-console account. Login/session issuance happens outside
// this core; the records just live in the state document.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"passwordHash"`
}

// Session is a persisted login session owned by the outer auth layer.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// BackupState is the entire entity graph, persisted as one atomically
// replaced JSON document.
type BackupState struct {
	Storages []StorageTarget `json:"storages"`
	Jobs     []BackupJob     `json:"jobs"`
	Assets   []BackupAsset   `json:"assets"`
	JobRuns  []JobRun        `json:"jobRuns"`
	Settings Settings        `json:"settings"`
	Users    []User          `json:"users"`
	Sessions []Session       `json:"sessions"`
}

// NewBackupState returns an all-empty state document.
func NewBackupState() *BackupState {
	s := &BackupState{}
	s.Normalize()
	return s
}

// Normalize replaces nil collections with empty ones so a partially populated
// document always round-trips with every top-level key present. Applied
// uniformly after every parse, not ad hoc per call site.
func (s *BackupState) Normalize() {
	if s.Storages == nil {
		s.Storages = []StorageTarget{}
	}
	if s.Jobs == nil {
		s.Jobs = []BackupJob{}
	}
	if s.Assets == nil {
		s.Assets = []BackupAsset{}
	}
	if s.JobRuns == nil {
		s.JobRuns = []JobRun{}
	}
	if s.Users == nil {
		s.Users = []User{}
	}
	if s.Sessions == nil {
		s.Sessions = []Session{}
	}
}

// FindStorage returns the storage target with the given id, or nil.
func (s *BackupState) FindStorage(id string) *StorageTarget {
	for i := range s.Storages {
		if s.Storages[i].ID == id {
			return &s.Storages[i]
		}
	}
	return nil
}

// FindAsset returns the asset with the given id, or nil.
func (s *BackupState) FindAsset(id string) *BackupAsset {
	for i := range s.Assets {
		if s.Assets[i].ID == id {
			return &s.Assets[i]
		}
	}
	return nil
}
