package storage

import (
	"context"
	"fmt"

	"photosafe/internal/backup"
)

// Factory builds Storage adapters from storage target records.
type Factory struct{}

var _ backup.StorageFactory = (*Factory)(nil)

// NewFactory creates the default adapter factory.
func NewFactory() *Factory { return &Factory{} }

// ForTarget returns the adapter matching the target's type. local_fs and
// external_ssd both map onto the local directory adapter; cloud_115 gets the
// fail-fast placeholder until the integration lands.
func (f *Factory) ForTarget(target backup.StorageTarget) (backup.Storage, error) {
	switch target.Type {
	case backup.StorageTypeLocalFS, backup.StorageTypeExternalSSD:
		if target.BasePath == "" {
			return nil, fmt.Errorf("storage %s requires a base path", target.ID)
		}
		return NewLocalStorage(target.BasePath), nil
	case backup.StorageTypeCloud115:
		return NewCloud115Storage(), nil
	case backup.StorageTypeS3:
		if target.S3Bucket == "" {
			return nil, fmt.Errorf("storage %s requires an s3 bucket", target.ID)
		}
		return NewS3Storage(context.Background(), target.S3Bucket, target.S3Prefix, target.S3Region, target.S3Endpoint)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", target.Type)
	}
}
