package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"photosafe/internal/backup"
)

// S3Storage serves a bucket/prefix on an S3-compatible object store. Keys
// are the adapter-relative paths joined onto the prefix.
type S3Storage struct {
	client   *s3.Client
	uploader *manager.Uploader
	bucket   string
	prefix   string
}

var _ backup.Storage = (*S3Storage)(nil)

// NewS3Storage builds an S3 adapter. endpoint may be empty for AWS proper;
// when set, path-style addressing is used and static credentials are taken
// from the environment if present.
func NewS3Storage(ctx context.Context, bucket, prefix, region, endpoint string) (*S3Storage, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	if endpoint != "" {
		if accessKey := os.Getenv("AWS_ACCESS_KEY_ID"); accessKey != "" {
			if secretKey := os.Getenv("AWS_SECRET_ACCESS_KEY"); secretKey != "" {
				cfg.Credentials = credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")
			}
		}
	}

	var client *s3.Client
	if endpoint != "" {
		client = s3.NewFromConfig(cfg, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		})
	} else {
		client = s3.NewFromConfig(cfg)
	}

	return &S3Storage{
		client:   client,
		uploader: manager.NewUploader(client),
		bucket:   bucket,
		prefix:   prefix,
	}, nil
}

// key joins the adapter-relative path onto the configured prefix.
func (s *S3Storage) key(p string) string {
	return path.Join(s.prefix, p)
}

// ListFiles enumerates objects under prefix.
func (s *S3Storage) ListFiles(ctx context.Context, prefix string) ([]backup.FileInfo, error) {
	listPrefix := s.key(prefix)
	if listPrefix != "" {
		listPrefix += "/"
	}

	files := []backup.FileInfo{}
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(listPrefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing objects under %s: %w", prefix, err)
		}
		for _, obj := range page.Contents {
			info := backup.FileInfo{Path: aws.ToString(obj.Key)}
			if obj.Size != nil {
				info.Size = *obj.Size
			}
			if obj.LastModified != nil {
				info.ModifiedAt = *obj.LastModified
			}
			files = append(files, info)
		}
	}
	return files, nil
}

// ReadFile downloads the object at path.
func (s *S3Storage) ReadFile(ctx context.Context, p string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(p)),
	})
	if err != nil {
		return nil, fmt.Errorf("getting object %s: %w", p, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("reading object %s: %w", p, err)
	}
	return data, nil
}

// WriteFile uploads data to path.
func (s *S3Storage) WriteFile(ctx context.Context, p string, data []byte) error {
	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(p)),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return fmt.Errorf("uploading object %s: %w", p, err)
	}
	return nil
}

// EnsureDir is a no-op: object stores have no directory concept.
func (*S3Storage) EnsureDir(context.Context, string) error { return nil }
