package storage

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"path"
	"strings"
	"time"

	"childrenlk/internal/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIO stores uploads in an S3-compatible bucket with public read access.
type MinIO struct {
	client     *minio.Client
	bucket     string
	publicBase string
}

// NewMinIO connects to the configured endpoint and makes sure the bucket
// exists.
func NewMinIO(ctx context.Context, cfg *config.Config) (*MinIO, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio: %w", err)
	}

	publicBase := strings.TrimSuffix(cfg.MinioPublicBaseURL, "/")
	if publicBase == "" {
		scheme := "http"
		if cfg.MinioUseSSL {
			scheme = "https"
		}
		publicBase = scheme + "://" + cfg.MinioEndpoint
	}

	m := &MinIO{client: client, bucket: cfg.MinioBucket, publicBase: publicBase}
	if err := m.ensureBucket(ctx); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *MinIO) ensureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("minio bucket check: %w", err)
	}
	if exists {
		return nil
	}
	if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("minio make bucket: %w", err)
	}
	return nil
}

func (m *MinIO) Provider() string { return "minio" }

func (m *MinIO) Upload(ctx context.Context, f File) (*Uploaded, error) {
	if len(f.Data) == 0 {
		return nil, ErrEmptyFile
	}

	contentType := f.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	objectName := ObjectName(f.Folder, contentType)

	_, err := m.client.PutObject(ctx, m.bucket, objectName, bytes.NewReader(f.Data), int64(len(f.Data)),
		minio.PutObjectOptions{
			ContentType: contentType,
			UserMetadata: map[string]string{
				"resource-type": f.ResourceType,
				"uploaded-at":   time.Now().UTC().Format(time.RFC3339),
			},
		})
	if err != nil {
		return nil, fmt.Errorf("minio upload: %w", err)
	}

	return &Uploaded{
		URL:      m.publicBase + "/" + m.bucket + "/" + objectName,
		PublicID: objectName,
	}, nil
}

// ObjectName builds a unique object key under folder with an extension
// derived from contentType.
func ObjectName(folder, contentType string) string {
	ext := ""
	if exts, _ := mime.ExtensionsByType(contentType); len(exts) > 0 {
		ext = exts[0]
	}
	name := uuid.New().String() + ext
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return name
	}
	return path.Join(folder, name)
}
