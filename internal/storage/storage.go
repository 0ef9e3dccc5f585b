// Package storage forwards uploaded files to an external media host.
package storage

import (
	"context"
	"errors"
	"fmt"

	"childrenlk/internal/config"
)

// File is a decoded upload.
type File struct {
	Data        []byte
	ContentType string
	// Folder groups uploads on the host, e.g. "resources".
	Folder string
	// ResourceType is the host hint: image, video, raw or auto.
	ResourceType string
}

// Uploaded identifies a stored file.
type Uploaded struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

// MediaHost stores files and returns a stable URL and host identifier.
type MediaHost interface {
	Upload(ctx context.Context, f File) (*Uploaded, error)
	Provider() string
}

// ErrEmptyFile is returned when an upload carries no bytes.
var ErrEmptyFile = errors.New("storage: empty file")

// New builds the media host selected by cfg.MediaProvider.
func New(ctx context.Context, cfg *config.Config) (MediaHost, error) {
	switch cfg.MediaProvider {
	case "cloudinary":
		return NewCloudinary(cfg)
	case "minio":
		return NewMinIO(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported media provider %q", cfg.MediaProvider)
	}
}
