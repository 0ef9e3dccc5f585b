package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"childrenlk/internal/config"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Cloudinary uploads through the Cloudinary upload API.
type Cloudinary struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinary creates a client from CLOUDINARY_URL, falling back to the
// individual credential settings.
func NewCloudinary(cfg *config.Config) (*Cloudinary, error) {
	var (
		cld *cloudinary.Cloudinary
		err error
	)
	if cfg.CloudinaryURL != "" {
		cld, err = cloudinary.NewFromURL(cfg.CloudinaryURL)
	} else {
		cld, err = cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	}
	if err != nil {
		return nil, fmt.Errorf("cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true
	return &Cloudinary{cld: cld}, nil
}

func (c *Cloudinary) Provider() string { return "cloudinary" }

func (c *Cloudinary) Upload(ctx context.Context, f File) (*Uploaded, error) {
	if len(f.Data) == 0 {
		return nil, ErrEmptyFile
	}
	resourceType := f.ResourceType
	if resourceType == "" {
		resourceType = "auto"
	}

	res, err := c.cld.Upload.Upload(ctx, bytes.NewReader(f.Data), uploader.UploadParams{
		Folder:       f.Folder,
		ResourceType: resourceType,
	})
	if err != nil {
		return nil, fmt.Errorf("cloudinary upload: %w", err)
	}
	if res.Error.Message != "" {
		return nil, errors.New("cloudinary upload: " + res.Error.Message)
	}

	url := res.SecureURL
	if url == "" {
		url = res.URL
	}
	return &Uploaded{URL: url, PublicID: res.PublicID}, nil
}
