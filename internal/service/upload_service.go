package service

import (
	"context"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"childrenlk/internal/middleware"
	"childrenlk/internal/models"
	"childrenlk/internal/observability"
	"childrenlk/internal/storage"
	"childrenlk/internal/validation"
)

// UploadService forwards base64 uploads to the media host.
type UploadService struct {
	host storage.MediaHost
}

// NewUploadService returns a new UploadService.
func NewUploadService(host storage.MediaHost) *UploadService {
	return &UploadService{host: host}
}

// Upload decodes in.File, a data URI or bare base64 string, and stores it.
// A failed host call is not retried.
func (s *UploadService) Upload(ctx context.Context, actor models.Actor, in validation.UploadInput) (*storage.Uploaded, error) {
	if actor.UserID == 0 {
		return nil, models.NewUnauthorizedError("Authentication required")
	}

	data, contentType, err := DecodeFile(in.File)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	res, err := s.host.Upload(ctx, storage.File{
		Data:         data,
		ContentType:  contentType,
		Folder:       strings.Trim(strings.TrimSpace(in.Folder), "/"),
		ResourceType: in.ResourceType,
	})
	observability.ObserveUpload(s.host.Provider(), start, err)
	if err != nil {
		if errors.Is(err, storage.ErrEmptyFile) {
			return nil, models.NewValidationError("file is empty")
		}
		middleware.Logger.ErrorContext(ctx, "media upload failed",
			slog.String("provider", s.host.Provider()),
			slog.Int("bytes", len(data)),
			slog.String("error", err.Error()),
		)
		return nil, models.NewInternalError(err)
	}
	return res, nil
}

// DecodeFile accepts "data:<mime>;base64,<payload>" or plain base64. The
// content type is taken from the data URI, else sniffed.
func DecodeFile(raw string) ([]byte, string, error) {
	raw = strings.TrimSpace(raw)
	contentType := ""
	if strings.HasPrefix(raw, "data:") {
		meta, payload, ok := strings.Cut(raw[len("data:"):], ",")
		if !ok || !strings.HasSuffix(meta, ";base64") {
			return nil, "", models.NewValidationError("file must be base64 encoded")
		}
		contentType = strings.TrimSuffix(meta, ";base64")
		raw = payload
	}

	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(raw)
	}
	if err != nil {
		return nil, "", models.NewValidationError("file must be base64 encoded")
	}
	if len(data) == 0 {
		return nil, "", models.NewValidationError("file is empty")
	}
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return data, contentType, nil
}
