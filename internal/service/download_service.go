package service

import (
	"context"

	"childrenlk/internal/models"
	"childrenlk/internal/observability"
	"childrenlk/internal/repository"
	"childrenlk/internal/validation"
)

// DownloadService counts document downloads of published resources.
type DownloadService struct {
	publishedRepo repository.PublishedRepository
	downloadRepo  repository.DownloadRepository
}

// NewDownloadService returns a new DownloadService.
func NewDownloadService(publishedRepo repository.PublishedRepository, downloadRepo repository.DownloadRepository) *DownloadService {
	return &DownloadService{publishedRepo: publishedRepo, downloadRepo: downloadRepo}
}

// DownloadCount is the counter value after a recorded download.
type DownloadCount struct {
	ResourceID       uint   `json:"resourceId"`
	DocumentPublicID string `json:"documentPublicId"`
	Count            int64  `json:"count"`
}

// Record increments the counter of a document that belongs to a published
// resource.
func (s *DownloadService) Record(ctx context.Context, in validation.DownloadInput) (*DownloadCount, error) {
	res, err := s.publishedRepo.GetResource(ctx, in.ResourceID)
	if err != nil {
		return nil, err
	}
	if !res.HasDocument(in.DocumentPublicID) {
		return nil, models.NewNotFoundError("Document", in.DocumentPublicID)
	}

	n, err := s.downloadRepo.Increment(ctx, res.ID, in.DocumentPublicID)
	if err != nil {
		return nil, err
	}
	observability.DownloadsRecorded.Inc()
	return &DownloadCount{ResourceID: res.ID, DocumentPublicID: in.DocumentPublicID, Count: n}, nil
}

// ForResource lists the per-document counters of a resource.
func (s *DownloadService) ForResource(ctx context.Context, actor models.Actor, resourceID uint) ([]models.DocumentDownloadCount, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if _, err := s.publishedRepo.GetResource(ctx, resourceID); err != nil {
		return nil, err
	}
	return s.downloadRepo.ListForResource(ctx, resourceID)
}
