package service

import (
	"context"

	"childrenlk/internal/models"
	"childrenlk/internal/repository"
)

// CatalogService serves published entities to parents and lets admins
// withdraw them.
type CatalogService struct {
	publishedRepo repository.PublishedRepository
}

// NewCatalogService returns a new CatalogService.
func NewCatalogService(publishedRepo repository.PublishedRepository) *CatalogService {
	return &CatalogService{publishedRepo: publishedRepo}
}

// List returns published entities of kind matching filter.
func (s *CatalogService) List(ctx context.Context, kind models.RequestKind, filter repository.PublicFilter) (any, int64, error) {
	if filter.TargetAudience != "" && !filter.TargetAudience.Valid() {
		return nil, 0, models.NewValidationError("Unknown targetAudience")
	}
	if filter.AgeGroup != "" && !filter.AgeGroup.Valid() {
		return nil, 0, models.NewValidationError("Unknown ageGroup")
	}
	return s.publishedRepo.List(ctx, kind, filter)
}

// Get returns one published entity.
func (s *CatalogService) Get(ctx context.Context, kind models.RequestKind, id uint) (any, error) {
	return s.publishedRepo.Get(ctx, kind, id)
}

// Delete removes a published entity. The originating request keeps its
// terminal status.
func (s *CatalogService) Delete(ctx context.Context, actor models.Actor, kind models.RequestKind, id uint) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	return s.publishedRepo.Delete(ctx, kind, id)
}
