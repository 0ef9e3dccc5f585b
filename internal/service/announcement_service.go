package service

import (
	"context"
	"strings"

	"childrenlk/internal/models"
	"childrenlk/internal/repository"
	"childrenlk/internal/validation"
)

// AnnouncementService publishes admin notices.
type AnnouncementService struct {
	repo repository.AnnouncementRepository
}

// NewAnnouncementService returns a new AnnouncementService.
func NewAnnouncementService(repo repository.AnnouncementRepository) *AnnouncementService {
	return &AnnouncementService{repo: repo}
}

func (s *AnnouncementService) Create(ctx context.Context, actor models.Actor, in validation.AnnouncementInput) (*models.Announcement, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	a := &models.Announcement{
		Title:           strings.TrimSpace(in.Title),
		Body:            strings.TrimSpace(in.Body),
		CreatedByUserID: actor.UserID,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AnnouncementService) Delete(ctx context.Context, actor models.Actor, id uint) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *AnnouncementService) List(ctx context.Context, limit, offset int) ([]models.Announcement, int64, error) {
	return s.repo.List(ctx, limit, offset)
}
