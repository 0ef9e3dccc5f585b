package service

import (
	"context"
	"sync"

	"childrenlk/internal/models"
	"childrenlk/internal/repository"

	"golang.org/x/sync/errgroup"
)

// KindCounts are request counts of one kind by status.
type KindCounts struct {
	Pending   int64 `json:"pending"`
	Approved  int64 `json:"approved"`
	Denied    int64 `json:"denied"`
	Published int64 `json:"published"`
}

// AdminStats is the admin dashboard summary.
type AdminStats struct {
	Requests      map[models.RequestKind]KindCounts `json:"requests"`
	Organizations int64                             `json:"organizations"`
	Parents       int64                             `json:"parents"`
	Downloads     int64                             `json:"downloads"`
}

// OrganizerStats is the organizer dashboard summary.
type OrganizerStats struct {
	Requests map[models.RequestKind]KindCounts `json:"requests"`
}

// StatsService aggregates read-only dashboard counts.
type StatsService struct {
	requestRepo   repository.RequestRepository
	publishedRepo repository.PublishedRepository
	orgRepo       repository.OrganizationRepository
	userRepo      repository.UserRepository
	downloadRepo  repository.DownloadRepository
}

// NewStatsService returns a new StatsService.
func NewStatsService(
	requestRepo repository.RequestRepository,
	publishedRepo repository.PublishedRepository,
	orgRepo repository.OrganizationRepository,
	userRepo repository.UserRepository,
	downloadRepo repository.DownloadRepository,
) *StatsService {
	return &StatsService{
		requestRepo:   requestRepo,
		publishedRepo: publishedRepo,
		orgRepo:       orgRepo,
		userRepo:      userRepo,
		downloadRepo:  downloadRepo,
	}
}

// Admin returns platform-wide counts, querying independent counters
// concurrently.
func (s *StatsService) Admin(ctx context.Context, actor models.Actor) (*AdminStats, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	out := &AdminStats{}
	g, gctx := errgroup.WithContext(ctx)

	var requests map[models.RequestKind]KindCounts
	g.Go(func() (err error) {
		requests, err = s.kindCounts(gctx, nil)
		return err
	})
	g.Go(func() (err error) {
		out.Organizations, err = s.orgRepo.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.Parents, err = s.userRepo.CountByRole(gctx, models.RoleParent)
		return err
	})
	g.Go(func() (err error) {
		out.Downloads, err = s.downloadRepo.Total(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	out.Requests = requests
	return out, nil
}

// Organizer returns the request counts of the actor's organization.
func (s *StatsService) Organizer(ctx context.Context, actor models.Actor) (*OrganizerStats, error) {
	if !actor.IsOrganizer() {
		return nil, models.NewUnauthorizedError("Organizer access required")
	}
	requests, err := s.kindCounts(ctx, actor.OrganizationID)
	if err != nil {
		return nil, err
	}
	return &OrganizerStats{Requests: requests}, nil
}

func (s *StatsService) kindCounts(ctx context.Context, organizationID *uint) (map[models.RequestKind]KindCounts, error) {
	var mu sync.Mutex
	out := make(map[models.RequestKind]KindCounts, len(models.RequestKinds))
	g, gctx := errgroup.WithContext(ctx)

	for _, kind := range models.RequestKinds {
		g.Go(func() error {
			byStatus, err := s.requestRepo.CountByStatus(gctx, kind, organizationID)
			if err != nil {
				return err
			}
			published, err := s.publishedRepo.Count(gctx, kind, organizationID)
			if err != nil {
				return err
			}
			mu.Lock()
			out[kind] = KindCounts{
				Pending:   byStatus[models.RequestStatusPending],
				Approved:  byStatus[models.RequestStatusApproved],
				Denied:    byStatus[models.RequestStatusDenied],
				Published: published,
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
