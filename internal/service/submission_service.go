package service

import (
	"context"

	"childrenlk/internal/models"
	"childrenlk/internal/observability"
	"childrenlk/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// SubmissionService handles organizer submissions and scoped request reads.
type SubmissionService struct {
	requestRepo repository.RequestRepository
	tags        *TagService
}

// NewSubmissionService returns a new SubmissionService.
func NewSubmissionService(requestRepo repository.RequestRepository, tags *TagService) *SubmissionService {
	return &SubmissionService{requestRepo: requestRepo, tags: tags}
}

// Submit stores req as a pending request of the actor's organization.
func (s *SubmissionService) Submit(ctx context.Context, actor models.Actor, kind models.RequestKind, req models.Request) (res models.Request, err error) {
	if !actor.IsOrganizer() {
		return nil, models.NewUnauthorizedError("Organizer access required")
	}

	ctx, span := observability.StartSpan(ctx, "submission.create",
		attribute.String("request.kind", string(kind)),
		attribute.Int("organization.id", int(*actor.OrganizationID)),
	)
	defer func() { observability.EndSpan(span, err) }()

	req.State().OrganizationID = *actor.OrganizationID
	if err := s.requestRepo.Create(ctx, req); err != nil {
		return nil, err
	}
	observability.Submissions.WithLabelValues(string(kind)).Inc()

	if s.tags != nil {
		s.tags.Register(ctx, req.TagList())
	}
	return req, nil
}

// List returns the requests of kind visible to actor.
func (s *SubmissionService) List(ctx context.Context, actor models.Actor, kind models.RequestKind, filter repository.RequestFilter) (any, int64, error) {
	if err := requireStaff(actor); err != nil {
		return nil, 0, err
	}
	if filter.Status != "" && filter.Status != models.RequestStatusPending && !filter.Status.IsDecision() {
		return nil, 0, models.NewValidationError("Unknown status filter")
	}
	return s.requestRepo.List(ctx, kind, actor, filter)
}

// Get returns one request visible to actor. Requests of other organizations
// are reported as not found.
func (s *SubmissionService) Get(ctx context.Context, actor models.Actor, kind models.RequestKind, id uint) (models.Request, error) {
	if err := requireStaff(actor); err != nil {
		return nil, err
	}
	return s.requestRepo.Get(ctx, kind, actor, id)
}

func requireStaff(actor models.Actor) error {
	if actor.IsAdmin() || actor.IsOrganizer() {
		return nil
	}
	return models.NewUnauthorizedError("Organizer or admin access required")
}

func requireAdmin(actor models.Actor) error {
	if actor.IsAdmin() {
		return nil
	}
	return models.NewUnauthorizedError("Admin access required")
}
