package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"childrenlk/internal/middleware"
	"childrenlk/internal/models"
	"childrenlk/internal/notifications"
	"childrenlk/internal/observability"
	"childrenlk/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// ReviewNotifier is told about completed reviews.
type ReviewNotifier interface {
	PublishReviewed(ctx context.Context, ownerUserID uint, ev notifications.ReviewEvent) error
}

// ReviewService moves requests out of pending exactly once.
type ReviewService struct {
	requestRepo repository.RequestRepository
	orgRepo     repository.OrganizationRepository
	notifier    ReviewNotifier
	now         func() time.Time
}

// NewReviewService returns a new ReviewService. notifier may be nil.
func NewReviewService(
	requestRepo repository.RequestRepository,
	orgRepo repository.OrganizationRepository,
	notifier ReviewNotifier,
) *ReviewService {
	return &ReviewService{
		requestRepo: requestRepo,
		orgRepo:     orgRepo,
		notifier:    notifier,
		now:         time.Now,
	}
}

// ReviewInput is an admin decision on one request.
type ReviewInput struct {
	Kind        models.RequestKind
	ID          uint
	Status      models.RequestStatus
	AdminReason *string
}

// Review applies an approve or deny decision. Approval publishes the
// request's payload in the same transaction as the status change.
func (s *ReviewService) Review(ctx context.Context, actor models.Actor, in ReviewInput) (req models.Request, err error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if !in.Status.IsDecision() {
		return nil, models.NewValidationError("Status must be approved or denied")
	}

	var reason *string
	if in.AdminReason != nil {
		if trimmed := strings.TrimSpace(*in.AdminReason); trimmed != "" {
			reason = &trimmed
		}
	}
	if in.Status == models.RequestStatusDenied && reason == nil {
		return nil, models.NewValidationError("Reason is required when denying")
	}

	ctx, span := observability.StartSpan(ctx, "review.decide",
		attribute.String("request.kind", string(in.Kind)),
		attribute.Int("request.id", int(in.ID)),
		attribute.String("review.status", string(in.Status)),
	)
	defer func() { observability.EndSpan(span, err) }()

	req, err = s.requestRepo.Review(ctx, in.Kind, in.ID, repository.Decision{
		Status:      in.Status,
		AdminReason: reason,
		ReviewerID:  actor.UserID,
		At:          s.now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	observability.ReviewDecisions.WithLabelValues(string(in.Kind), string(in.Status)).Inc()
	middleware.Logger.InfoContext(ctx, "request reviewed",
		slog.String("kind", string(in.Kind)),
		slog.Uint64("request_id", uint64(in.ID)),
		slog.String("status", string(in.Status)),
	)
	s.notifyOwner(ctx, in.Kind, req)
	return req, nil
}

func (s *ReviewService) notifyOwner(ctx context.Context, kind models.RequestKind, req models.Request) {
	if s.notifier == nil || s.orgRepo == nil {
		return
	}
	state := req.State()
	org, err := s.orgRepo.GetByID(ctx, state.OrganizationID)
	if err == nil {
		err = s.notifier.PublishReviewed(ctx, org.OwnerUserID, notifications.ReviewEvent{
			Kind:   string(kind),
			ID:     req.GetID(),
			Status: string(state.Status),
			Reason: state.AdminReasonOrEmpty(),
		})
	}
	if err != nil {
		middleware.Logger.WarnContext(ctx, "review notification failed",
			slog.Uint64("request_id", uint64(req.GetID())),
			slog.String("error", err.Error()),
		)
	}
}
