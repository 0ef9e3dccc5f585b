package service

import (
	"context"
	"testing"
	"time"

	"childrenlk/internal/models"
	"childrenlk/internal/repository"
	"childrenlk/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewService_PreconditionOrder(t *testing.T) {
	t.Parallel()
	svc := NewReviewService(requestRepoStub{t: t}, nil, nil)
	ctx := context.Background()
	organizer := models.Actor{UserID: 2, Role: models.RoleOrganizer}

	tests := []struct {
		name    string
		actor   models.Actor
		in      ReviewInput
		code    string
		message string
	}{
		{"non-admin with bad status", organizer, ReviewInput{Kind: models.KindResource, ID: 1, Status: "bogus"}, models.CodeUnauthorized, ""},
		{"anonymous", models.Anonymous, ReviewInput{Kind: models.KindResource, ID: 1, Status: models.RequestStatusApproved}, models.CodeUnauthorized, ""},
		{"pending is not a decision", testutil.AdminActor(1), ReviewInput{Kind: models.KindResource, ID: 1, Status: models.RequestStatusPending}, models.CodeValidation, ""},
		{"deny without reason", testutil.AdminActor(1), ReviewInput{Kind: models.KindResource, ID: 1, Status: models.RequestStatusDenied}, models.CodeValidation, "Reason is required when denying"},
		{"deny with blank reason", testutil.AdminActor(1), ReviewInput{Kind: models.KindResource, ID: 1, Status: models.RequestStatusDenied, AdminReason: strPtr("  \t ")}, models.CodeValidation, "Reason is required when denying"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Review(ctx, tt.actor, tt.in)
			appErr := requireCode(t, err, tt.code)
			if tt.message != "" {
				assert.Equal(t, tt.message, appErr.Message)
			}
		})
	}
}

func TestReviewService_ApprovePublishesAndNotifies(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.reviews.now = func() time.Time { return fixedNow }

	req := e.submitResource(t, "Math Worksheet")
	assert.Equal(t, models.RequestStatusPending, req.Status)

	before, total, err := e.catalog.List(ctx, models.KindResource, repository.PublicFilter{})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, *before.(*[]models.Resource))

	reviewed, err := e.reviews.Review(ctx, e.admin, ReviewInput{
		Kind: models.KindResource, ID: req.ID, Status: models.RequestStatusApproved, AdminReason: strPtr("   "),
	})
	require.NoError(t, err)
	state := reviewed.State()
	assert.Equal(t, models.RequestStatusApproved, state.Status)
	assert.Nil(t, state.AdminReason)
	require.NotNil(t, state.ReviewedAt)
	assert.True(t, state.ReviewedAt.Equal(fixedNow))
	assert.Equal(t, e.admin.UserID, *state.ReviewedByUserID)

	after, total, err := e.catalog.List(ctx, models.KindResource, repository.PublicFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	published := *after.(*[]models.Resource)
	assert.Equal(t, "Math Worksheet", published[0].Name)
	assert.Equal(t, "Grade 3 addition", published[0].ShortDescription)
	assert.Equal(t, req.ID, published[0].RequestID)

	require.Len(t, e.notifier.events, 1)
	assert.Equal(t, e.org.OwnerUserID, e.notifier.owners[0])
	assert.Equal(t, "resource", e.notifier.events[0].Kind)
	assert.Equal(t, "approved", e.notifier.events[0].Status)
}

func TestReviewService_SecondReviewConflicts(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	req := e.submitResource(t, "Math Worksheet")

	_, err := e.reviews.Review(ctx, e.admin, ReviewInput{
		Kind: models.KindResource, ID: req.ID, Status: models.RequestStatusDenied, AdminReason: strPtr("  Duplicate of #3 "),
	})
	require.NoError(t, err)

	for _, status := range []models.RequestStatus{models.RequestStatusApproved, models.RequestStatusDenied} {
		_, err = e.reviews.Review(ctx, e.admin, ReviewInput{
			Kind: models.KindResource, ID: req.ID, Status: status, AdminReason: strPtr("again"),
		})
		appErr := requireCode(t, err, models.CodeConflict)
		assert.Equal(t, "Request already reviewed", appErr.Message)
	}

	got, err := e.submissions.Get(ctx, e.admin, models.KindResource, req.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusDenied, got.State().Status)
	assert.Equal(t, "Duplicate of #3", got.State().AdminReasonOrEmpty())

	var published int64
	e.db.Model(&models.Resource{}).Count(&published)
	assert.Zero(t, published)
}

func TestReviewService_BlankDenyLeavesRequestUntouched(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	req := e.submitResource(t, "Math Worksheet")

	_, err := e.reviews.Review(ctx, e.admin, ReviewInput{
		Kind: models.KindResource, ID: req.ID, Status: models.RequestStatusDenied, AdminReason: strPtr(""),
	})
	appErr := requireCode(t, err, models.CodeValidation)
	assert.Equal(t, "Reason is required when denying", appErr.Message)

	got, err := e.submissions.Get(ctx, e.admin, models.KindResource, req.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusPending, got.State().Status)
	assert.Nil(t, got.State().ReviewedAt)
}

func TestReviewService_NotificationFailureIsNotFatal(t *testing.T) {
	e := newEnv(t)
	e.notifier.err = assert.AnError
	req := e.submitResource(t, "Math Worksheet")

	_, err := e.reviews.Review(context.Background(), e.admin, ReviewInput{
		Kind: models.KindResource, ID: req.ID, Status: models.RequestStatusApproved,
	})
	assert.NoError(t, err)
}

func TestReviewService_MissingRequest(t *testing.T) {
	e := newEnv(t)
	_, err := e.reviews.Review(context.Background(), e.admin, ReviewInput{
		Kind: models.KindMedia, ID: 404, Status: models.RequestStatusApproved,
	})
	requireCode(t, err, models.CodeNotFound)
}
