package service

import (
	"context"
	"testing"

	"childrenlk/internal/models"
	"childrenlk/internal/repository"
	"childrenlk/internal/testutil"
	"childrenlk/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func approveResource(t *testing.T, e *env, req *models.ResourceRequest) *models.Resource {
	t.Helper()
	_, err := e.reviews.Review(context.Background(), e.admin, ReviewInput{
		Kind: models.KindResource, ID: req.ID, Status: models.RequestStatusApproved,
	})
	require.NoError(t, err)
	var res models.Resource
	require.NoError(t, e.db.Where("request_id = ?", req.ID).First(&res).Error)
	return &res
}

func TestCatalogService_FilterValidation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, _, err := e.catalog.List(ctx, models.KindEvent, repository.PublicFilter{TargetAudience: "teens"})
	requireCode(t, err, models.CodeValidation)
	_, _, err = e.catalog.List(ctx, models.KindEvent, repository.PublicFilter{AgeGroup: "6-9"})
	requireCode(t, err, models.CodeValidation)
	_, _, err = e.catalog.List(ctx, models.KindEvent, repository.PublicFilter{AgeGroup: models.AgeGroup11To15})
	require.NoError(t, err)
}

func TestCatalogService_DeleteSuperHero(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	req := &models.SuperHeroRequest{SuperHeroPayload: models.SuperHeroPayload{
		Name: "Ruwan", Phone: "+94771234567", ShortDescription: "Lifeguard",
	}}
	_, err := e.submissions.Submit(ctx, e.organizer(), models.KindSuperHero, req)
	require.NoError(t, err)
	_, err = e.reviews.Review(ctx, e.admin, ReviewInput{Kind: models.KindSuperHero, ID: req.ID, Status: models.RequestStatusApproved})
	require.NoError(t, err)

	var hero models.SuperHero
	require.NoError(t, e.db.First(&hero).Error)

	requireCode(t, e.catalog.Delete(ctx, e.organizer(), models.KindSuperHero, hero.ID), models.CodeUnauthorized)
	require.NoError(t, e.catalog.Delete(ctx, e.admin, models.KindSuperHero, hero.ID))
	_, err = e.catalog.Get(ctx, models.KindSuperHero, hero.ID)
	requireCode(t, err, models.CodeNotFound)
}

func TestDownloadService(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	svc := NewDownloadService(repository.NewPublishedRepository(e.db), repository.NewDownloadRepository(e.db))

	req := e.submitResource(t, "Math Worksheet")
	req.Documents = []models.Attachment{{URL: "https://cdn.example.com/w.pdf", PublicID: "resources/w", Type: models.AttachmentPDF}}
	require.NoError(t, e.db.Save(req).Error)

	pending := e.submitResource(t, "Unreviewed")
	_, err := svc.Record(ctx, validation.DownloadInput{ResourceID: pending.ID + 1000, DocumentPublicID: "resources/w"})
	requireCode(t, err, models.CodeNotFound)

	res := approveResource(t, e, req)

	_, err = svc.Record(ctx, validation.DownloadInput{ResourceID: res.ID, DocumentPublicID: "resources/other"})
	requireCode(t, err, models.CodeNotFound)

	var last int64
	for i := 0; i < 3; i++ {
		got, err := svc.Record(ctx, validation.DownloadInput{ResourceID: res.ID, DocumentPublicID: "resources/w"})
		require.NoError(t, err)
		assert.Greater(t, got.Count, last)
		last = got.Count
	}

	counts, err := svc.ForResource(ctx, e.admin, res.ID)
	require.NoError(t, err)
	require.Len(t, counts, 1)
	assert.Equal(t, int64(3), counts[0].Count)

	_, err = svc.ForResource(ctx, e.organizer(), res.ID)
	requireCode(t, err, models.CodeUnauthorized)
}

func TestAnnouncementService(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewAnnouncementService(repository.NewAnnouncementRepository(db))
	ctx := context.Background()
	admin := testutil.CreateUser(t, db, "admin@children.lk", models.RoleAdmin)

	_, err := svc.Create(ctx, models.Actor{UserID: 9, Role: models.RoleParent}, validation.AnnouncementInput{Title: "x", Body: "y"})
	requireCode(t, err, models.CodeUnauthorized)

	a, err := svc.Create(ctx, testutil.AdminActor(admin.ID), validation.AnnouncementInput{Title: " Vesak ", Body: "Lantern workshop on Saturday"})
	require.NoError(t, err)
	assert.Equal(t, "Vesak", a.Title)
	assert.Equal(t, admin.ID, a.CreatedByUserID)

	items, total, err := svc.List(ctx, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, a.ID, items[0].ID)

	require.NoError(t, svc.Delete(ctx, testutil.AdminActor(admin.ID), a.ID))
}
