package repository

import (
	"context"
	"testing"
	"time"

	"childrenlk/internal/models"
	"childrenlk/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

func appCode(t *testing.T, err error) string {
	t.Helper()
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	return appErr.Code
}

func newResourceRequest(org *models.Organization, name string, tags ...string) *models.ResourceRequest {
	age := models.AgeGroup("5-10")
	return &models.ResourceRequest{
		ReviewState: models.ReviewState{OrganizationID: org.ID},
		ResourcePayload: models.ResourcePayload{
			Name:             name,
			ShortDescription: "Grade 3 addition",
			Tags:             tags,
			Audience:         models.Audience{TargetAudience: "children", AgeGroup: &age},
		},
	}
}

type fixture struct {
	db      *gorm.DB
	admin   *models.User
	org     *models.Organization
	other   *models.Organization
	reqs    RequestRepository
	publish PublishedRepository
}

func newFixture(t *testing.T) *fixture {
	db := testutil.NewTestDB(t)
	admin := testutil.CreateUser(t, db, "admin@example.com", models.RoleAdmin)
	_, org := testutil.CreateOrganizer(t, db, "org@example.com", "Little Steps")
	_, other := testutil.CreateOrganizer(t, db, "other@example.com", "Bright Minds")
	return &fixture{
		db:      db,
		admin:   admin,
		org:     org,
		other:   other,
		reqs:    NewRequestRepository(db),
		publish: NewPublishedRepository(db),
	}
}

func TestRequestRepository_CreateForcesPending(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := newResourceRequest(f.org, "Math Worksheet")
	reason := "sneaky"
	req.Status = models.RequestStatusApproved
	req.AdminReason = &reason
	require.NoError(t, f.reqs.Create(ctx, req))

	got, err := f.reqs.Get(ctx, models.KindResource, testutil.OrganizerActor(f.org), req.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusPending, got.State().Status)
	assert.Nil(t, got.State().AdminReason)
	assert.Nil(t, got.State().ReviewedAt)
}

func TestRequestRepository_OrganizationScope(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	mine := newResourceRequest(f.org, "Mine")
	theirs := newResourceRequest(f.other, "Theirs")
	require.NoError(t, f.reqs.Create(ctx, mine))
	require.NoError(t, f.reqs.Create(ctx, theirs))

	_, err := f.reqs.Get(ctx, models.KindResource, testutil.OrganizerActor(f.org), theirs.ID)
	assert.Equal(t, models.CodeNotFound, appCode(t, err))

	list, total, err := f.reqs.List(ctx, models.KindResource, testutil.OrganizerActor(f.org), RequestFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	items := *list.(*[]models.ResourceRequest)
	require.Len(t, items, 1)
	assert.Equal(t, "Mine", items[0].Name)

	_, total, err = f.reqs.List(ctx, models.KindResource, testutil.AdminActor(f.admin.ID), RequestFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	_, total, err = f.reqs.List(ctx, models.KindResource, models.Anonymous, RequestFilter{})
	require.NoError(t, err)
	assert.Zero(t, total)

	orphan := models.Actor{UserID: 42, Role: models.RoleOrganizer}
	_, err = f.reqs.Get(ctx, models.KindResource, orphan, mine.ID)
	assert.Equal(t, models.CodeNotFound, appCode(t, err))
}

func TestRequestRepository_ReviewApprovePublishesOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := newResourceRequest(f.org, "Math Worksheet", "math", "grade-3")
	require.NoError(t, f.reqs.Create(ctx, req))

	at := time.Now().UTC()
	reviewed, err := f.reqs.Review(ctx, models.KindResource, req.ID, Decision{
		Status: models.RequestStatusApproved, ReviewerID: f.admin.ID, At: at,
	})
	require.NoError(t, err)
	state := reviewed.State()
	assert.Equal(t, models.RequestStatusApproved, state.Status)
	require.NotNil(t, state.ReviewedAt)
	require.NotNil(t, state.ReviewedByUserID)
	assert.Equal(t, f.admin.ID, *state.ReviewedByUserID)

	_, err = f.reqs.Review(ctx, models.KindResource, req.ID, Decision{
		Status: models.RequestStatusApproved, ReviewerID: f.admin.ID, At: at,
	})
	assert.Equal(t, models.CodeConflict, appCode(t, err))

	var published []models.Resource
	require.NoError(t, f.db.Where("request_id = ?", req.ID).Find(&published).Error)
	require.Len(t, published, 1)
	assert.Equal(t, "Math Worksheet", published[0].Name)
	assert.Equal(t, "Grade 3 addition", published[0].ShortDescription)
	assert.Equal(t, f.org.ID, published[0].OrganizationID)
}

func TestRequestRepository_ConcurrentReviewsDecideOnce(t *testing.T) {
	tests := []struct {
		name     string
		decision func(i int) models.RequestStatus
	}{
		{"all approve", func(int) models.RequestStatus { return models.RequestStatusApproved }},
		{"approve and deny race", func(i int) models.RequestStatus {
			if i%2 == 0 {
				return models.RequestStatusDenied
			}
			return models.RequestStatusApproved
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()

			req := newResourceRequest(f.org, "Math Worksheet", "math")
			require.NoError(t, f.reqs.Create(ctx, req))

			const reviewers = 8
			reason := "Needs more detail"
			errs := make([]error, reviewers)
			var g errgroup.Group
			for i := 0; i < reviewers; i++ {
				g.Go(func() error {
					d := Decision{Status: tt.decision(i), ReviewerID: f.admin.ID, At: time.Now().UTC()}
					if d.Status == models.RequestStatusDenied {
						d.AdminReason = &reason
					}
					_, errs[i] = f.reqs.Review(ctx, models.KindResource, req.ID, d)
					return nil
				})
			}
			require.NoError(t, g.Wait())

			succeeded := 0
			for _, err := range errs {
				if err == nil {
					succeeded++
					continue
				}
				assert.Equal(t, models.CodeConflict, appCode(t, err))
			}
			assert.Equal(t, 1, succeeded)

			var stored models.ResourceRequest
			require.NoError(t, f.db.First(&stored, req.ID).Error)
			var published int64
			require.NoError(t, f.db.Model(&models.Resource{}).Where("request_id = ?", req.ID).Count(&published).Error)
			if stored.Status == models.RequestStatusApproved {
				assert.EqualValues(t, 1, published)
			} else {
				assert.Equal(t, models.RequestStatusDenied, stored.Status)
				assert.EqualValues(t, 0, published)
			}
		})
	}
}

func TestRequestRepository_ReviewDenyAndMissing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := &models.EventRequest{
		ReviewState: models.ReviewState{OrganizationID: f.org.ID},
		EventPayload: models.EventPayload{
			Name: "Story time", Location: "Colombo", StartDate: time.Now().Add(48 * time.Hour),
			Description: "Reading circle", Audience: models.Audience{TargetAudience: "children"},
		},
	}
	require.NoError(t, f.reqs.Create(ctx, req))

	reason := "Missing venue details"
	_, err := f.reqs.Review(ctx, models.KindEvent, req.ID, Decision{
		Status: models.RequestStatusDenied, AdminReason: &reason, ReviewerID: f.admin.ID, At: time.Now(),
	})
	require.NoError(t, err)

	var count int64
	f.db.Model(&models.Event{}).Count(&count)
	assert.Zero(t, count)

	got, err := f.reqs.Get(ctx, models.KindEvent, testutil.AdminActor(f.admin.ID), req.ID)
	require.NoError(t, err)
	assert.Equal(t, "Missing venue details", got.State().AdminReasonOrEmpty())

	_, err = f.reqs.Review(ctx, models.KindEvent, 9999, Decision{Status: models.RequestStatusApproved, At: time.Now()})
	assert.Equal(t, models.CodeNotFound, appCode(t, err))
}

func TestRequestRepository_CountByStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, f.reqs.Create(ctx, newResourceRequest(f.org, name)))
	}
	other := newResourceRequest(f.other, "d")
	require.NoError(t, f.reqs.Create(ctx, other))
	_, err := f.reqs.Review(ctx, models.KindResource, other.ID, Decision{Status: models.RequestStatusApproved, At: time.Now()})
	require.NoError(t, err)

	all, err := f.reqs.CountByStatus(ctx, models.KindResource, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), all[models.RequestStatusPending])
	assert.Equal(t, int64(1), all[models.RequestStatusApproved])
	assert.Equal(t, int64(0), all[models.RequestStatusDenied])

	scoped, err := f.reqs.CountByStatus(ctx, models.KindResource, &f.org.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), scoped[models.RequestStatusApproved])
}

func TestPublishedRepository_Filters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	approve := func(r *models.ResourceRequest) {
		require.NoError(t, f.reqs.Create(ctx, r))
		_, err := f.reqs.Review(ctx, models.KindResource, r.ID, Decision{Status: models.RequestStatusApproved, At: time.Now()})
		require.NoError(t, err)
	}
	approve(newResourceRequest(f.org, "Math Worksheet", "math", "grade-3"))
	approve(newResourceRequest(f.org, "Colouring_Book", "art"))
	adults := newResourceRequest(f.other, "Parenting guide", "math")
	adults.TargetAudience = models.TargetAudience("people_work_for_children")
	adults.AgeGroup = nil
	approve(adults)

	names := func(filter PublicFilter) []string {
		list, _, err := f.publish.List(ctx, models.KindResource, filter)
		require.NoError(t, err)
		var out []string
		for _, r := range *list.(*[]models.Resource) {
			out = append(out, r.Name)
		}
		return out
	}

	assert.ElementsMatch(t, []string{"Math Worksheet", "Parenting guide"}, names(PublicFilter{Tag: "Math"}))
	assert.ElementsMatch(t, []string{"Parenting guide"}, names(PublicFilter{TargetAudience: "people_work_for_children"}))
	assert.ElementsMatch(t, []string{"Math Worksheet", "Colouring_Book"}, names(PublicFilter{AgeGroup: "5-10"}))
	assert.Equal(t, []string{"Math Worksheet"}, names(PublicFilter{Query: "worksheet"}))
	assert.Equal(t, []string{"Colouring_Book"}, names(PublicFilter{Query: "_"}))
	assert.Len(t, names(PublicFilter{Limit: 1}), 1)

	_, total, err := f.publish.List(ctx, models.KindResource, PublicFilter{OrganizationID: &f.other.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestPublishedRepository_GetAndDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := &models.SuperHeroRequest{
		ReviewState: models.ReviewState{OrganizationID: f.org.ID},
		SuperHeroPayload: models.SuperHeroPayload{
			Name: "Ruwan", Phone: "+94771234567", ShortDescription: "Volunteer lifeguard",
		},
	}
	require.NoError(t, f.reqs.Create(ctx, req))
	_, err := f.reqs.Review(ctx, models.KindSuperHero, req.ID, Decision{Status: models.RequestStatusApproved, At: time.Now()})
	require.NoError(t, err)

	var hero models.SuperHero
	require.NoError(t, f.db.Where("request_id = ?", req.ID).First(&hero).Error)

	got, err := f.publish.Get(ctx, models.KindSuperHero, hero.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ruwan", got.(*models.SuperHero).Name)

	require.NoError(t, f.publish.Delete(ctx, models.KindSuperHero, hero.ID))
	_, err = f.publish.Get(ctx, models.KindSuperHero, hero.ID)
	assert.Equal(t, models.CodeNotFound, appCode(t, err))
	assert.Equal(t, models.CodeNotFound, appCode(t, f.publish.Delete(ctx, models.KindSuperHero, hero.ID)))

	still, err := f.reqs.Get(ctx, models.KindSuperHero, testutil.AdminActor(f.admin.ID), req.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusApproved, still.State().Status)
}

func TestTagRepository_UpsertAndSearch(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewTagRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, []string{"math", "maths", "art"}))
	require.NoError(t, repo.Upsert(ctx, []string{"math", "music"}))
	require.NoError(t, repo.Upsert(ctx, nil))

	var count int64
	db.Model(&models.Tag{}).Count(&count)
	assert.Equal(t, int64(4), count)

	got, err := repo.Search(ctx, "MA", 20)
	require.NoError(t, err)
	assert.Equal(t, []string{"math", "maths"}, got)

	got, err = repo.Search(ctx, "", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"art", "math"}, got)

	got, err = repo.Search(ctx, "zzz", 20)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDownloadRepository_IncrementIsMonotonic(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewDownloadRepository(db)
	ctx := context.Background()

	var last int64
	for i := 0; i < 3; i++ {
		n, err := repo.Increment(ctx, 1, "docs/worksheet")
		require.NoError(t, err)
		assert.Greater(t, n, last)
		last = n
	}
	assert.Equal(t, int64(3), last)

	n, err := repo.Increment(ctx, 1, "docs/answers")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	var rows int64
	db.Model(&models.DocumentDownloadCount{}).Where("resource_id = ?", 1).Count(&rows)
	assert.Equal(t, int64(2), rows)

	counts, err := repo.ListForResource(ctx, 1)
	require.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, "docs/worksheet", counts[0].DocumentPublicID)

	total, err := repo.Total(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
}

func TestAnnouncementRepository(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewAnnouncementRepository(db)
	ctx := context.Background()
	admin := testutil.CreateUser(t, db, "admin@example.com", models.RoleAdmin)

	a := &models.Announcement{Title: "Holiday", Body: "Closed on Poya day", CreatedByUserID: admin.ID}
	require.NoError(t, repo.Create(ctx, a))

	items, total, err := repo.List(ctx, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Holiday", items[0].Title)

	require.NoError(t, repo.Delete(ctx, a.ID))
	assert.Equal(t, models.CodeNotFound, appCode(t, repo.Delete(ctx, a.ID)))
}

func TestOrganizationRepository_CreateWithOwner(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewOrganizationRepository(db)
	ctx := context.Background()

	owner := &models.User{Name: "Kumari", Email: "kumari@example.com", Password: "hash", Role: models.RoleOrganizer}
	org := &models.Organization{Name: "Sunshine", ContactPhone: "+94771234567"}
	require.NoError(t, repo.CreateWithOwner(ctx, owner, org))
	assert.Equal(t, owner.ID, org.OwnerUserID)

	got, err := repo.GetByOwner(ctx, owner.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Sunshine", got.Name)

	dup := &models.User{Name: "Kumari", Email: "kumari@example.com", Password: "hash", Role: models.RoleOrganizer}
	err = repo.CreateWithOwner(ctx, dup, &models.Organization{Name: "Again"})
	assert.Equal(t, models.CodeConflict, appCode(t, err))

	var orgs int64
	db.Model(&models.Organization{}).Count(&orgs)
	assert.Equal(t, int64(1), orgs)

	none, err := repo.GetByOwner(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestUserRepository_OTPRoundTrip(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()
	testutil.CreateUser(t, db, "parent@example.com", models.RoleParent)

	ok, err := repo.SetOTP(ctx, "parent@example.com", "123456", time.Now().Add(10*time.Minute))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.SetOTP(ctx, "ghost@example.com", "123456", time.Now().Add(10*time.Minute))
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.ResetPassword(ctx, "parent@example.com", "000000", "newhash", time.Now())
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.ResetPassword(ctx, "parent@example.com", "123456", "newhash", time.Now())
	require.NoError(t, err)
	assert.True(t, ok)

	u, err := repo.GetByEmail(ctx, "parent@example.com")
	require.NoError(t, err)
	assert.Equal(t, "newhash", u.Password)
	assert.Nil(t, u.OTPCode)
	assert.Nil(t, u.OTPExpiresAt)

	ok, err = repo.ResetPassword(ctx, "parent@example.com", "123456", "again", time.Now())
	require.NoError(t, err)
	assert.False(t, ok)
}
