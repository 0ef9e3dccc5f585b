package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"childrenlk/internal/models"
	"childrenlk/internal/notifications"
	"childrenlk/internal/repository"
	"childrenlk/internal/testutil"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type env struct {
	db       *gorm.DB
	admin    models.Actor
	org      *models.Organization
	other    *models.Organization
	mail     *testutil.MailerStub
	notifier *notifierStub

	submissions *SubmissionService
	reviews     *ReviewService
	catalog     *CatalogService
	tags        *TagService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := testutil.NewTestDB(t)
	adminUser := testutil.CreateUser(t, db, "admin@children.lk", models.RoleAdmin)
	_, org := testutil.CreateOrganizer(t, db, "org@example.com", "Little Steps")
	_, other := testutil.CreateOrganizer(t, db, "other@example.com", "Bright Minds")

	requests := repository.NewRequestRepository(db)
	orgs := repository.NewOrganizationRepository(db)
	tags := NewTagService(repository.NewTagRepository(db), nil)
	notifier := &notifierStub{}

	return &env{
		db:          db,
		admin:       testutil.AdminActor(adminUser.ID),
		org:         org,
		other:       other,
		mail:        &testutil.MailerStub{},
		notifier:    notifier,
		submissions: NewSubmissionService(requests, tags),
		reviews:     NewReviewService(requests, orgs, notifier),
		catalog:     NewCatalogService(repository.NewPublishedRepository(db)),
		tags:        tags,
	}
}

func (e *env) organizer() models.Actor { return testutil.OrganizerActor(e.org) }

func (e *env) submitResource(t *testing.T, name string, tags ...string) *models.ResourceRequest {
	t.Helper()
	age := models.AgeGroup5To10
	req := &models.ResourceRequest{ResourcePayload: models.ResourcePayload{
		Name:             name,
		ShortDescription: "Grade 3 addition",
		Tags:             tags,
		Audience:         models.Audience{TargetAudience: models.AudienceChildren, AgeGroup: &age},
	}}
	_, err := e.submissions.Submit(context.Background(), e.organizer(), models.KindResource, req)
	require.NoError(t, err)
	return req
}

func strPtr(s string) *string { return &s }

func requireCode(t *testing.T, err error, code string) *models.AppError {
	t.Helper()
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, code, appErr.Code, appErr.Message)
	return appErr
}

type notifierStub struct {
	mu     sync.Mutex
	owners []uint
	events []notifications.ReviewEvent
	err    error
}

func (n *notifierStub) PublishReviewed(_ context.Context, owner uint, ev notifications.ReviewEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.owners = append(n.owners, owner)
	n.events = append(n.events, ev)
	return n.err
}

// requestRepoStub fails the test on any call; used to prove that checks
// happen before data access.
type requestRepoStub struct {
	t *testing.T
}

func (s requestRepoStub) fail() { s.t.Fatal("repository must not be called") }

func (s requestRepoStub) Create(context.Context, models.Request) error { s.fail(); return nil }
func (s requestRepoStub) List(context.Context, models.RequestKind, models.Actor, repository.RequestFilter) (any, int64, error) {
	s.fail()
	return nil, 0, nil
}
func (s requestRepoStub) Get(context.Context, models.RequestKind, models.Actor, uint) (models.Request, error) {
	s.fail()
	return nil, nil
}
func (s requestRepoStub) Review(context.Context, models.RequestKind, uint, repository.Decision) (models.Request, error) {
	s.fail()
	return nil, nil
}
func (s requestRepoStub) CountByStatus(context.Context, models.RequestKind, *uint) (map[models.RequestStatus]int64, error) {
	s.fail()
	return nil, nil
}

type tagRepoStub struct {
	err     error
	upserts [][]string
}

func (s *tagRepoStub) Upsert(_ context.Context, names []string) error {
	s.upserts = append(s.upserts, names)
	return s.err
}

func (s *tagRepoStub) Search(context.Context, string, int) ([]string, error) { return nil, s.err }

var fixedNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
