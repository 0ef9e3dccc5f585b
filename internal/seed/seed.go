package seed

import (
	"context"
	"fmt"
	"log/slog"

	"childrenlk/internal/database"
	"childrenlk/internal/middleware"
	"childrenlk/internal/models"
	"childrenlk/internal/repository"
	"childrenlk/internal/service"

	"gorm.io/gorm"
)

// DefaultPassword is given to every seeded account.
const DefaultPassword = "password123"

// Options controls how much data the seeder creates.
type Options struct {
	Organizations  int
	RequestsPerOrg int
	Parents        int
	AdminEmail     string
	Password       string
	ShouldClean    bool
	// RandomSeed makes runs reproducible when non-zero.
	RandomSeed int64
}

// DefaultOptions returns a small but complete data set.
func DefaultOptions() Options {
	return Options{
		Organizations:  5,
		RequestsPerOrg: 8,
		Parents:        20,
		AdminEmail:     "admin@children.lk",
		Password:       DefaultPassword,
		ShouldClean:    true,
	}
}

// Summary reports what a run created.
type Summary struct {
	Organizations int
	Parents       int
	Requests      map[models.RequestStatus]int
}

// Seeder populates the database through the same services the API uses, so
// approved requests get their published copies and tags are registered.
type Seeder struct {
	db      *gorm.DB
	opts    Options
	factory *Factory
	users   repository.UserRepository
	orgs    repository.OrganizationRepository
	submit  *service.SubmissionService
	review  *service.ReviewService
}

// NewSeeder returns a Seeder bound to db.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	if opts.Password == "" {
		opts.Password = DefaultPassword
	}
	requests := repository.NewRequestRepository(db)
	orgs := repository.NewOrganizationRepository(db)
	tags := service.NewTagService(repository.NewTagRepository(db), nil)
	return &Seeder{
		db:      db,
		opts:    opts,
		factory: NewFactory(opts.RandomSeed),
		users:   repository.NewUserRepository(db),
		orgs:    orgs,
		submit:  service.NewSubmissionService(requests, tags),
		review:  service.NewReviewService(requests, orgs, nil),
	}
}

// ClearAll deletes every row of every schema-managed table, dependents first.
func (s *Seeder) ClearAll(ctx context.Context) error {
	all := database.PersistentModels()
	for i := len(all) - 1; i >= 0; i-- {
		if err := s.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(all[i]).Error; err != nil {
			return fmt.Errorf("clear %T: %w", all[i], err)
		}
	}
	return nil
}

// Run seeds an admin, organizers with their organizations, parents and a mix
// of pending, approved and denied requests of every kind.
func (s *Seeder) Run(ctx context.Context) (*Summary, error) {
	if s.opts.ShouldClean {
		if err := s.ClearAll(ctx); err != nil {
			return nil, err
		}
	}

	hash, err := service.HashPassword(s.opts.Password)
	if err != nil {
		return nil, err
	}

	admin, err := s.ensureAdmin(ctx, hash)
	if err != nil {
		return nil, err
	}
	adminActor := models.Actor{UserID: admin.ID, Role: models.RoleAdmin}

	sum := &Summary{Requests: map[models.RequestStatus]int{}}
	for i := 0; i < s.opts.Organizations; i++ {
		owner, org := s.factory.Organizer(hash)
		if err := s.orgs.CreateWithOwner(ctx, owner, org); err != nil {
			return nil, fmt.Errorf("create organization %q: %w", org.Name, err)
		}
		sum.Organizations++

		orgID := org.ID
		organizer := models.Actor{UserID: owner.ID, Role: models.RoleOrganizer, OrganizationID: &orgID}
		for j := 0; j < s.opts.RequestsPerOrg; j++ {
			kind := models.RequestKinds[j%len(models.RequestKinds)]
			status, err := s.seedRequest(ctx, organizer, adminActor, kind, j)
			if err != nil {
				return nil, err
			}
			sum.Requests[status]++
		}
	}

	for i := 0; i < s.opts.Parents; i++ {
		if err := s.users.Create(ctx, s.factory.Parent(hash)); err != nil {
			return nil, fmt.Errorf("create parent: %w", err)
		}
		sum.Parents++
	}

	middleware.Logger.InfoContext(ctx, "seed complete",
		slog.Int("organizations", sum.Organizations),
		slog.Int("parents", sum.Parents),
		slog.Int("approved", sum.Requests[models.RequestStatusApproved]),
		slog.Int("denied", sum.Requests[models.RequestStatusDenied]),
		slog.Int("pending", sum.Requests[models.RequestStatusPending]),
	)
	return sum, nil
}

// seedRequest submits one request and reviews it by position: half are
// approved, a quarter denied and the rest left pending.
func (s *Seeder) seedRequest(ctx context.Context, organizer, admin models.Actor, kind models.RequestKind, n int) (models.RequestStatus, error) {
	req, err := s.submit.Submit(ctx, organizer, kind, s.factory.Request(kind))
	if err != nil {
		return "", fmt.Errorf("submit %s: %w", kind, err)
	}

	in := service.ReviewInput{Kind: kind, ID: req.GetID()}
	switch n % 4 {
	case 0, 1:
		in.Status = models.RequestStatusApproved
	case 2:
		reason := "Please add more detail about who this is for."
		in.Status = models.RequestStatusDenied
		in.AdminReason = &reason
	default:
		return models.RequestStatusPending, nil
	}

	if _, err := s.review.Review(ctx, admin, in); err != nil {
		return "", fmt.Errorf("review %s %d: %w", kind, in.ID, err)
	}
	return in.Status, nil
}

func (s *Seeder) ensureAdmin(ctx context.Context, hash string) (*models.User, error) {
	email := s.opts.AdminEmail
	if email == "" {
		email = DefaultOptions().AdminEmail
	}
	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.Role != models.RoleAdmin {
			existing.Role = models.RoleAdmin
			if err := s.users.Update(ctx, existing); err != nil {
				return nil, err
			}
		}
		return existing, nil
	}

	admin := &models.User{Name: "Platform Admin", Email: email, Password: hash, Role: models.RoleAdmin}
	if err := s.users.Create(ctx, admin); err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}
	return admin, nil
}
