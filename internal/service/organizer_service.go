package service

import (
	"context"
	"log/slog"
	"strings"

	"childrenlk/internal/mailer"
	"childrenlk/internal/middleware"
	"childrenlk/internal/models"
	"childrenlk/internal/observability"
	"childrenlk/internal/repository"
	"childrenlk/internal/validation"
)

const generatedPasswordLength = 12

// OrganizerService onboards organizers and manages organization profiles.
type OrganizerService struct {
	orgRepo  repository.OrganizationRepository
	mail     mailer.Mailer
	loginURL string
}

// NewOrganizerService returns a new OrganizerService. frontendBaseURL is used
// to build the login link in credential emails.
func NewOrganizerService(orgRepo repository.OrganizationRepository, mail mailer.Mailer, frontendBaseURL string) *OrganizerService {
	return &OrganizerService{
		orgRepo:  orgRepo,
		mail:     mail,
		loginURL: strings.TrimSuffix(frontendBaseURL, "/") + "/login",
	}
}

// Onboard creates an organizer account with a generated password together
// with its organization, then emails the credentials. The email is best
// effort.
func (s *OrganizerService) Onboard(ctx context.Context, actor models.Actor, in validation.OrganizerInput) (*models.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	password, err := GeneratePassword(generatedPasswordLength)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     strings.TrimSpace(in.Name),
		Email:    validation.NormalizeEmail(in.Email),
		Password: hash,
		Role:     models.RoleOrganizer,
		Phone:    in.Organization.ContactPhone,
	}
	org := &models.Organization{}
	in.Organization.Apply(org)

	if err := s.orgRepo.CreateWithOwner(ctx, user, org); err != nil {
		return nil, err
	}
	user.Organization = org

	s.sendCredentials(ctx, user, org, password)
	return user, nil
}

func (s *OrganizerService) sendCredentials(ctx context.Context, user *models.User, org *models.Organization, password string) {
	msg, err := mailer.CredentialsMessage(user.Email, user.Name, mailer.CredentialsData{
		Name:             user.Name,
		OrganizationName: org.Name,
		Email:            user.Email,
		Password:         password,
		LoginURL:         s.loginURL,
	})
	if err == nil {
		err = s.mail.Send(ctx, msg)
	}
	if err != nil {
		observability.EmailFailures.WithLabelValues(mailer.TemplateCredentials).Inc()
		middleware.Logger.ErrorContext(ctx, "failed to send organizer credentials",
			slog.Uint64("user_id", uint64(user.ID)),
			slog.String("error", err.Error()),
		)
	}
}

// OwnOrganization returns the organization of an organizer.
func (s *OrganizerService) OwnOrganization(ctx context.Context, actor models.Actor) (*models.Organization, error) {
	if !actor.IsOrganizer() {
		return nil, models.NewUnauthorizedError("Organizer access required")
	}
	return s.orgRepo.GetByID(ctx, *actor.OrganizationID)
}

// UpdateOwnOrganization replaces the organizer's organization profile.
func (s *OrganizerService) UpdateOwnOrganization(ctx context.Context, actor models.Actor, in validation.OrganizationInput) (*models.Organization, error) {
	org, err := s.OwnOrganization(ctx, actor)
	if err != nil {
		return nil, err
	}
	in.Apply(org)
	if err := s.orgRepo.Update(ctx, org); err != nil {
		return nil, err
	}
	return org, nil
}

// ListOrganizations pages through every organization.
func (s *OrganizerService) ListOrganizations(ctx context.Context, actor models.Actor, limit, offset int) ([]models.Organization, int64, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, 0, err
	}
	return s.orgRepo.List(ctx, limit, offset)
}

// GetOrganization returns one organization.
func (s *OrganizerService) GetOrganization(ctx context.Context, actor models.Actor, id uint) (*models.Organization, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.orgRepo.GetByID(ctx, id)
}
