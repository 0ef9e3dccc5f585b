package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"childrenlk/internal/models"
	"childrenlk/internal/repository"
	"childrenlk/internal/testutil"
	"childrenlk/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func organizerInput() validation.OrganizerInput {
	return validation.OrganizerInput{
		Name:  "Kumari Perera",
		Email: "Kumari@Sunshine.lk",
		Organization: validation.OrganizationInput{
			Name:         "Sunshine Preschool",
			ContactEmail: "info@sunshine.lk",
			ContactPhone: "+94771234567",
			Address:      "12 Galle Road, Colombo",
		},
	}
}

func TestOrganizerService_OnboardSendsWorkingCredentials(t *testing.T) {
	db := testutil.NewTestDB(t)
	mail := &testutil.MailerStub{}
	orgs := repository.NewOrganizationRepository(db)
	svc := NewOrganizerService(orgs, mail, "https://children.lk/")
	auth := NewAuthService(repository.NewUserRepository(db), orgs, mail, 10*time.Minute)
	ctx := context.Background()

	user, err := svc.Onboard(ctx, testutil.AdminActor(1), organizerInput())
	require.NoError(t, err)
	assert.Equal(t, models.RoleOrganizer, user.Role)
	assert.Equal(t, "kumari@sunshine.lk", user.Email)
	require.NotNil(t, user.Organization)
	assert.Equal(t, user.ID, user.Organization.OwnerUserID)

	msg, ok := mail.Last()
	require.True(t, ok)
	assert.Contains(t, msg.Text, "https://children.lk/login")
	var password string
	for _, line := range strings.Split(msg.Text, "\n") {
		if strings.HasPrefix(line, "Password: ") {
			password = strings.TrimPrefix(line, "Password: ")
		}
	}
	require.NotEmpty(t, password)

	loggedIn, err := auth.Login(ctx, validation.LoginInput{Email: "kumari@sunshine.lk", Password: password})
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
}

func TestOrganizerService_EmailFailureIsNotFatal(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewOrganizerService(repository.NewOrganizationRepository(db), &testutil.MailerStub{Err: assert.AnError}, "http://localhost:5173")

	user, err := svc.Onboard(context.Background(), testutil.AdminActor(1), organizerInput())
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
}

func TestOrganizerService_AccessRules(t *testing.T) {
	db := testutil.NewTestDB(t)
	_, org := testutil.CreateOrganizer(t, db, "org@example.com", "Little Steps")
	svc := NewOrganizerService(repository.NewOrganizationRepository(db), &testutil.MailerStub{}, "")
	ctx := context.Background()
	organizer := testutil.OrganizerActor(org)

	_, err := svc.Onboard(ctx, organizer, organizerInput())
	requireCode(t, err, models.CodeUnauthorized)
	_, _, err = svc.ListOrganizations(ctx, organizer, 10, 0)
	requireCode(t, err, models.CodeUnauthorized)
	_, err = svc.OwnOrganization(ctx, testutil.AdminActor(1))
	requireCode(t, err, models.CodeUnauthorized)

	updated, err := svc.UpdateOwnOrganization(ctx, organizer, validation.OrganizationInput{
		Name: "Little Steps Trust", ContactPhone: "+94112345678", Website: "https://littlesteps.lk",
	})
	require.NoError(t, err)
	assert.Equal(t, "Little Steps Trust", updated.Name)
	assert.Equal(t, org.OwnerUserID, updated.OwnerUserID)

	list, total, err := svc.ListOrganizations(ctx, testutil.AdminActor(1), 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Little Steps Trust", list[0].Name)

	_, err = svc.GetOrganization(ctx, testutil.AdminActor(1), 999)
	requireCode(t, err, models.CodeNotFound)
}
