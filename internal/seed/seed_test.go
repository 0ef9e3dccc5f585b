package seed

import (
	"context"
	"strings"
	"testing"

	"childrenlk/internal/models"
	"childrenlk/internal/testutil"
	"childrenlk/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactory_BuildsValidRequests(t *testing.T) {
	f := NewFactory(42)
	for _, kind := range models.RequestKinds {
		for i := 0; i < 20; i++ {
			req := f.Request(kind)
			require.NotNil(t, req, kind)
			assert.NotEmpty(t, req.TagList(), kind)
			assert.Equal(t, models.RequestStatus(""), req.State().Status)
		}
	}
}

func TestFactory_Phone(t *testing.T) {
	f := NewFactory(7)
	for i := 0; i < 50; i++ {
		p := f.Phone()
		assert.True(t, validation.IsValidPhone(p), p)
	}
}

func TestFactory_AudienceAgeGroupOnlyForChildren(t *testing.T) {
	f := NewFactory(3)
	for i := 0; i < 50; i++ {
		a := f.audience()
		if a.TargetAudience == models.AudienceChildren {
			require.NotNil(t, a.AgeGroup)
			assert.True(t, a.AgeGroup.Valid())
		} else {
			assert.Nil(t, a.AgeGroup)
		}
	}
}

func TestSeeder_Run(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	opts := DefaultOptions()
	opts.Organizations = 2
	opts.RequestsPerOrg = 8
	opts.Parents = 3
	opts.RandomSeed = 1

	sum, err := NewSeeder(db, opts).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Organizations)
	assert.Equal(t, 3, sum.Parents)
	assert.Equal(t, 8, sum.Requests[models.RequestStatusApproved])
	assert.Equal(t, 4, sum.Requests[models.RequestStatusDenied])
	assert.Equal(t, 4, sum.Requests[models.RequestStatusPending])

	var orgs, parents, admins int64
	require.NoError(t, db.Model(&models.Organization{}).Count(&orgs).Error)
	require.NoError(t, db.Model(&models.User{}).Where("role = ?", models.RoleParent).Count(&parents).Error)
	require.NoError(t, db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&admins).Error)
	assert.EqualValues(t, 2, orgs)
	assert.EqualValues(t, 3, parents)
	assert.EqualValues(t, 1, admins)

	// Approvals land on the resource and media slots; events are denied.
	var resources, media, events int64
	require.NoError(t, db.Model(&models.Resource{}).Count(&resources).Error)
	require.NoError(t, db.Model(&models.Media{}).Count(&media).Error)
	require.NoError(t, db.Model(&models.Event{}).Count(&events).Error)
	assert.EqualValues(t, 4, resources)
	assert.EqualValues(t, 4, media)
	assert.EqualValues(t, 0, events)

	var denied []models.EventRequest
	require.NoError(t, db.Where("status = ?", models.RequestStatusDenied).Find(&denied).Error)
	require.Len(t, denied, 4)
	for _, d := range denied {
		assert.NotEmpty(t, d.AdminReasonOrEmpty())
		assert.NotNil(t, d.ReviewedAt)
	}

	var tags int64
	require.NoError(t, db.Model(&models.Tag{}).Count(&tags).Error)
	assert.Positive(t, tags)
}

func TestSeeder_RunTwiceWithClean(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	opts := DefaultOptions()
	opts.Organizations = 1
	opts.RequestsPerOrg = 4
	opts.Parents = 1

	_, err := NewSeeder(db, opts).Run(ctx)
	require.NoError(t, err)
	_, err = NewSeeder(db, opts).Run(ctx)
	require.NoError(t, err)

	var users []models.User
	require.NoError(t, db.Find(&users).Error)
	assert.Len(t, users, 3)
	for _, u := range users {
		assert.False(t, strings.Contains(u.Password, DefaultPassword), "password stored hashed")
	}
}
