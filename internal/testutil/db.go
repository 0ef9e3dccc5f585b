// Package testutil provides shared test doubles and fixtures for backend tests.
package testutil

import (
	"testing"

	"childrenlk/internal/database"
	"childrenlk/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens an in-memory sqlite database with the full schema. The pool
// is pinned to one connection because every sqlite :memory: connection is a
// separate database.
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sqlite handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(database.PersistentModels()...); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db
}

// CreateUser inserts a user with the given role. Password is stored as-is.
func CreateUser(t testing.TB, db *gorm.DB, email string, role models.Role) *models.User {
	t.Helper()
	u := &models.User{Name: email, Email: email, Password: "x", Role: role}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

// CreateOrganizer inserts an organizer and the organization they own.
func CreateOrganizer(t testing.TB, db *gorm.DB, email, orgName string) (*models.User, *models.Organization) {
	t.Helper()
	u := CreateUser(t, db, email, models.RoleOrganizer)
	org := &models.Organization{OwnerUserID: u.ID, Name: orgName, ContactPhone: "+94771234567"}
	if err := db.Create(org).Error; err != nil {
		t.Fatalf("create organization: %v", err)
	}
	return u, org
}

// AdminActor returns an admin actor for id.
func AdminActor(id uint) models.Actor {
	return models.Actor{UserID: id, Role: models.RoleAdmin}
}

// OrganizerActor returns an organizer actor for the owner of org.
func OrganizerActor(org *models.Organization) models.Actor {
	id := org.ID
	return models.Actor{UserID: org.OwnerUserID, Role: models.RoleOrganizer, OrganizationID: &id}
}
