package database

import "childrenlk/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
// Order matters for AutoMigrate: referenced tables come first.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Organization{},
		&models.ResourceRequest{},
		&models.MediaRequest{},
		&models.EventRequest{},
		&models.SuperHeroRequest{},
		&models.Resource{},
		&models.Media{},
		&models.Event{},
		&models.SuperHero{},
		&models.Tag{},
		&models.DocumentDownloadCount{},
		&models.Announcement{},
	}
}
