package repository

import (
	"childrenlk/internal/models"

	"gorm.io/gorm"
)

// OrganizationScope restricts a query over organizer-owned rows to what actor
// may see: admins see every organization, organizers only their own, anyone
// else nothing. Rows outside the scope are indistinguishable from missing rows.
func OrganizationScope(actor models.Actor) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch {
		case actor.IsAdmin():
			return db
		case actor.IsOrganizer():
			return db.Where("organization_id = ?", *actor.OrganizationID)
		default:
			return db.Where("1 = 0")
		}
	}
}

// Paginate applies limit and offset when limit is positive.
func Paginate(limit, offset int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if limit > 0 {
			db = db.Limit(limit)
		}
		if offset > 0 {
			db = db.Offset(offset)
		}
		return db
	}
}
