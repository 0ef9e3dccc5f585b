package models

import "time"

// Organization is the tenant unit that scopes every organizer-visible request.
type Organization struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	OwnerUserID  uint      `gorm:"not null;uniqueIndex" json:"ownerUserId"`
	Name         string    `gorm:"size:200;not null" json:"name"`
	Description  string    `gorm:"type:text" json:"description"`
	Logo         string    `gorm:"size:500" json:"logo"`
	ContactEmail string    `gorm:"size:255" json:"contactEmail"`
	ContactPhone string    `gorm:"size:20" json:"contactPhone"`
	Address      string    `gorm:"size:500" json:"address"`
	Website      string    `gorm:"size:500" json:"website"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
