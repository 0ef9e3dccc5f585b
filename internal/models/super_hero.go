package models

import (
	"time"

	"gorm.io/datatypes"
)

// SuperHeroPayload is shared by SuperHeroRequest and SuperHero. Super heroes
// carry no audience metadata.
type SuperHeroPayload struct {
	Name             string                         `gorm:"size:200;not null" json:"name"`
	Icon             datatypes.JSONType[Attachment] `json:"icon"`
	Phone            string                         `gorm:"size:20;not null" json:"phone"`
	ShortDescription string                         `gorm:"size:500;not null" json:"shortDescription"`
	Description      string                         `gorm:"type:text" json:"description"`
	Tags             datatypes.JSONSlice[string]    `json:"tags"`
}

// SuperHeroRequest is an organizer submission for a super hero profile.
type SuperHeroRequest struct {
	ID uint `gorm:"primaryKey" json:"id"`
	ReviewState
	SuperHeroPayload
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name for GORM.
func (SuperHeroRequest) TableName() string { return "super_hero_requests" }

func (r *SuperHeroRequest) GetID() uint { return r.ID }

func (r *SuperHeroRequest) TagList() []string { return r.Tags }

func (r *SuperHeroRequest) Publish() any {
	return &SuperHero{
		RequestID:        r.ID,
		OrganizationID:   r.OrganizationID,
		SuperHeroPayload: r.SuperHeroPayload,
	}
}

// SuperHero is the public copy of an approved SuperHeroRequest.
type SuperHero struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	RequestID      uint `gorm:"not null;uniqueIndex" json:"requestId"`
	OrganizationID uint `gorm:"not null;index" json:"organizationId"`
	SuperHeroPayload
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name for GORM.
func (SuperHero) TableName() string { return "super_heroes" }
