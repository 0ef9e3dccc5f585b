package models

import (
	"time"

	"gorm.io/datatypes"
)

// ResourcePayload is the descriptive part of a resource, shared by the
// request and its published copy.
type ResourcePayload struct {
	Name             string                          `gorm:"size:200;not null" json:"name"`
	ShortDescription string                          `gorm:"size:500;not null" json:"shortDescription"`
	Description      string                          `gorm:"type:text" json:"description"`
	Documents        datatypes.JSONSlice[Attachment] `json:"documents"`
	Tags             datatypes.JSONSlice[string]     `json:"tags"`
	Audience
}

// ResourceRequest is an organizer submission for a downloadable resource.
type ResourceRequest struct {
	ID uint `gorm:"primaryKey" json:"id"`
	ReviewState
	ResourcePayload
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name for GORM.
func (ResourceRequest) TableName() string { return "resource_requests" }

func (r *ResourceRequest) GetID() uint { return r.ID }

func (r *ResourceRequest) TagList() []string { return r.Tags }

func (r *ResourceRequest) Publish() any {
	return &Resource{
		RequestID:       r.ID,
		OrganizationID:  r.OrganizationID,
		ResourcePayload: r.ResourcePayload,
	}
}

// Resource is the public copy of an approved ResourceRequest.
type Resource struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	RequestID      uint `gorm:"not null;uniqueIndex" json:"requestId"`
	OrganizationID uint `gorm:"not null;index" json:"organizationId"`
	ResourcePayload
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name for GORM.
func (Resource) TableName() string { return "resources" }

// HasDocument reports whether publicID names one of the resource's documents.
func (r *Resource) HasDocument(publicID string) bool {
	for _, d := range r.Documents {
		if d.PublicID == publicID {
			return true
		}
	}
	return false
}
