package models

import (
	"time"

	"gorm.io/datatypes"
)

// EventPayload is shared by EventRequest and Event.
type EventPayload struct {
	Name        string                          `gorm:"size:200;not null" json:"name"`
	Location    string                          `gorm:"size:500;not null" json:"location"`
	StartDate   time.Time                       `gorm:"not null;index" json:"startDate"`
	EndDate     *time.Time                      `json:"endDate,omitempty"`
	Description string                          `gorm:"type:text;not null" json:"description"`
	Images      datatypes.JSONSlice[Attachment] `json:"images"`
	Tags        datatypes.JSONSlice[string]     `json:"tags"`
	Audience
}

// EventRequest is an organizer submission for a scheduled event.
type EventRequest struct {
	ID uint `gorm:"primaryKey" json:"id"`
	ReviewState
	EventPayload
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name for GORM.
func (EventRequest) TableName() string { return "event_requests" }

func (r *EventRequest) GetID() uint { return r.ID }

func (r *EventRequest) TagList() []string { return r.Tags }

func (r *EventRequest) Publish() any {
	return &Event{
		RequestID:      r.ID,
		OrganizationID: r.OrganizationID,
		EventPayload:   r.EventPayload,
	}
}

// Event is the public copy of an approved EventRequest.
type Event struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	RequestID      uint `gorm:"not null;uniqueIndex" json:"requestId"`
	OrganizationID uint `gorm:"not null;index" json:"organizationId"`
	EventPayload
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name for GORM.
func (Event) TableName() string { return "events" }
