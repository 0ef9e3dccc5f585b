package models

import (
	"strings"
	"time"
)

// RequestStatus defines lifecycle states for organizer submissions.
type RequestStatus string

const (
	// RequestStatusPending indicates the request is awaiting review.
	RequestStatusPending RequestStatus = "pending"
	// RequestStatusApproved indicates the request was accepted and published.
	RequestStatusApproved RequestStatus = "approved"
	// RequestStatusDenied indicates the request was declined with a reason.
	RequestStatusDenied RequestStatus = "denied"
)

// IsDecision reports whether s is a status a review may move a request to.
func (s RequestStatus) IsDecision() bool {
	return s == RequestStatusApproved || s == RequestStatusDenied
}

// ReviewState is embedded by every request variant. Status leaves pending
// exactly once; AdminReason, ReviewedAt and ReviewedByUserID are written in
// the same update.
type ReviewState struct {
	OrganizationID   uint          `gorm:"not null;index" json:"organizationId"`
	Status           RequestStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	AdminReason      *string       `gorm:"type:text" json:"adminReason,omitempty"`
	ReviewedAt       *time.Time    `json:"reviewedAt,omitempty"`
	ReviewedByUserID *uint         `json:"reviewedBy,omitempty"`
}

// State exposes the embedded review state.
func (r *ReviewState) State() *ReviewState { return r }

// Request is implemented by the four request variants.
type Request interface {
	GetID() uint
	State() *ReviewState
	// Publish builds the published entity carrying this request's payload.
	Publish() any
	// TagList returns the free-text tags the request introduces.
	TagList() []string
}

// RequestKind names one of the four request families.
type RequestKind string

const (
	KindResource  RequestKind = "resource"
	KindMedia     RequestKind = "media"
	KindEvent     RequestKind = "event"
	KindSuperHero RequestKind = "super-hero"
)

// RequestKinds lists every kind in display order.
var RequestKinds = []RequestKind{KindResource, KindMedia, KindEvent, KindSuperHero}

// ParseRequestKind resolves a path segment like "super-hero" to its kind.
func ParseRequestKind(s string) (RequestKind, bool) {
	k := RequestKind(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case KindResource, KindMedia, KindEvent, KindSuperHero:
		return k, true
	}
	return "", false
}

// Label is the human-readable name used in error messages.
func (k RequestKind) Label() string {
	switch k {
	case KindResource:
		return "Resource request"
	case KindMedia:
		return "Media request"
	case KindEvent:
		return "Event request"
	case KindSuperHero:
		return "Super hero request"
	}
	return "Request"
}

// PublishedLabel is the human-readable name of the published entity.
func (k RequestKind) PublishedLabel() string {
	switch k {
	case KindResource:
		return "Resource"
	case KindMedia:
		return "Media"
	case KindEvent:
		return "Event"
	case KindSuperHero:
		return "Super hero"
	}
	return "Entity"
}

// NewRequest returns an empty request of this kind.
func (k RequestKind) NewRequest() Request {
	switch k {
	case KindResource:
		return &ResourceRequest{}
	case KindMedia:
		return &MediaRequest{}
	case KindEvent:
		return &EventRequest{}
	case KindSuperHero:
		return &SuperHeroRequest{}
	}
	return nil
}

// NewRequestList returns a pointer to an empty slice of requests of this kind.
func (k RequestKind) NewRequestList() any {
	switch k {
	case KindResource:
		return &[]ResourceRequest{}
	case KindMedia:
		return &[]MediaRequest{}
	case KindEvent:
		return &[]EventRequest{}
	case KindSuperHero:
		return &[]SuperHeroRequest{}
	}
	return nil
}

// NewPublished returns an empty published entity of this kind.
func (k RequestKind) NewPublished() any {
	switch k {
	case KindResource:
		return &Resource{}
	case KindMedia:
		return &Media{}
	case KindEvent:
		return &Event{}
	case KindSuperHero:
		return &SuperHero{}
	}
	return nil
}

// NewPublishedList returns a pointer to an empty slice of published entities.
func (k RequestKind) NewPublishedList() any {
	switch k {
	case KindResource:
		return &[]Resource{}
	case KindMedia:
		return &[]Media{}
	case KindEvent:
		return &[]Event{}
	case KindSuperHero:
		return &[]SuperHero{}
	}
	return nil
}

// HasAudience reports whether published entities of this kind carry
// target-audience metadata.
func (k RequestKind) HasAudience() bool {
	return k != KindSuperHero
}

// AdminReasonOrEmpty dereferences the reason for display.
func (r *ReviewState) AdminReasonOrEmpty() string {
	if r.AdminReason == nil {
		return ""
	}
	return *r.AdminReason
}

// Plural is the path segment of the public collection, e.g. "super-heroes".
func (k RequestKind) Plural() string {
	switch k {
	case KindResource:
		return "resources"
	case KindMedia:
		return "media"
	case KindEvent:
		return "events"
	case KindSuperHero:
		return "super-heroes"
	}
	return ""
}
