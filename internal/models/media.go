package models

import (
	"time"

	"gorm.io/datatypes"
)

// MediaContentType selects how a media submission is interpreted.
type MediaContentType string

const (
	MediaArticle MediaContentType = "article"
	MediaPoem    MediaContentType = "poem"
	MediaImage   MediaContentType = "image"
	MediaVideo   MediaContentType = "video"
	MediaAudio   MediaContentType = "audio"
)

// IsText reports whether the content is carried as text rather than files.
func (t MediaContentType) IsText() bool {
	return t == MediaArticle || t == MediaPoem
}

// AttachmentType is the file classification implied by a file-backed content type.
func (t MediaContentType) AttachmentType() AttachmentType {
	switch t {
	case MediaVideo:
		return AttachmentVideo
	case MediaAudio:
		return AttachmentAudio
	default:
		return AttachmentImage
	}
}

// MediaPayload is shared by MediaRequest and Media.
type MediaPayload struct {
	Name        string                          `gorm:"size:200;not null" json:"name"`
	Description string                          `gorm:"type:text;not null" json:"description"`
	ContentType MediaContentType                `gorm:"type:varchar(20);not null;index" json:"contentType"`
	TextContent string                          `gorm:"type:text" json:"textContent,omitempty"`
	Files       datatypes.JSONSlice[Attachment] `json:"files"`
	Tags        datatypes.JSONSlice[string]     `json:"tags"`
	Audience
}

// MediaRequest is an organizer submission for an article, poem or media file.
type MediaRequest struct {
	ID uint `gorm:"primaryKey" json:"id"`
	ReviewState
	MediaPayload
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name for GORM.
func (MediaRequest) TableName() string { return "media_requests" }

func (r *MediaRequest) GetID() uint { return r.ID }

func (r *MediaRequest) TagList() []string { return r.Tags }

func (r *MediaRequest) Publish() any {
	return &Media{
		RequestID:      r.ID,
		OrganizationID: r.OrganizationID,
		MediaPayload:   r.MediaPayload,
	}
}

// Media is the public copy of an approved MediaRequest.
type Media struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	RequestID      uint `gorm:"not null;uniqueIndex" json:"requestId"`
	OrganizationID uint `gorm:"not null;index" json:"organizationId"`
	MediaPayload
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name for GORM.
func (Media) TableName() string { return "media" }
