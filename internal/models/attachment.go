package models

// AttachmentType classifies a hosted file.
type AttachmentType string

const (
	AttachmentPDF   AttachmentType = "pdf"
	AttachmentVideo AttachmentType = "video"
	AttachmentAudio AttachmentType = "audio"
	AttachmentImage AttachmentType = "image"
	AttachmentDOCX  AttachmentType = "docx"
	AttachmentPPT   AttachmentType = "ppt"
)

// Attachment references a file stored on the media host.
type Attachment struct {
	URL      string         `json:"url"`
	PublicID string         `json:"publicId"`
	Type     AttachmentType `json:"type"`
}

// TargetAudience is who a submission is meant for.
type TargetAudience string

const (
	AudienceChildren              TargetAudience = "children"
	AudiencePeopleWorkForChildren TargetAudience = "people_work_for_children"
)

// AgeGroup narrows a children-targeted submission.
type AgeGroup string

const (
	AgeGroup1To5    AgeGroup = "1-5"
	AgeGroup5To10   AgeGroup = "5-10"
	AgeGroup11To15  AgeGroup = "11-15"
	AgeGroup15To18  AgeGroup = "15-18"
	AgeGroupAbove18 AgeGroup = "above-18"
)

// Audience is embedded by every payload that carries audience metadata.
// AgeGroup is only kept when TargetAudience is children.
type Audience struct {
	TargetAudience TargetAudience `gorm:"type:varchar(40);not null;index" json:"targetAudience"`
	AgeGroup       *AgeGroup      `gorm:"type:varchar(10);index" json:"ageGroup,omitempty"`
}

// Valid reports whether a is a known audience.
func (a TargetAudience) Valid() bool {
	return a == AudienceChildren || a == AudiencePeopleWorkForChildren
}

// Valid reports whether g is a known age group.
func (g AgeGroup) Valid() bool {
	switch g {
	case AgeGroup1To5, AgeGroup5To10, AgeGroup11To15, AgeGroup15To18, AgeGroupAbove18:
		return true
	}
	return false
}
