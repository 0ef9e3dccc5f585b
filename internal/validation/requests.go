package validation

import (
	"net/url"
	"strings"
	"time"

	"childrenlk/internal/models"

	"github.com/go-playground/validator/v10"
	"gorm.io/datatypes"
)

const (
	textContentTag = "text_content"
	filesTag       = "media_files"
	endDateTag     = "end_date"
)

// AttachmentInput is a file already stored on the media host.
type AttachmentInput struct {
	URL      string                `json:"url" validate:"required,httpurl"`
	PublicID string                `json:"publicId" validate:"required,notblank,max=255"`
	Type     models.AttachmentType `json:"type" validate:"required,oneof=pdf video audio image docx ppt"`
}

func (a AttachmentInput) model() models.Attachment {
	return models.Attachment{
		URL:      strings.TrimSpace(a.URL),
		PublicID: strings.TrimSpace(a.PublicID),
		Type:     a.Type,
	}
}

// MediaFileInput is a media file. Its type is implied by the submission's
// content type, so any declared type is ignored.
type MediaFileInput struct {
	URL      string                `json:"url" validate:"required,httpurl"`
	PublicID string                `json:"publicId" validate:"required,notblank,max=255"`
	Type     models.AttachmentType `json:"type,omitempty"`
}

func attachments(in []AttachmentInput) datatypes.JSONSlice[models.Attachment] {
	out := make([]models.Attachment, 0, len(in))
	for _, a := range in {
		out = append(out, a.model())
	}
	return out
}

// AudienceInput is embedded by the inputs of kinds that carry audience metadata.
type AudienceInput struct {
	TargetAudience models.TargetAudience `json:"targetAudience" validate:"required,oneof=children people_work_for_children"`
	AgeGroup       *models.AgeGroup      `json:"ageGroup" validate:"omitempty,oneof=1-5 5-10 11-15 15-18 above-18"`
}

// Audience drops the age group unless the audience is children.
func (a AudienceInput) Audience() models.Audience {
	out := models.Audience{TargetAudience: a.TargetAudience}
	if a.TargetAudience == models.AudienceChildren && a.AgeGroup != nil {
		ag := *a.AgeGroup
		out.AgeGroup = &ag
	}
	return out
}

// ResourceInput is the body of a resource request submission.
type ResourceInput struct {
	Name             string            `json:"name" validate:"required,notblank,max=200"`
	ShortDescription string            `json:"shortDescription" validate:"required,notblank,max=500"`
	Description      string            `json:"description" validate:"max=20000"`
	Documents        []AttachmentInput `json:"documents" validate:"omitempty,max=20,dive"`
	Tags             []string          `json:"tags" validate:"omitempty,max=20,dive,max=64"`
	AudienceInput
}

// Payload converts a validated input into the stored payload.
func (in ResourceInput) Payload() models.ResourcePayload {
	return models.ResourcePayload{
		Name:             strings.TrimSpace(in.Name),
		ShortDescription: strings.TrimSpace(in.ShortDescription),
		Description:      strings.TrimSpace(in.Description),
		Documents:        attachments(in.Documents),
		Tags:             models.NormalizeTags(in.Tags),
		Audience:         in.Audience(),
	}
}

// MediaInput is the body of a media request submission.
type MediaInput struct {
	Name        string                  `json:"name" validate:"required,notblank,max=200"`
	Description string                  `json:"description" validate:"required,notblank,max=20000"`
	ContentType models.MediaContentType `json:"contentType" validate:"required,oneof=article poem image video audio"`
	TextContent string                  `json:"textContent" validate:"max=100000"`
	Files       []MediaFileInput        `json:"files" validate:"omitempty,max=20,dive"`
	Tags        []string                `json:"tags" validate:"omitempty,max=20,dive,max=64"`
	AudienceInput
}

func mediaStructValidation(sl validator.StructLevel) {
	in, ok := sl.Current().Interface().(MediaInput)
	if !ok || in.ContentType == "" {
		return
	}

	if in.ContentType.IsText() {
		if strings.TrimSpace(in.TextContent) == "" {
			sl.ReportError(in.TextContent, "textContent", "TextContent", textContentTag, "")
		}
		return
	}

	if len(in.Files) == 0 {
		sl.ReportError(in.Files, "files", "Files", filesTag, "")
	}
}

// Payload converts a validated input into the stored payload. Text content
// carries no files and file content carries no text. Every file is typed by
// the content type.
func (in MediaInput) Payload() models.MediaPayload {
	p := models.MediaPayload{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		ContentType: in.ContentType,
		Files:       datatypes.JSONSlice[models.Attachment]{},
		Tags:        models.NormalizeTags(in.Tags),
		Audience:    in.Audience(),
	}
	if in.ContentType.IsText() {
		p.TextContent = strings.TrimSpace(in.TextContent)
		return p
	}
	fileType := in.ContentType.AttachmentType()
	p.Files = make(datatypes.JSONSlice[models.Attachment], 0, len(in.Files))
	for _, f := range in.Files {
		p.Files = append(p.Files, models.Attachment{
			URL:      strings.TrimSpace(f.URL),
			PublicID: strings.TrimSpace(f.PublicID),
			Type:     fileType,
		})
	}
	return p
}

// EventInput is the body of an event request submission.
type EventInput struct {
	Name        string            `json:"name" validate:"required,notblank,max=200"`
	Location    string            `json:"location" validate:"required,notblank,max=500"`
	StartDate   *time.Time        `json:"startDate" validate:"required"`
	EndDate     *time.Time        `json:"endDate"`
	Description string            `json:"description" validate:"required,notblank,max=20000"`
	Images      []AttachmentInput `json:"images" validate:"omitempty,max=20,dive"`
	Tags        []string          `json:"tags" validate:"omitempty,max=20,dive,max=64"`
	AudienceInput
}

func eventStructValidation(sl validator.StructLevel) {
	in, ok := sl.Current().Interface().(EventInput)
	if !ok || in.StartDate == nil || in.EndDate == nil {
		return
	}
	if in.EndDate.Before(*in.StartDate) {
		sl.ReportError(in.EndDate, "endDate", "EndDate", endDateTag, "")
	}
}

// Payload converts a validated input into the stored payload.
func (in EventInput) Payload() models.EventPayload {
	p := models.EventPayload{
		Name:        strings.TrimSpace(in.Name),
		Location:    strings.TrimSpace(in.Location),
		StartDate:   in.StartDate.UTC(),
		Description: strings.TrimSpace(in.Description),
		Images:      attachments(in.Images),
		Tags:        models.NormalizeTags(in.Tags),
		Audience:    in.Audience(),
	}
	if in.EndDate != nil {
		end := in.EndDate.UTC()
		p.EndDate = &end
	}
	return p
}

// SuperHeroInput is the body of a super hero request submission.
type SuperHeroInput struct {
	Name             string           `json:"name" validate:"required,notblank,max=200"`
	Icon             *AttachmentInput `json:"icon" validate:"required"`
	Phone            string           `json:"phone" validate:"required,lkphone"`
	ShortDescription string           `json:"shortDescription" validate:"required,notblank,max=500"`
	Description      string           `json:"description" validate:"max=20000"`
	Tags             []string         `json:"tags" validate:"omitempty,max=20,dive,max=64"`
}

// Payload converts a validated input into the stored payload.
func (in SuperHeroInput) Payload() models.SuperHeroPayload {
	return models.SuperHeroPayload{
		Name:             strings.TrimSpace(in.Name),
		Icon:             datatypes.NewJSONType(in.Icon.model()),
		Phone:            in.Phone,
		ShortDescription: strings.TrimSpace(in.ShortDescription),
		Description:      strings.TrimSpace(in.Description),
		Tags:             models.NormalizeTags(in.Tags),
	}
}

// ReviewInput is the body of an admin review.
type ReviewInput struct {
	Status      models.RequestStatus `json:"status"`
	AdminReason *string              `json:"adminReason"`
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
