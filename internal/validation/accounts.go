package validation

import (
	"strings"

	"childrenlk/internal/models"
)

// SignupInput is a parent self-registration.
type SignupInput struct {
	Name     string `json:"name" validate:"required,notblank,max=120"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,password"`
}

// LoginInput is an email and password pair.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ForgotPasswordInput starts an OTP password reset.
type ForgotPasswordInput struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordInput completes an OTP password reset.
type ResetPasswordInput struct {
	Email       string `json:"email" validate:"required,email"`
	OTP         string `json:"otp" validate:"required,len=6,numeric"`
	NewPassword string `json:"newPassword" validate:"required,password"`
}

// OrganizationInput is an organization profile.
type OrganizationInput struct {
	Name         string `json:"name" validate:"required,notblank,max=200"`
	Description  string `json:"description" validate:"max=5000"`
	Logo         string `json:"logo" validate:"omitempty,httpurl"`
	ContactEmail string `json:"contactEmail" validate:"omitempty,email"`
	ContactPhone string `json:"contactPhone" validate:"required,lkphone"`
	Address      string `json:"address" validate:"max=500"`
	Website      string `json:"website" validate:"omitempty,httpurl"`
}

// Apply copies the profile onto org, leaving ownership untouched.
func (in OrganizationInput) Apply(org *models.Organization) {
	org.Name = strings.TrimSpace(in.Name)
	org.Description = strings.TrimSpace(in.Description)
	org.Logo = strings.TrimSpace(in.Logo)
	org.ContactEmail = NormalizeEmail(in.ContactEmail)
	org.ContactPhone = in.ContactPhone
	org.Address = strings.TrimSpace(in.Address)
	org.Website = strings.TrimSpace(in.Website)
}

// OrganizerInput is an admin onboarding an organizer with their organization.
type OrganizerInput struct {
	Name         string            `json:"name" validate:"required,notblank,max=120"`
	Email        string            `json:"email" validate:"required,email,max=255"`
	Organization OrganizationInput `json:"organization"`
}

// AnnouncementInput is an admin notice.
type AnnouncementInput struct {
	Title string `json:"title" validate:"required,notblank,max=200"`
	Body  string `json:"body" validate:"required,notblank,max=20000"`
}

// UploadInput is a base64 file forwarded to the media host.
type UploadInput struct {
	File         string `json:"file" validate:"required"`
	Folder       string `json:"folder" validate:"max=200"`
	ResourceType string `json:"resource_type" validate:"omitempty,oneof=image video raw auto"`
}

// DownloadInput records a document download.
type DownloadInput struct {
	ResourceID       uint   `json:"resourceId" validate:"required,gt=0"`
	DocumentPublicID string `json:"documentPublicId" validate:"required,notblank"`
}

// NormalizeEmail trims and lower-cases an address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
