// Package models contains data structures for the application's domain models.
package models

import "time"

// Role is the single role a user account holds.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleOrganizer Role = "organizer"
	RoleParent    Role = "parent"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleOrganizer, RoleParent:
		return true
	}
	return false
}

// User is an account of any role. Organizers own exactly one Organization.
type User struct {
	ID           uint          `gorm:"primaryKey" json:"id"`
	Name         string        `gorm:"size:120;not null" json:"name"`
	Email        string        `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password     string        `gorm:"not null" json:"-"`
	Role         Role          `gorm:"type:varchar(20);not null;default:'parent';index" json:"role"`
	Phone        string        `gorm:"size:20" json:"phone,omitempty"`
	OTPCode      *string       `gorm:"column:otp_code;size:6" json:"-"`
	OTPExpiresAt *time.Time    `gorm:"column:otp_expires_at" json:"-"`
	Organization *Organization `gorm:"foreignKey:OwnerUserID" json:"organization,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }
