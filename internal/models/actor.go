package models

// Actor is the authenticated caller of an operation. OrganizationID is set
// only for organizers that own an organization.
type Actor struct {
	UserID         uint
	Role           Role
	OrganizationID *uint
}

// Anonymous is the actor for unauthenticated public reads.
var Anonymous = Actor{}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// IsOrganizer reports whether the actor is an organizer with an organization.
func (a Actor) IsOrganizer() bool { return a.Role == RoleOrganizer && a.OrganizationID != nil }
