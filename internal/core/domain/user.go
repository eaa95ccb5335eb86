package domain

import "time"

// Roles as reported by the library backend.
const (
	RoleUser  = "USER"
	RoleStaff = "STAFF"
	RoleAdmin = "ADMIN"
)

// Membership describes a user's paid membership window.
type Membership struct {
	MembershipType string     `json:"membershipType"`
	StartDate      *time.Time `json:"startDate,omitempty"`
	ExpiryDate     *time.Time `json:"expiryDate,omitempty"`
}

// Active reports whether the membership covers the given instant.
func (m *Membership) Active(now time.Time) bool {
	if m == nil || m.ExpiryDate == nil {
		return false
	}
	return m.ExpiryDate.After(now)
}

// User mirrors the backend's user record. The portal never mutates users
// directly; every change goes through the upstream API.
type User struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	PhoneNumber string      `json:"phoneNumber,omitempty"`
	Role        string      `json:"role"`
	IsMember    bool        `json:"isMember"`
	IsActive    bool        `json:"isActive"`
	Membership  *Membership `json:"membership,omitempty"`
	LastLogin   *time.Time  `json:"lastLogin,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// IsStaff reports whether the user may access staff screens.
// Admins count as staff for access-control purposes.
func (u *User) IsStaff() bool {
	return u.Role == RoleStaff || u.Role == RoleAdmin
}
