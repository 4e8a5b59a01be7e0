package entity

import (
	"time"
)

// Role is the authorization level of a user account.
type Role string

const (
	RoleUser   Role = "USER"
	RoleDealer Role = "DEALER"
	RoleAdmin  Role = "ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleDealer, RoleAdmin:
		return true
	}
	return false
}

// User is the aggregate root for the identity domain.
//
// PasswordHash and the token hash/expiry pairs are credentials at rest: they
// are excluded from JSON and from the default read projection (see Sanitized).
// A token hash and its expiry are always set and cleared together.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`

	PasswordHash      string     `json:"-"`
	PasswordChangedAt *time.Time `json:"-"`

	IsConfirmed bool `json:"is_confirmed"`

	// ApplyForDealership is the intent flag; ApplicationStatus tracks the
	// approval workflow and is nil for a user who never applied.
	ApplyForDealership bool               `json:"apply_for_dealership"`
	ApplicationStatus  *ApplicationStatus `json:"dealership_application_status,omitempty"`

	ResetTokenHash           string     `json:"-"`
	ResetTokenExpiresAt      *time.Time `json:"-"`
	ConfirmTokenHash         string     `json:"-"`
	ConfirmTokenExpiresAt    *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ApplicationStatus is the dealership application workflow state. The
// dealership package owns the transition rules; the entity only carries the
// value.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "PENDING"
	ApplicationApproved ApplicationStatus = "APPROVED"
	ApplicationRejected ApplicationStatus = "REJECTED"
)

// WasPasswordChangedAfter reports whether the user changed their password
// after the given token-issued-at time. Used to invalidate access tokens
// issued before a password change. A user who never changed their password
// always returns false.
func WasPasswordChangedAfter(u *User, issuedAt time.Time) bool {
	if u.PasswordChangedAt == nil {
		return false
	}
	return u.PasswordChangedAt.After(issuedAt)
}

// Sanitized returns the default read projection: a copy with credential and
// token fields zeroed. Internal authentication checks opt into the full record.
func Sanitized(u *User) *User {
	cp := *u
	cp.PasswordHash = ""
	cp.PasswordChangedAt = nil
	cp.ResetTokenHash = ""
	cp.ResetTokenExpiresAt = nil
	cp.ConfirmTokenHash = ""
	cp.ConfirmTokenExpiresAt = nil
	return &cp
}
