package repository

import (
	"time"

	"github.com/yogapratama/leasedrive/internal/domain/entity"
)

// UserRepository defines persistence for the user aggregate.
//
// The narrow Save*/Set* methods write only credential, token, or status
// columns. They bypass full-document validation on purpose: none of those
// fields are user-supplied content, and each call commits immediately.
type UserRepository interface {
	Create(u *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	GetByResetTokenHash(hash string) (*entity.User, error)
	GetByConfirmTokenHash(hash string) (*entity.User, error)
	UpdateProfile(u *entity.User) error

	// SavePassword stores a new password hash. changedAt is nil for the
	// initial password (account creation path keeps PasswordChangedAt unset).
	SavePassword(id, hash string, changedAt *time.Time) error

	SaveResetToken(id, tokenHash string, expiresAt time.Time) error
	ClearResetToken(id string) error
	SaveConfirmToken(id, tokenHash string, expiresAt time.Time) error
	MarkConfirmed(id string) error

	// SetApplicationStatus also flips the intent flag when a fresh
	// application is submitted.
	SetApplicationStatus(id string, status entity.ApplicationStatus, applying bool) error
	SetRole(id string, role entity.Role) error
}
