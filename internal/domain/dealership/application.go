// Package dealership implements the approval state machine for a user's
// request to become a dealer. Transitions are pure functions over the current
// status; persistence and authorization live with the callers.
package dealership

import (
	"github.com/yogapratama/leasedrive/internal/domain/entity"
	"github.com/yogapratama/leasedrive/pkg/apperr"
)

// Decision is an admin's verdict on a pending application.
type Decision = entity.ApplicationStatus

// statusName renders a possibly-absent status for error messages.
func statusName(s *entity.ApplicationStatus) string {
	if s == nil {
		return "NONE"
	}
	return string(*s)
}

// Apply returns the status for a fresh application. Permitted when the user
// never applied or was previously rejected; a pending or approved application
// cannot be re-submitted.
func Apply(current *entity.ApplicationStatus) (entity.ApplicationStatus, error) {
	if current == nil || *current == entity.ApplicationRejected {
		return entity.ApplicationPending, nil
	}
	return "", apperr.Transition(statusName(current), string(entity.ApplicationPending))
}

// Decide applies an admin decision to a pending or rejected application.
// An approved application is immutable through this path; use Revoke.
func Decide(current *entity.ApplicationStatus, decision Decision) (entity.ApplicationStatus, error) {
	if decision != entity.ApplicationApproved && decision != entity.ApplicationRejected {
		return "", apperr.NewValidation("decision", "must be APPROVED or REJECTED")
	}
	if current == nil {
		return "", apperr.Transition(statusName(current), string(decision))
	}
	switch *current {
	case entity.ApplicationPending, entity.ApplicationRejected:
		return decision, nil
	default:
		return "", apperr.Transition(statusName(current), string(decision))
	}
}

// Revoke moves an approved application to rejected. Any other current status
// is a forbidden transition: revocation is meaningless without prior approval.
func Revoke(current *entity.ApplicationStatus) (entity.ApplicationStatus, error) {
	if current == nil || *current != entity.ApplicationApproved {
		return "", apperr.Transition(statusName(current), string(entity.ApplicationRejected))
	}
	return entity.ApplicationRejected, nil
}
