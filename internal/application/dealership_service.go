package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/yogapratama/leasedrive/internal/domain/dealership"
	"github.com/yogapratama/leasedrive/internal/domain/entity"
	repo "github.com/yogapratama/leasedrive/internal/domain/repository"
	"github.com/yogapratama/leasedrive/pkg/helpers"
	"github.com/yogapratama/leasedrive/pkg/mailer"
)

// DealershipService drives the application approval workflow. Authorization
// is the route middleware's job: by the time Respond or Revoke runs, the
// caller is known to be an admin.
//
// The read-check-write sequence here is not atomic; concurrent decisions on
// the same user race and the persistence layer decides last-write-wins.
type DealershipService struct {
	Repo   repo.UserRepository
	Logger *logrus.Logger
	Mail   MailPublisher

	MailEnabled bool
}

func NewDealershipService(r repo.UserRepository, logger *logrus.Logger, mailPub MailPublisher) *DealershipService {
	return &DealershipService{Repo: r, Logger: logger, Mail: mailPub}
}

// Apply submits a dealership application for the user. Allowed when the user
// never applied or was rejected; pending and approved applications cannot be
// re-submitted.
func (s *DealershipService) Apply(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	next, err := dealership.Apply(u.ApplicationStatus)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.SetApplicationStatus(u.ID, next, true); err != nil {
		return nil, err
	}
	u.ApplicationStatus = &next
	u.ApplyForDealership = true
	helpers.Audit(s.Logger, "dealership_apply", u.ID, u.Email, nil)
	return entity.Sanitized(u), nil
}

// Respond applies an admin decision to a pending or rejected application.
// Approval also promotes the user's role to DEALER; an already-approved
// application is immutable through this path.
func (s *DealershipService) Respond(ctx context.Context, userID string, decision dealership.Decision) (*entity.User, error) {
	u, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	next, err := dealership.Decide(u.ApplicationStatus, decision)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.SetApplicationStatus(u.ID, next, u.ApplyForDealership); err != nil {
		return nil, err
	}
	u.ApplicationStatus = &next

	if next == entity.ApplicationApproved {
		if err := s.Repo.SetRole(u.ID, entity.RoleDealer); err != nil {
			return nil, err
		}
		u.Role = entity.RoleDealer
	}

	helpers.Audit(s.Logger, "dealership_respond", u.ID, u.Email, logrus.Fields{"decision": string(next)})
	s.notifyDecision(ctx, u, string(next))
	return entity.Sanitized(u), nil
}

// Revoke moves an approved application back to rejected and demotes the
// dealer role. Any other current status is a forbidden transition.
func (s *DealershipService) Revoke(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	next, err := dealership.Revoke(u.ApplicationStatus)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.SetApplicationStatus(u.ID, next, u.ApplyForDealership); err != nil {
		return nil, err
	}
	u.ApplicationStatus = &next

	if u.Role == entity.RoleDealer {
		if err := s.Repo.SetRole(u.ID, entity.RoleUser); err != nil {
			return nil, err
		}
		u.Role = entity.RoleUser
	}

	helpers.Audit(s.Logger, "dealership_revoke", u.ID, u.Email, nil)
	s.notifyDecision(ctx, u, "revoked")
	return entity.Sanitized(u), nil
}

func (s *DealershipService) notifyDecision(ctx context.Context, u *entity.User, decision string) {
	if s.Mail == nil || !s.MailEnabled {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: mailer.TemplateDealershipDecision,
		Data: map[string]any{
			"Name":     u.Name,
			"Decision": decision,
		},
	}
	if err := s.Mail.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("email enqueue failed")
	}
}
