package application

import (
	"context"
	"errors"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/yogapratama/leasedrive/internal/domain/entity"
	repo "github.com/yogapratama/leasedrive/internal/domain/repository"
	"github.com/yogapratama/leasedrive/pkg/apperr"
	"github.com/yogapratama/leasedrive/pkg/helpers"
	"github.com/yogapratama/leasedrive/pkg/mailer"
	"github.com/yogapratama/leasedrive/pkg/security"
	"github.com/yogapratama/leasedrive/pkg/validation"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// DefaultPasswordChangeSkew backdates PasswordChangedAt so a session token
// issued in the same instant as the change is not treated as stale. Tunable
// via config; this is a safety margin, not a precise constant.
const DefaultPasswordChangeSkew = 2 * time.Second

// MailPublisher is the queue the services push email jobs onto.
type MailPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// UserService owns the user credential lifecycle: registration, login,
// password change, and the reset/confirmation token flows.
type UserService struct {
	Repo          repo.UserRepository
	Hasher        *security.Hasher
	ResetTokens   *security.Issuer
	ConfirmTokens *security.Issuer
	JWT           *helpers.JWTManager
	Redis         *redis.Client
	Logger        *logrus.Logger
	Mail          MailPublisher

	ResetURL     string
	ConfirmURL   string
	MailEnabled  bool
	ChangeSkew   time.Duration
	Now          func() time.Time
}

func NewUserService(r repo.UserRepository, hasher *security.Hasher, reset, confirm *security.Issuer, jwt *helpers.JWTManager, rdb *redis.Client, logger *logrus.Logger, mailPub MailPublisher) *UserService {
	return &UserService{
		Repo:          r,
		Hasher:        hasher,
		ResetTokens:   reset,
		ConfirmTokens: confirm,
		JWT:           jwt,
		Redis:         rdb,
		Logger:        logger,
		Mail:          mailPub,
		ChangeSkew:    DefaultPasswordChangeSkew,
		Now:           time.Now,
	}
}

func (s *UserService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

type RegisterInput struct {
	Email              string
	Name               string
	Password           string
	PasswordConfirm    string
	ApplyForDealership bool
}

// Register validates the draft, hashes the password, and persists the new
// user. The plaintext and confirmation never reach the stored representation.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	fields := map[string]string{}
	if in.Name == "" {
		fields["name"] = "is required"
	}
	// The raw input becomes the login key, so display-name forms like
	// "Jane <jane@example.com>" are rejected, not normalized.
	if addr, err := mail.ParseAddress(in.Email); err != nil || addr.Address != in.Email {
		fields["email"] = "must be a valid email"
	}
	if in.Password != in.PasswordConfirm {
		fields["password_confirm"] = "must match password"
	}
	if len(fields) > 0 {
		return nil, &apperr.ValidationError{Fields: fields}
	}
	if err := validation.CheckPassword(in.Password); err != nil {
		return nil, err
	}

	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	u := &entity.User{
		Email:              in.Email,
		Name:               in.Name,
		Role:               entity.RoleUser,
		PasswordHash:       hash,
		ApplyForDealership: in.ApplyForDealership,
	}
	if err := s.Repo.Create(u); err != nil {
		return nil, err
	}
	helpers.Audit(s.Logger, "user_register", u.ID, u.Email, nil)

	// Kick off the confirmation flow; registration itself succeeds even when
	// token delivery fails.
	if _, err := s.IssueConfirmationToken(ctx, u); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("confirmation token issue failed")
	}
	return entity.Sanitized(u), nil
}

// Authenticate validates email/password and returns the full user record for
// internal checks. Unknown email and bad password are indistinguishable.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Repo.GetByEmail(email)
	if err != nil || u == nil {
		return nil, ErrInvalidCredentials
	}
	if !s.Hasher.Verify(password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

// IssueTokens generates access/refresh tokens and records a session in Redis.
func (s *UserService) IssueTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	sid := uuid.NewString()
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID, u.Role, sid)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID, u.Role, sid)
	if err != nil {
		return TokenPair{}, err
	}

	if s.Redis != nil {
		key := helpers.SessionKey(u.ID)
		sess := helpers.Session{
			UserID:    u.ID,
			Email:     u.Email,
			Name:      u.Name,
			Role:      string(u.Role),
			SID:       sid,
			CreatedAt: s.now().UTC(),
		}
		if rErr := helpers.RedisSetJSON(ctx, s.Redis, key, sess, 24*time.Hour); rErr != nil && s.Logger != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("session store failed")
		}
	}

	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

// Refresh rotates the session id and token pair.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (TokenPair, *entity.User, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, nil, ErrInvalidCredentials
	}
	u, err := s.Repo.GetByID(claims.UserID)
	if err != nil || u == nil {
		return TokenPair{}, nil, ErrInvalidCredentials
	}
	if claims.IssuedAt != nil && entity.WasPasswordChangedAfter(u, claims.IssuedAt.Time) {
		return TokenPair{}, nil, ErrInvalidCredentials
	}
	if s.Redis != nil {
		var sess helpers.Session
		ok, rErr := helpers.RedisGetJSON(ctx, s.Redis, helpers.SessionKey(u.ID), &sess)
		if rErr != nil || !ok || sess.SID != claims.SessionID {
			return TokenPair{}, nil, ErrInvalidCredentials
		}
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return TokenPair{}, nil, err
	}
	return pair, u, nil
}

// Logout drops the Redis session.
func (s *UserService) Logout(ctx context.Context, userID string) {
	if s.Redis != nil {
		_ = helpers.RedisDel(ctx, s.Redis, helpers.SessionKey(userID))
	}
}

// GetProfile returns the sanitized projection of a user.
func (s *UserService) GetProfile(userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	return entity.Sanitized(u), nil
}

// UpdateProfile changes the mutable profile fields.
func (s *UserService) UpdateProfile(ctx context.Context, userID, name string) (*entity.User, error) {
	u, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if name != "" {
		u.Name = name
	}
	if err := s.Repo.UpdateProfile(u); err != nil {
		return nil, err
	}
	return entity.Sanitized(u), nil
}

// ChangePassword re-hashes and persists a new password for an existing user.
// PasswordChangedAt is backdated by ChangeSkew so tokens issued in the same
// instant remain valid; previously issued sessions become stale.
func (s *UserService) ChangePassword(ctx context.Context, u *entity.User, current, newPlain string) error {
	if !s.Hasher.Verify(current, u.PasswordHash) {
		return ErrInvalidCredentials
	}
	return s.setPassword(ctx, u, newPlain)
}

func (s *UserService) setPassword(ctx context.Context, u *entity.User, newPlain string) error {
	if err := validation.CheckPassword(newPlain); err != nil {
		return err
	}
	hash, err := s.Hasher.Hash(newPlain)
	if err != nil {
		return err
	}
	changedAt := s.now().Add(-s.ChangeSkew)
	if err := s.Repo.SavePassword(u.ID, hash, &changedAt); err != nil {
		return err
	}
	u.PasswordHash = hash
	u.PasswordChangedAt = &changedAt

	// Existing sessions were minted before the change; drop them.
	s.Logout(ctx, u.ID)
	helpers.Audit(s.Logger, "password_change", u.ID, u.Email, nil)
	return nil
}

// IssueResetToken generates a password-reset token for the given email,
// stores only its hash plus expiry, and queues the raw token for delivery.
// Returns the raw token for out-of-band delivery by the caller.
func (s *UserService) IssueResetToken(ctx context.Context, email string) (string, error) {
	u, err := s.Repo.GetByEmail(email)
	if err != nil {
		return "", err
	}
	raw, hashed, expiresAt, err := s.ResetTokens.Issue()
	if err != nil {
		return "", err
	}
	if err := s.Repo.SaveResetToken(u.ID, hashed, expiresAt); err != nil {
		return "", err
	}
	helpers.Audit(s.Logger, "reset_token_issue", u.ID, u.Email, nil)
	s.enqueueMail(ctx, u, mailer.TemplatePasswordReset, s.ResetURL+"?token="+raw, s.ResetTokens.TTL)
	return raw, nil
}

// ResetPassword consumes a raw reset token and sets the new password. The
// token is single-use: SavePassword clears the stored hash/expiry pair.
func (s *UserService) ResetPassword(ctx context.Context, rawToken, newPlain string) error {
	u, err := s.Repo.GetByResetTokenHash(s.ResetTokens.HashToken(rawToken))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return ErrInvalidToken
		}
		return err
	}
	if u.ResetTokenExpiresAt == nil ||
		!s.ResetTokens.Verify(rawToken, u.ResetTokenHash, *u.ResetTokenExpiresAt, s.now()) {
		return ErrInvalidToken
	}
	return s.setPassword(ctx, u, newPlain)
}

// IssueConfirmationToken generates an account-confirmation token, parallel in
// structure to the reset flow but never interchangeable with it.
func (s *UserService) IssueConfirmationToken(ctx context.Context, u *entity.User) (string, error) {
	raw, hashed, expiresAt, err := s.ConfirmTokens.Issue()
	if err != nil {
		return "", err
	}
	if err := s.Repo.SaveConfirmToken(u.ID, hashed, expiresAt); err != nil {
		return "", err
	}
	helpers.Audit(s.Logger, "confirm_token_issue", u.ID, u.Email, nil)
	s.enqueueMail(ctx, u, mailer.TemplateAccountConfirmation, s.ConfirmURL+"?token="+raw, s.ConfirmTokens.TTL)
	return raw, nil
}

// ConfirmAccount consumes a raw confirmation token and flips IsConfirmed.
func (s *UserService) ConfirmAccount(ctx context.Context, rawToken string) error {
	u, err := s.Repo.GetByConfirmTokenHash(s.ConfirmTokens.HashToken(rawToken))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return ErrInvalidToken
		}
		return err
	}
	if u.ConfirmTokenExpiresAt == nil ||
		!s.ConfirmTokens.Verify(rawToken, u.ConfirmTokenHash, *u.ConfirmTokenExpiresAt, s.now()) {
		return ErrInvalidToken
	}
	if err := s.Repo.MarkConfirmed(u.ID); err != nil {
		return err
	}
	helpers.Audit(s.Logger, "account_confirmed", u.ID, u.Email, nil)
	return nil
}

func (s *UserService) enqueueMail(ctx context.Context, u *entity.User, template, link string, ttl time.Duration) {
	if s.Mail == nil || !s.MailEnabled {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: template,
		Data: map[string]any{
			"Name":      u.Name,
			"Link":      link,
			"ExpiresIn": ttl.String(),
		},
	}
	if err := s.Mail.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("email enqueue failed")
	}
}
