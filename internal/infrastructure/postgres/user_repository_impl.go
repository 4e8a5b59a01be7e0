package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/yogapratama/leasedrive/internal/domain/entity"
	"github.com/yogapratama/leasedrive/internal/domain/repository"
	"github.com/yogapratama/leasedrive/pkg/apperr"
)

// pgUniqueViolation is the SQLSTATE for unique constraint violations.
const pgUniqueViolation = "23505"

type UserRepository struct {
	pool Querier
}

// Querier is the subset of pgxpool.Pool the repositories use.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func NewUserRepository(pool Querier) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `
	id, email, name, role, password_hash, password_changed_at,
	is_confirmed, apply_for_dealership, dealership_application_status,
	reset_token_hash, reset_token_expires_at,
	confirm_token_hash, confirm_token_expires_at,
	created_at, updated_at`

func (r *UserRepository) Create(u *entity.User) error {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, name, role, password_hash, apply_for_dealership)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, u.Email, u.Name, u.Role, u.PasswordHash, u.ApplyForDealership)

	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return fmt.Errorf("%w: email %s", apperr.ErrConflict, u.Email)
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByID(id string) (*entity.User, error) {
	return r.getBy("id", id)
}

func (r *UserRepository) GetByEmail(email string) (*entity.User, error) {
	return r.getBy("email", email)
}

func (r *UserRepository) GetByResetTokenHash(hash string) (*entity.User, error) {
	return r.getBy("reset_token_hash", hash)
}

func (r *UserRepository) GetByConfirmTokenHash(hash string) (*entity.User, error) {
	return r.getBy("confirm_token_hash", hash)
}

func (r *UserRepository) getBy(col, val string) (*entity.User, error) {
	ctx := context.Background()
	u := &entity.User{}
	var resetHash, confirmHash *string

	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE `+col+` = $1`, val)
	if err := row.Scan(
		&u.ID, &u.Email, &u.Name, &u.Role, &u.PasswordHash, &u.PasswordChangedAt,
		&u.IsConfirmed, &u.ApplyForDealership, &u.ApplicationStatus,
		&resetHash, &u.ResetTokenExpiresAt,
		&confirmHash, &u.ConfirmTokenExpiresAt,
		&u.CreatedAt, &u.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	if resetHash != nil {
		u.ResetTokenHash = *resetHash
	}
	if confirmHash != nil {
		u.ConfirmTokenHash = *confirmHash
	}
	return u, nil
}

func (r *UserRepository) UpdateProfile(u *entity.User) error {
	ctx := context.Background()
	u.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE users SET name = $1, updated_at = $2 WHERE id = $3
	`, u.Name, u.UpdatedAt, u.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *UserRepository) SavePassword(id, hash string, changedAt *time.Time) error {
	return r.exec(`
		UPDATE users
		SET password_hash = $1, password_changed_at = $2,
		    reset_token_hash = NULL, reset_token_expires_at = NULL,
		    updated_at = now()
		WHERE id = $3
	`, hash, changedAt, id)
}

func (r *UserRepository) SaveResetToken(id, tokenHash string, expiresAt time.Time) error {
	return r.exec(`
		UPDATE users
		SET reset_token_hash = $1, reset_token_expires_at = $2, updated_at = now()
		WHERE id = $3
	`, tokenHash, expiresAt, id)
}

func (r *UserRepository) ClearResetToken(id string) error {
	return r.exec(`
		UPDATE users
		SET reset_token_hash = NULL, reset_token_expires_at = NULL, updated_at = now()
		WHERE id = $1
	`, id)
}

func (r *UserRepository) SaveConfirmToken(id, tokenHash string, expiresAt time.Time) error {
	return r.exec(`
		UPDATE users
		SET confirm_token_hash = $1, confirm_token_expires_at = $2, updated_at = now()
		WHERE id = $3
	`, tokenHash, expiresAt, id)
}

func (r *UserRepository) MarkConfirmed(id string) error {
	return r.exec(`
		UPDATE users
		SET is_confirmed = TRUE,
		    confirm_token_hash = NULL, confirm_token_expires_at = NULL,
		    updated_at = now()
		WHERE id = $1
	`, id)
}

func (r *UserRepository) SetApplicationStatus(id string, status entity.ApplicationStatus, applying bool) error {
	return r.exec(`
		UPDATE users
		SET dealership_application_status = $1, apply_for_dealership = $2, updated_at = now()
		WHERE id = $3
	`, status, applying, id)
}

func (r *UserRepository) SetRole(id string, role entity.Role) error {
	return r.exec(`
		UPDATE users SET role = $1, updated_at = now() WHERE id = $2
	`, role, id)
}

func (r *UserRepository) exec(sql string, args ...any) error {
	res, err := r.pool.Exec(context.Background(), sql, args...)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
