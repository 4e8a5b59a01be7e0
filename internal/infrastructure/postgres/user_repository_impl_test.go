package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yogapratama/leasedrive/internal/domain/entity"
	"github.com/yogapratama/leasedrive/pkg/apperr"
)

// stubQuerier records the statements it receives and replays canned results.
type stubQuerier struct {
	lastSQL  string
	lastArgs []any

	row     pgx.Row
	execTag pgconn.CommandTag
	execErr error
}

func (s *stubQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	s.lastSQL = sql
	s.lastArgs = args
	return s.row
}

func (s *stubQuerier) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	s.lastSQL = sql
	s.lastArgs = args
	return nil, errors.New("not implemented")
}

func (s *stubQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	s.lastSQL = sql
	s.lastArgs = args
	return s.execTag, s.execErr
}

type stubRow struct {
	scan func(dest ...any) error
}

func (r stubRow) Scan(dest ...any) error { return r.scan(dest...) }

func TestCreatePersistsDealershipIntent(t *testing.T) {
	q := &stubQuerier{row: stubRow{scan: func(dest ...any) error {
		*dest[0].(*string) = "user-1"
		*dest[1].(*time.Time) = time.Now()
		*dest[2].(*time.Time) = time.Now()
		return nil
	}}}
	repo := NewUserRepository(q)

	u := &entity.User{
		Email:              "jane@example.com",
		Name:               "Jane",
		Role:               entity.RoleUser,
		PasswordHash:       "$2a$13$hash",
		ApplyForDealership: true,
	}
	require.NoError(t, repo.Create(u))
	assert.Equal(t, "user-1", u.ID)

	// The intent flag must reach the row, not fall back to the column default.
	assert.Contains(t, q.lastSQL, "apply_for_dealership")
	require.Len(t, q.lastArgs, 5)
	assert.Equal(t, true, q.lastArgs[4])
}

func TestCreateMapsUniqueViolationToConflict(t *testing.T) {
	q := &stubQuerier{row: stubRow{scan: func(...any) error {
		return &pgconn.PgError{Code: pgUniqueViolation}
	}}}
	repo := NewUserRepository(q)

	err := repo.Create(&entity.User{Email: "dup@example.com"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrConflict))
}

func TestExecZeroRowsIsNotFound(t *testing.T) {
	q := &stubQuerier{execTag: pgconn.NewCommandTag("UPDATE 0")}
	repo := NewUserRepository(q)

	err := repo.SetRole("missing", entity.RoleDealer)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}
