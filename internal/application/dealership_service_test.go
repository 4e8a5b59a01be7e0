package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yogapratama/leasedrive/internal/domain/entity"
	"github.com/yogapratama/leasedrive/pkg/apperr"
)

func newTestDealershipService(repo *fakeUserRepo) *DealershipService {
	return NewDealershipService(repo, discardLogger(), nil)
}

func seedUser(t *testing.T, repo *fakeUserRepo) *entity.User {
	t.Helper()
	u := &entity.User{
		Email:        "applicant@example.com",
		Name:         "Applicant",
		Role:         entity.RoleUser,
		PasswordHash: "$2a$13$irrelevant",
	}
	require.NoError(t, repo.Create(u))
	return u
}

func TestDealershipLifecycle(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestDealershipService(repo)
	seeded := seedUser(t, repo)
	ctx := context.Background()

	// Apply: NONE -> PENDING.
	u, err := svc.Apply(ctx, seeded.ID)
	require.NoError(t, err)
	require.NotNil(t, u.ApplicationStatus)
	assert.Equal(t, entity.ApplicationPending, *u.ApplicationStatus)
	assert.True(t, u.ApplyForDealership)

	// Re-applying while pending is forbidden.
	_, err = svc.Apply(ctx, seeded.ID)
	assert.True(t, errors.Is(err, apperr.ErrForbiddenTransition))

	// Approve: PENDING -> APPROVED, role promoted.
	u, err = svc.Respond(ctx, seeded.ID, entity.ApplicationApproved)
	require.NoError(t, err)
	assert.Equal(t, entity.ApplicationApproved, *u.ApplicationStatus)
	assert.Equal(t, entity.RoleDealer, u.Role)

	// An approved application is immutable through Respond.
	_, err = svc.Respond(ctx, seeded.ID, entity.ApplicationRejected)
	assert.True(t, errors.Is(err, apperr.ErrForbiddenTransition))
	_, err = svc.Respond(ctx, seeded.ID, entity.ApplicationApproved)
	assert.True(t, errors.Is(err, apperr.ErrForbiddenTransition))

	// Revoke: APPROVED -> REJECTED, role demoted.
	u, err = svc.Revoke(ctx, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ApplicationRejected, *u.ApplicationStatus)
	assert.Equal(t, entity.RoleUser, u.Role)

	// A rejected user may apply again.
	u, err = svc.Apply(ctx, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ApplicationPending, *u.ApplicationStatus)
}

func TestRespondWithoutApplication(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestDealershipService(repo)
	seeded := seedUser(t, repo)

	_, err := svc.Respond(context.Background(), seeded.ID, entity.ApplicationApproved)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrForbiddenTransition))
}

func TestRespondInvalidDecision(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestDealershipService(repo)
	seeded := seedUser(t, repo)
	ctx := context.Background()

	_, err := svc.Apply(ctx, seeded.ID)
	require.NoError(t, err)

	_, err = svc.Respond(ctx, seeded.ID, entity.ApplicationStatus("PENDING"))
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestRejectKeepsRole(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestDealershipService(repo)
	seeded := seedUser(t, repo)
	ctx := context.Background()

	_, err := svc.Apply(ctx, seeded.ID)
	require.NoError(t, err)

	u, err := svc.Respond(ctx, seeded.ID, entity.ApplicationRejected)
	require.NoError(t, err)
	assert.Equal(t, entity.ApplicationRejected, *u.ApplicationStatus)
	assert.Equal(t, entity.RoleUser, u.Role)

	// A rejected application may still be approved later.
	u, err = svc.Respond(ctx, seeded.ID, entity.ApplicationApproved)
	require.NoError(t, err)
	assert.Equal(t, entity.ApplicationApproved, *u.ApplicationStatus)
	assert.Equal(t, entity.RoleDealer, u.Role)
}

func TestRevokeRequiresApproval(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestDealershipService(repo)
	seeded := seedUser(t, repo)
	ctx := context.Background()

	// Never applied.
	_, err := svc.Revoke(ctx, seeded.ID)
	assert.True(t, errors.Is(err, apperr.ErrForbiddenTransition))

	// Pending.
	_, err = svc.Apply(ctx, seeded.ID)
	require.NoError(t, err)
	_, err = svc.Revoke(ctx, seeded.ID)
	assert.True(t, errors.Is(err, apperr.ErrForbiddenTransition))

	// Rejected.
	_, err = svc.Respond(ctx, seeded.ID, entity.ApplicationRejected)
	require.NoError(t, err)
	_, err = svc.Revoke(ctx, seeded.ID)
	assert.True(t, errors.Is(err, apperr.ErrForbiddenTransition))
}

func TestDealershipUnknownUser(t *testing.T) {
	svc := newTestDealershipService(newFakeUserRepo())
	ctx := context.Background()

	_, err := svc.Apply(ctx, "missing")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
	_, err = svc.Respond(ctx, "missing", entity.ApplicationApproved)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
	_, err = svc.Revoke(ctx, "missing")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}
