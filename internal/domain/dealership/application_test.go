package dealership

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yogapratama/leasedrive/internal/domain/entity"
	"github.com/yogapratama/leasedrive/pkg/apperr"
)

func status(s entity.ApplicationStatus) *entity.ApplicationStatus {
	return &s
}

func TestApply(t *testing.T) {
	cases := []struct {
		name    string
		current *entity.ApplicationStatus
		want    entity.ApplicationStatus
		wantErr bool
	}{
		{name: "never applied", current: nil, want: entity.ApplicationPending},
		{name: "after rejection", current: status(entity.ApplicationRejected), want: entity.ApplicationPending},
		{name: "already pending", current: status(entity.ApplicationPending), wantErr: true},
		{name: "already approved", current: status(entity.ApplicationApproved), wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Apply(tc.current)
			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, apperr.ErrForbiddenTransition))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDecide(t *testing.T) {
	cases := []struct {
		name     string
		current  *entity.ApplicationStatus
		decision Decision
		want     entity.ApplicationStatus
		wantErr  error
	}{
		{name: "approve pending", current: status(entity.ApplicationPending), decision: entity.ApplicationApproved, want: entity.ApplicationApproved},
		{name: "reject pending", current: status(entity.ApplicationPending), decision: entity.ApplicationRejected, want: entity.ApplicationRejected},
		{name: "approve rejected", current: status(entity.ApplicationRejected), decision: entity.ApplicationApproved, want: entity.ApplicationApproved},
		{name: "approved is immutable", current: status(entity.ApplicationApproved), decision: entity.ApplicationRejected, wantErr: apperr.ErrForbiddenTransition},
		{name: "no application", current: nil, decision: entity.ApplicationApproved, wantErr: apperr.ErrForbiddenTransition},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Decide(tc.current, tc.decision)
			if tc.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tc.wantErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDecideRejectsUnknownDecision(t *testing.T) {
	_, err := Decide(status(entity.ApplicationPending), Decision("MAYBE"))
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))

	_, err = Decide(status(entity.ApplicationPending), Decision(""))
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestRevoke(t *testing.T) {
	got, err := Revoke(status(entity.ApplicationApproved))
	require.NoError(t, err)
	assert.Equal(t, entity.ApplicationRejected, got)

	for _, current := range []*entity.ApplicationStatus{
		nil,
		status(entity.ApplicationPending),
		status(entity.ApplicationRejected),
	} {
		_, err := Revoke(current)
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperr.ErrForbiddenTransition))
	}
}

func TestApplyAfterRevokeAllowed(t *testing.T) {
	// Approved -> revoked -> fresh application is a legal cycle.
	revoked, err := Revoke(status(entity.ApplicationApproved))
	require.NoError(t, err)

	got, err := Apply(&revoked)
	require.NoError(t, err)
	assert.Equal(t, entity.ApplicationPending, got)
}
