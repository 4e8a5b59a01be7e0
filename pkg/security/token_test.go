package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	iss := NewIssuer(PurposePasswordReset, 10*time.Minute)

	raw, hashed, expiresAt, err := iss.Issue()
	require.NoError(t, err)
	require.NotEmpty(t, raw)
	require.NotEmpty(t, hashed)
	assert.NotEqual(t, raw, hashed)

	now := expiresAt.Add(-time.Minute)
	assert.True(t, iss.Verify(raw, hashed, expiresAt, now))
}

func TestVerifyExpired(t *testing.T) {
	iss := NewIssuer(PurposePasswordReset, 10*time.Minute)

	raw, hashed, expiresAt, err := iss.Issue()
	require.NoError(t, err)

	// Hash matches, but the window has passed.
	late := expiresAt.Add(time.Second)
	assert.False(t, iss.Verify(raw, hashed, expiresAt, late))
}

func TestVerifyMismatch(t *testing.T) {
	iss := NewIssuer(PurposePasswordReset, 10*time.Minute)

	_, hashed, expiresAt, err := iss.Issue()
	require.NoError(t, err)

	now := expiresAt.Add(-time.Minute)
	assert.False(t, iss.Verify("wrong-token", hashed, expiresAt, now))
	assert.False(t, iss.Verify("", hashed, expiresAt, now))
	assert.False(t, iss.Verify("raw", "", expiresAt, now))
}

func TestPurposesNotInterchangeable(t *testing.T) {
	reset := NewIssuer(PurposePasswordReset, 10*time.Minute)
	confirm := NewIssuer(PurposeAccountConfirmation, 10*time.Minute)

	raw, hashed, expiresAt, err := reset.Issue()
	require.NoError(t, err)

	now := expiresAt.Add(-time.Minute)
	assert.True(t, reset.Verify(raw, hashed, expiresAt, now))
	assert.False(t, confirm.Verify(raw, hashed, expiresAt, now))
}

func TestIssueUnique(t *testing.T) {
	iss := NewIssuer(PurposePasswordReset, 10*time.Minute)

	seen := make(map[string]struct{}, 10000)
	for i := 0; i < 10000; i++ {
		raw, _, _, err := iss.Issue()
		require.NoError(t, err)
		_, dup := seen[raw]
		require.False(t, dup, "duplicate token after %d issues", i)
		seen[raw] = struct{}{}
	}
}

func TestIssuerClockInjection(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	iss := NewIssuer(PurposeAccountConfirmation, 10*time.Minute)
	iss.Now = func() time.Time { return fixed }

	_, _, expiresAt, err := iss.Issue()
	require.NoError(t, err)
	assert.Equal(t, fixed.Add(10*time.Minute), expiresAt)
}
