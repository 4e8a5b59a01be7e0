package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yogapratama/leasedrive/pkg/apperr"
)

func TestCheckPassword(t *testing.T) {
	cases := []struct {
		name     string
		password string
		ok       bool
	}{
		{name: "minimal valid", password: "Abcdef1!", ok: true},
		{name: "symbol only no digit", password: "Abcdefg!", ok: true},
		{name: "long valid", password: "A" + strings.Repeat("a", 47) + "!?", ok: true},
		{name: "too short", password: "Ab1!", ok: false},
		{name: "too long", password: "A!" + strings.Repeat("a", 49), ok: false},
		{name: "no uppercase", password: "abcdef1!", ok: false},
		{name: "no symbol", password: "Abcdefg1", ok: false},
		{name: "empty", password: "", ok: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckPassword(tc.password)
			if tc.ok {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, apperr.IsValidation(err))
		})
	}
}

func TestCheckPasswordBoundaries(t *testing.T) {
	// Exactly 8 and exactly 50 characters pass.
	assert.NoError(t, CheckPassword("Abcdef!x"))
	exact50 := "A!" + strings.Repeat("a", 48)
	require.Len(t, exact50, 50)
	assert.NoError(t, CheckPassword(exact50))
}

func TestCheckPasswordAcceptsEverySymbol(t *testing.T) {
	for _, sym := range PasswordSymbols {
		pw := "Abcdefg" + string(sym)
		assert.NoErrorf(t, CheckPassword(pw), "symbol %q should satisfy the policy", sym)
	}
}
