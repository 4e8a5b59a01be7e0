package security

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"time"
)

// DefaultTokenTTL is the validity window for reset and confirmation tokens.
const DefaultTokenTTL = 10 * time.Minute

const tokenBytes = 32 // 256 bits of entropy

// Token purposes. A purpose is mixed into the stored hash, so a reset token
// can never satisfy a confirmation check even if the fields got swapped.
const (
	PurposePasswordReset       = "password-reset"
	PurposeAccountConfirmation = "account-confirmation"
)

// Issuer generates single-use security tokens. Only the hashed form is meant
// to be persisted; the raw token is delivered out-of-band and never stored.
type Issuer struct {
	Purpose string
	TTL     time.Duration
	Rand    io.Reader        // defaults to crypto/rand.Reader
	Now     func() time.Time // defaults to time.Now
}

func NewIssuer(purpose string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Issuer{Purpose: purpose, TTL: ttl}
}

func (i *Issuer) reader() io.Reader {
	if i.Rand != nil {
		return i.Rand
	}
	return rand.Reader
}

func (i *Issuer) now() time.Time {
	if i.Now != nil {
		return i.Now()
	}
	return time.Now()
}

// Issue returns the raw token for out-of-band delivery plus the hash/expiry
// pair for storage.
func (i *Issuer) Issue() (raw, hashed string, expiresAt time.Time, err error) {
	b := make([]byte, tokenBytes)
	if _, err = io.ReadFull(i.reader(), b); err != nil {
		return "", "", time.Time{}, fmt.Errorf("token entropy: %w", err)
	}
	raw = base64.RawURLEncoding.EncodeToString(b)
	hashed = i.HashToken(raw)
	expiresAt = i.now().Add(i.TTL)
	return raw, hashed, expiresAt, nil
}

// HashToken computes the stored form of a raw token.
func (i *Issuer) HashToken(raw string) string {
	sum := sha256.Sum256([]byte(i.Purpose + ":" + raw))
	return hex.EncodeToString(sum[:])
}

// Verify recomputes the hash of raw and compares it against the stored hash.
// An expired token fails even when the hash matches. Expected failures are a
// plain false, never an error.
func (i *Issuer) Verify(raw, hashed string, expiresAt, now time.Time) bool {
	if hashed == "" || raw == "" {
		return false
	}
	if now.After(expiresAt) {
		return false
	}
	computed := i.HashToken(raw)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(hashed)) == 1
}
