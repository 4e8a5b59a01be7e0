package application

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/yogapratama/leasedrive/internal/domain/entity"
	"github.com/yogapratama/leasedrive/pkg/apperr"
	"github.com/yogapratama/leasedrive/pkg/security"
)

// fakeUserRepo is an in-memory UserRepository for service tests. It mirrors
// the SQL implementation's behavior where the services depend on it, notably
// clearing the reset token pair on SavePassword.
type fakeUserRepo struct {
	mu    sync.Mutex
	seq   int
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func copyUser(u *entity.User) *entity.User {
	cp := *u
	return &cp
}

func (f *fakeUserRepo) Create(u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return apperr.ErrConflict
		}
	}
	f.seq++
	u.ID = fmt.Sprintf("user-%d", f.seq)
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	// Mirror the SQL INSERT: only the columns it names reach the row, the
	// rest stay at their defaults.
	f.users[u.ID] = &entity.User{
		ID:                 u.ID,
		Email:              u.Email,
		Name:               u.Name,
		Role:               u.Role,
		PasswordHash:       u.PasswordHash,
		ApplyForDealership: u.ApplyForDealership,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
	return nil
}

func (f *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return copyUser(u), nil
}

func (f *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (f *fakeUserRepo) GetByResetTokenHash(hash string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ResetTokenHash != "" && u.ResetTokenHash == hash {
			return copyUser(u), nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (f *fakeUserRepo) GetByConfirmTokenHash(hash string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ConfirmTokenHash != "" && u.ConfirmTokenHash == hash {
			return copyUser(u), nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (f *fakeUserRepo) UpdateProfile(u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.users[u.ID]
	if !ok {
		return apperr.ErrNotFound
	}
	stored.Name = u.Name
	stored.UpdatedAt = time.Now()
	return nil
}

func (f *fakeUserRepo) SavePassword(id, hash string, changedAt *time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return apperr.ErrNotFound
	}
	u.PasswordHash = hash
	u.PasswordChangedAt = changedAt
	u.ResetTokenHash = ""
	u.ResetTokenExpiresAt = nil
	return nil
}

func (f *fakeUserRepo) SaveResetToken(id, tokenHash string, expiresAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return apperr.ErrNotFound
	}
	u.ResetTokenHash = tokenHash
	u.ResetTokenExpiresAt = &expiresAt
	return nil
}

func (f *fakeUserRepo) ClearResetToken(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return apperr.ErrNotFound
	}
	u.ResetTokenHash = ""
	u.ResetTokenExpiresAt = nil
	return nil
}

func (f *fakeUserRepo) SaveConfirmToken(id, tokenHash string, expiresAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return apperr.ErrNotFound
	}
	u.ConfirmTokenHash = tokenHash
	u.ConfirmTokenExpiresAt = &expiresAt
	return nil
}

func (f *fakeUserRepo) MarkConfirmed(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return apperr.ErrNotFound
	}
	u.IsConfirmed = true
	u.ConfirmTokenHash = ""
	u.ConfirmTokenExpiresAt = nil
	return nil
}

func (f *fakeUserRepo) SetApplicationStatus(id string, status entity.ApplicationStatus, applying bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return apperr.ErrNotFound
	}
	u.ApplicationStatus = &status
	u.ApplyForDealership = applying
	return nil
}

func (f *fakeUserRepo) SetRole(id string, role entity.Role) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return apperr.ErrNotFound
	}
	u.Role = role
	return nil
}

// testClock is a settable clock shared between a service and its issuers.
type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func newTestClock(t time.Time) *testClock {
	return &testClock{t: t}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func discardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestUserService(repo *fakeUserRepo, clk *testClock) *UserService {
	reset := security.NewIssuer(security.PurposePasswordReset, security.DefaultTokenTTL)
	reset.Now = clk.Now
	confirm := security.NewIssuer(security.PurposeAccountConfirmation, security.DefaultTokenTTL)
	confirm.Now = clk.Now

	svc := NewUserService(repo, security.NewHasher(bcrypt.MinCost), reset, confirm, nil, nil, discardLogger(), nil)
	svc.Now = clk.Now
	return svc
}
