package user

import (
	"errors"
	"sync"
	"time"

	"github.com/amirasaad/ledger/pkg/domain/account"
	"github.com/google/uuid"
)

// DefaultMaxAccounts is how many accounts a user may own unless configured otherwise.
const DefaultMaxAccounts = 2

var (
	// ErrUserNotFound is returned when a user cannot be found in the
	// repository.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateUsername is returned when registering a username that is already taken.
	ErrDuplicateUsername = errors.New("user already exists")
	// ErrInvalidCredentials is returned when no user matches a username/password pair.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountLimitExceeded is returned when a user already owns the maximum number of accounts.
	ErrAccountLimitExceeded = errors.New("account limit exceeded")
	// ErrEmptyUsername is returned when a username is empty.
	ErrEmptyUsername = errors.New("username cannot be empty")
)

// User represents a registered user and the accounts it owns.
type User struct {
	ID        uuid.UUID
	Username  string
	Password  string // stored credential, as produced by the configured credential policy
	CreatedAt time.Time

	mu       sync.RWMutex
	accounts []*account.Account
}

// New creates a new User with the given stored credential.
func New(username, credential string) (*User, error) {
	if username == "" {
		return nil, ErrEmptyUsername
	}
	return &User{
		ID:        uuid.New(),
		Username:  username,
		Password:  credential,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Accounts returns the owned accounts in the order they were opened.
func (u *User) Accounts() []*account.Account {
	u.mu.RLock()
	defer u.mu.RUnlock()
	out := make([]*account.Account, len(u.accounts))
	copy(out, u.accounts)
	return out
}

// AccountCount returns how many accounts the user owns.
func (u *User) AccountCount() int {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return len(u.accounts)
}

// CanOpenAccount reports whether one more account fits under limit.
func (u *User) CanOpenAccount(limit int) bool {
	return u.AccountCount() < limit
}

// AddAccount attaches a to the user unless that would exceed limit.
func (u *User) AddAccount(a *account.Account, limit int) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if len(u.accounts) >= limit {
		return ErrAccountLimitExceeded
	}
	u.accounts = append(u.accounts, a)
	return nil
}

// FindAccount looks up an owned account by the exact text of its number.
func (u *User) FindAccount(number string) (*account.Account, bool) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	for _, a := range u.accounts {
		if a.Number().String() == number {
			return a, true
		}
	}
	return nil, false
}
