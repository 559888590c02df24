// Package session holds the signed-in user for one interactive run and resolves
// which of that user's accounts an operation targets.
//
// A Session is an explicit value passed to every service call; there is no
// process-wide current user.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/amirasaad/ledger/pkg/domain/account"
	"github.com/amirasaad/ledger/pkg/domain/user"
)

var (
	// ErrNotLoggedIn is returned when an operation needs a user and none is signed in.
	ErrNotLoggedIn = errors.New("no user is logged in")
	// ErrNoAccountsFound is returned when the active user owns no accounts.
	ErrNoAccountsFound = errors.New("no accounts found")
	// ErrAccountNotFound is returned when no owned account matches the selection.
	ErrAccountNotFound = errors.New("account not found")
)

// Session is the currently authenticated user, if any.
type Session struct {
	mu       sync.RWMutex
	user     *user.User
	signedIn time.Time
}

// New returns a session with nobody signed in.
func New() *Session {
	return &Session{}
}

// SignIn makes u the active user, replacing any previous one.
func (s *Session) SignIn(u *user.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = u
	s.signedIn = time.Now()
}

// SignOut clears the active user and returns it. The user record itself is untouched.
func (s *Session) SignOut() (*user.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.user
	s.user = nil
	s.signedIn = time.Time{}
	return u, u != nil
}

// User returns the active user or ErrNotLoggedIn.
func (s *Session) User() (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil, ErrNotLoggedIn
	}
	return s.user, nil
}

// Active reports whether a user is signed in.
func (s *Session) Active() bool {
	_, err := s.User()
	return err == nil
}

// SignedInAt returns when the active user signed in, or the zero time.
func (s *Session) SignedInAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.signedIn
}

// SelectAccount resolves input against the active user's accounts.
func (s *Session) SelectAccount(input string) (*account.Account, error) {
	u, err := s.User()
	if err != nil {
		return nil, err
	}
	return SelectAccount(u, input)
}

// SelectAccount finds the account of u whose number is exactly input.
// Accounts are scanned in creation order. It never modifies the ledger.
func SelectAccount(u *user.User, input string) (*account.Account, error) {
	if u == nil {
		return nil, ErrNotLoggedIn
	}
	if u.AccountCount() == 0 {
		return nil, ErrNoAccountsFound
	}
	a, ok := u.FindAccount(input)
	if !ok {
		return nil, ErrAccountNotFound
	}
	return a, nil
}
