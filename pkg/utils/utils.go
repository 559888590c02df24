package utils

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrUnknownCredentialPolicy is returned for an unsupported credential policy name.
var ErrUnknownCredentialPolicy = errors.New("unknown credential policy")

const (
	// PolicyPlain stores passwords as given and compares them exactly.
	PolicyPlain = "plain"
	// PolicyBcrypt stores bcrypt hashes.
	PolicyBcrypt = "bcrypt"
)

// Credentials turns passwords into stored credentials and checks them.
type Credentials interface {
	// Hash returns the value to store for password.
	Hash(password string) (string, error)
	// Verify reports whether password matches the stored credential.
	Verify(password, stored string) bool
}

// PlainCredentials stores the password itself.
type PlainCredentials struct{}

// Hash returns password unchanged.
func (PlainCredentials) Hash(password string) (string, error) { return password, nil }

// Verify reports whether password equals stored exactly.
func (PlainCredentials) Verify(password, stored string) bool {
	return subtle.ConstantTimeCompare([]byte(password), []byte(stored)) == 1
}

// BcryptCredentials stores bcrypt hashes with the given cost.
type BcryptCredentials struct {
	Cost int
}

// Hash returns the bcrypt hash of password at c.Cost.
func (c BcryptCredentials) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), c.Cost)
	return string(bytes), err
}

// Verify compares password with a bcrypt hash.
func (c BcryptCredentials) Verify(password, stored string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}

// NewCredentials returns the credential policy named by policy.
func NewCredentials(policy string, bcryptCost int) (Credentials, error) {
	switch policy {
	case "", PolicyPlain:
		return PlainCredentials{}, nil
	case PolicyBcrypt:
		return BcryptCredentials{Cost: bcryptCost}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCredentialPolicy, policy)
	}
}
