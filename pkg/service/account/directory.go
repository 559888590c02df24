package account

import (
	"github.com/amirasaad/ledger/pkg/domain/account"
	"github.com/amirasaad/ledger/pkg/domain/user"
)

// Directory hands out account numbers and caps how many accounts a user owns.
type Directory struct {
	seq   *account.Sequence
	limit int
}

// NewDirectory returns a Directory numbering from first and allowing limit
// accounts per user. Non-positive arguments fall back to the defaults.
func NewDirectory(first account.Number, limit int) *Directory {
	if first <= 0 {
		first = account.DefaultFirstNumber
	}
	if limit <= 0 {
		limit = user.DefaultMaxAccounts
	}
	return &Directory{seq: account.NewSequence(first), limit: limit}
}

// NextAccountNumber returns a number never handed out before.
func (d *Directory) NextAccountNumber() account.Number {
	return d.seq.Next()
}

// Limit returns the per-user account cap.
func (d *Directory) Limit() int {
	return d.limit
}

// EnforceLimit returns user.ErrAccountLimitExceeded if u cannot open another account.
func (d *Directory) EnforceLimit(u *user.User) error {
	if !u.CanOpenAccount(d.limit) {
		return user.ErrAccountLimitExceeded
	}
	return nil
}
