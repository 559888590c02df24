package account

import (
	"strconv"
	"sync/atomic"
)

// DefaultFirstNumber is the first account number a fresh Sequence issues.
const DefaultFirstNumber Number = 1001

// Number identifies an account. It is assigned once and never reused.
type Number int64

// String returns the decimal form used for account selection.
func (n Number) String() string {
	return strconv.FormatInt(int64(n), 10)
}

// Sequence issues strictly increasing account numbers.
// A number is consumed on every call to Next, whether or not the caller
// ends up keeping the account.
type Sequence struct {
	last atomic.Int64
}

// NewSequence returns a Sequence whose first number is first.
func NewSequence(first Number) *Sequence {
	s := &Sequence{}
	s.last.Store(int64(first) - 1)
	return s
}

// Next returns the next unused number.
func (s *Sequence) Next() Number {
	return Number(s.last.Add(1))
}
