package account

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind is the ledger event a transaction records.
type Kind string

// Transaction kinds. Deposit and Interest credit the balance, Withdrawal debits it.
const (
	KindDeposit    Kind = "Deposit"
	KindWithdrawal Kind = "Withdrawal"
	KindInterest   Kind = "Interest"
)

// Signed returns amount with the sign this kind applies to a balance.
func (k Kind) Signed(amount decimal.Decimal) decimal.Decimal {
	if k == KindWithdrawal {
		return amount.Neg()
	}
	return amount
}

// Transaction is an immutable entry of an account's log.
type Transaction struct {
	ID            uuid.UUID
	AccountNumber Number
	Kind          Kind
	Amount        decimal.Decimal
	CreatedAt     time.Time
}

// Log is the append-only, chronological record of one account.
// It performs no validation; callers check amounts before appending.
type Log struct {
	number  Number
	entries []Transaction
	now     func() time.Time
	last    time.Time
}

func newLog(number Number, now func() time.Time) *Log {
	if now == nil {
		now = time.Now
	}
	return &Log{number: number, now: now}
}

// Append records a new entry with a fresh id and timestamp and returns it.
// Timestamps never go backwards within one log, even if the clock does.
func (l *Log) Append(kind Kind, amount decimal.Decimal) Transaction {
	ts := l.now()
	if ts.Before(l.last) {
		ts = l.last
	}
	l.last = ts

	tx := Transaction{
		ID:            uuid.New(),
		AccountNumber: l.number,
		Kind:          kind,
		Amount:        amount,
		CreatedAt:     ts,
	}
	l.entries = append(l.entries, tx)
	return tx
}

// Entries returns a copy of all entries in the order they were appended.
func (l *Log) Entries() []Transaction {
	out := make([]Transaction, len(l.entries))
	copy(out, l.entries)
	return out
}

// Sum returns the net effect of all entries on a balance.
func (l *Log) Sum() decimal.Decimal {
	sum := decimal.Zero
	for _, tx := range l.entries {
		sum = sum.Add(tx.Kind.Signed(tx.Amount))
	}
	return sum
}
