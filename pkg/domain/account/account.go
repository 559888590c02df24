package account

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAccountType is returned when an account type is neither savings nor checking.
	ErrInvalidAccountType = errors.New("invalid account type: must be savings or checking")

	// ErrInvalidAmount is returned when a transaction amount is not positive,
	// or an initial deposit is negative.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInsufficientFunds is returned when a withdrawal exceeds the balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidOperation is returned when interest is requested on a non-savings account.
	ErrInvalidOperation = errors.New("interest can only be calculated for savings accounts")

	// ErrInvalidRate is returned when an interest rate is negative.
	ErrInvalidRate = errors.New("interest rate must not be negative")

	// ErrLedgerMismatch is returned by Reconcile when the log does not explain the balance.
	ErrLedgerMismatch = errors.New("balance does not match transaction log")

	// ErrMissingNumber is returned when an account is built without a number or number source.
	ErrMissingNumber = errors.New("account number is required")
)

// Type is the kind of account, normalized to lower case.
type Type string

// Supported account types.
const (
	TypeSavings  Type = "savings"
	TypeChecking Type = "checking"
)

// ParseType normalizes s case-insensitively into a Type.
func ParseType(s string) (Type, error) {
	switch t := Type(strings.ToLower(s)); t {
	case TypeSavings, TypeChecking:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidAccountType, s)
	}
}

// Account is the ledger of one bank account: its balance and the log that justifies it.
//
// Invariants:
//   - Balance equals the signed sum of the log (deposits and interest minus withdrawals).
//   - The opening deposit is the first log entry.
//   - Balance is never negative.
//   - Number never changes after Build.
//
// Methods are serialized by a mutex.
type Account struct {
	mu          sync.Mutex
	number      Number
	holderName  string
	accountType Type
	balance     decimal.Decimal
	log         *Log
	createdAt   time.Time
}

// Builder provides a fluent API for constructing Account instances.
type Builder struct {
	number         Number
	nextNumber     func() Number
	holderName     string
	accountType    string
	initialDeposit decimal.Decimal
	now            func() time.Time
}

// New creates a new Builder with a zero opening deposit and the wall clock.
func New() *Builder {
	return &Builder{
		initialDeposit: decimal.Zero,
		now:            time.Now,
	}
}

// WithNumber sets a fixed account number.
func (b *Builder) WithNumber(n Number) *Builder {
	b.number = n
	return b
}

// WithNumberSource draws the number from next once every other field has validated.
// It takes precedence over WithNumber.
func (b *Builder) WithNumberSource(next func() Number) *Builder {
	b.nextNumber = next
	return b
}

// WithHolderName sets the holder name, which may differ from the owning username.
func (b *Builder) WithHolderName(name string) *Builder {
	b.holderName = name
	return b
}

// WithType sets the raw account type input. It is normalized by Build.
func (b *Builder) WithType(t string) *Builder {
	b.accountType = t
	return b
}

// WithInitialDeposit sets the opening balance.
func (b *Builder) WithInitialDeposit(amount decimal.Decimal) *Builder {
	b.initialDeposit = amount
	return b
}

// WithClock sets the time source used for the log. Mostly useful in tests.
func (b *Builder) WithClock(now func() time.Time) *Builder {
	if now != nil {
		b.now = now
	}
	return b
}

// Build validates the inputs, assigns the number and records the opening deposit
// as the single first log entry.
func (b *Builder) Build() (*Account, error) {
	accountType, err := ParseType(b.accountType)
	if err != nil {
		return nil, err
	}
	if b.initialDeposit.IsNegative() {
		return nil, fmt.Errorf("%w: initial deposit %s is negative", ErrInvalidAmount, b.initialDeposit)
	}

	number := b.number
	if b.nextNumber != nil {
		number = b.nextNumber()
	}
	if number <= 0 {
		return nil, ErrMissingNumber
	}

	a := &Account{
		number:      number,
		holderName:  b.holderName,
		accountType: accountType,
		balance:     b.initialDeposit,
		log:         newLog(number, b.now),
	}
	opening := a.log.Append(KindDeposit, b.initialDeposit)
	a.createdAt = opening.CreatedAt
	return a, nil
}

// Open builds an account with the given number. It is shorthand for the Builder.
func Open(number Number, holderName, accountType string, initialDeposit decimal.Decimal) (*Account, error) {
	return New().
		WithNumber(number).
		WithHolderName(holderName).
		WithType(accountType).
		WithInitialDeposit(initialDeposit).
		Build()
}

// Number returns the account number.
func (a *Account) Number() Number {
	return a.number
}

// HolderName returns the name the account was opened for.
func (a *Account) HolderName() string {
	return a.holderName
}

// Type returns the normalized account type.
func (a *Account) Type() Type {
	return a.accountType
}

// CreatedAt returns the time of the opening deposit.
func (a *Account) CreatedAt() time.Time {
	return a.createdAt
}

// Balance returns the current balance.
func (a *Account) Balance() decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance
}

func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: %s must be greater than zero", ErrInvalidAmount, amount)
	}
	return nil
}

// validateWithdraw enforces a positive amount no greater than the balance.
// Callers hold a.mu.
func (a *Account) validateWithdraw(amount decimal.Decimal) error {
	if err := validateAmount(amount); err != nil {
		return err
	}
	if amount.GreaterThan(a.balance) {
		return ErrInsufficientFunds
	}
	return nil
}

// Deposit adds amount to the balance and records it.
func (a *Account) Deposit(amount decimal.Decimal) (Transaction, error) {
	if err := validateAmount(amount); err != nil {
		return Transaction{}, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	a.balance = a.balance.Add(amount)
	return a.log.Append(KindDeposit, amount), nil
}

// Withdraw removes amount from the balance and records it.
// On ErrInsufficientFunds neither the balance nor the log change.
func (a *Account) Withdraw(amount decimal.Decimal) (Transaction, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.validateWithdraw(amount); err != nil {
		return Transaction{}, err
	}
	a.balance = a.balance.Sub(amount)
	return a.log.Append(KindWithdrawal, amount), nil
}

// CalculateInterest credits balance*rate to a savings account and records it,
// including when the computed interest is zero.
func (a *Account) CalculateInterest(rate decimal.Decimal) (Transaction, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.accountType != TypeSavings {
		return Transaction{}, ErrInvalidOperation
	}
	if rate.IsNegative() {
		return Transaction{}, fmt.Errorf("%w: %s", ErrInvalidRate, rate)
	}

	interest := a.balance.Mul(rate)
	a.balance = a.balance.Add(interest)
	return a.log.Append(KindInterest, interest), nil
}

// Statement returns the full log in chronological order.
// The result is a copy; iterating it has no effect on the account.
func (a *Account) Statement() []Transaction {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.log.Entries()
}

// Reconcile checks that the log still explains the balance.
func (a *Account) Reconcile() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if sum := a.log.Sum(); !sum.Equal(a.balance) {
		return fmt.Errorf("%w: account %s balance %s, log sum %s", ErrLedgerMismatch, a.number, a.balance, sum)
	}
	return nil
}
