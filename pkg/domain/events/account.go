package events

import (
	"github.com/amirasaad/ledger/pkg/domain/account"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerEvent describes one transaction appended to an account's log.
type LedgerEvent struct {
	UserEvent
	AccountNumber account.Number
	TransactionID uuid.UUID
	Amount        decimal.Decimal
	Balance       decimal.Decimal // balance right after the transaction
}

// Ledger returns the transaction part shared by every account event.
func (e LedgerEvent) Ledger() LedgerEvent { return e }

func newLedgerEvent(userID uuid.UUID, username string, tx account.Transaction, balance decimal.Decimal) LedgerEvent {
	e := LedgerEvent{
		UserEvent:     newUserEvent(userID, username),
		AccountNumber: tx.AccountNumber,
		TransactionID: tx.ID,
		Amount:        tx.Amount,
		Balance:       balance,
	}
	e.Timestamp = tx.CreatedAt
	return e
}

// AccountOpened is emitted after an account is opened and attached to its owner.
// Amount is the opening deposit.
type AccountOpened struct {
	LedgerEvent
	HolderName  string
	AccountType account.Type
}

// FundsDeposited is emitted after a deposit is recorded.
type FundsDeposited struct {
	LedgerEvent
}

// FundsWithdrawn is emitted after a withdrawal is recorded.
type FundsWithdrawn struct {
	LedgerEvent
}

// InterestAccrued is emitted after interest is credited to a savings account.
type InterestAccrued struct {
	LedgerEvent
	Rate decimal.Decimal
}

func (e AccountOpened) Type() string   { return EventTypeAccountOpened.String() }
func (e FundsDeposited) Type() string  { return EventTypeFundsDeposited.String() }
func (e FundsWithdrawn) Type() string  { return EventTypeFundsWithdrawn.String() }
func (e InterestAccrued) Type() string { return EventTypeInterestAccrued.String() }

// NewAccountOpened creates an AccountOpened event from the opening transaction.
func NewAccountOpened(
	userID uuid.UUID,
	username string,
	acc *account.Account,
	opening account.Transaction,
) *AccountOpened {
	return &AccountOpened{
		LedgerEvent: newLedgerEvent(userID, username, opening, opening.Amount),
		HolderName:  acc.HolderName(),
		AccountType: acc.Type(),
	}
}

// NewFundsDeposited creates a FundsDeposited event.
func NewFundsDeposited(
	userID uuid.UUID,
	username string,
	tx account.Transaction,
	balance decimal.Decimal,
) *FundsDeposited {
	return &FundsDeposited{LedgerEvent: newLedgerEvent(userID, username, tx, balance)}
}

// NewFundsWithdrawn creates a FundsWithdrawn event.
func NewFundsWithdrawn(
	userID uuid.UUID,
	username string,
	tx account.Transaction,
	balance decimal.Decimal,
) *FundsWithdrawn {
	return &FundsWithdrawn{LedgerEvent: newLedgerEvent(userID, username, tx, balance)}
}

// NewInterestAccrued creates an InterestAccrued event.
func NewInterestAccrued(
	userID uuid.UUID,
	username string,
	tx account.Transaction,
	balance decimal.Decimal,
	rate decimal.Decimal,
) *InterestAccrued {
	return &InterestAccrued{
		LedgerEvent: newLedgerEvent(userID, username, tx, balance),
		Rate:        rate,
	}
}
