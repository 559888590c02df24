package events

// EventType represents the type of an event in the system.
type EventType string

// Event type constants
const (
	// User events
	EventTypeUserRegistered EventType = "User.Registered"
	EventTypeUserLoggedIn   EventType = "User.LoggedIn"
	EventTypeUserLoggedOut  EventType = "User.LoggedOut"

	// Account events
	EventTypeAccountOpened   EventType = "Account.Opened"
	EventTypeFundsDeposited  EventType = "Account.Deposited"
	EventTypeFundsWithdrawn  EventType = "Account.Withdrawn"
	EventTypeInterestAccrued EventType = "Account.InterestAccrued"
)

// String returns the string representation of the event type.
func (et EventType) String() string {
	return string(et)
}

// All returns every event type the ledger emits.
func All() []EventType {
	return []EventType{
		EventTypeUserRegistered,
		EventTypeUserLoggedIn,
		EventTypeUserLoggedOut,
		EventTypeAccountOpened,
		EventTypeFundsDeposited,
		EventTypeFundsWithdrawn,
		EventTypeInterestAccrued,
	}
}

// LedgerTypes returns the event types that record an account transaction.
func LedgerTypes() []EventType {
	return []EventType{
		EventTypeAccountOpened,
		EventTypeFundsDeposited,
		EventTypeFundsWithdrawn,
		EventTypeInterestAccrued,
	}
}
