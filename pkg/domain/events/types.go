package events

// EventTypes maps each event type name to a constructor for its zero value.
var EventTypes = map[string]func() Event{
	EventTypeUserRegistered.String():  func() Event { return &UserRegistered{} },
	EventTypeUserLoggedIn.String():    func() Event { return &UserLoggedIn{} },
	EventTypeUserLoggedOut.String():   func() Event { return &UserLoggedOut{} },
	EventTypeAccountOpened.String():   func() Event { return &AccountOpened{} },
	EventTypeFundsDeposited.String():  func() Event { return &FundsDeposited{} },
	EventTypeFundsWithdrawn.String():  func() Event { return &FundsWithdrawn{} },
	EventTypeInterestAccrued.String(): func() Event { return &InterestAccrued{} },
}
