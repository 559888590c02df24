package events

import "github.com/google/uuid"

// UserRegistered is emitted after a new user is stored.
type UserRegistered struct {
	UserEvent
}

// UserLoggedIn is emitted after a session signs a user in.
type UserLoggedIn struct {
	UserEvent
}

// UserLoggedOut is emitted after a session signs a user out.
type UserLoggedOut struct {
	UserEvent
}

func (e UserRegistered) Type() string { return EventTypeUserRegistered.String() }
func (e UserLoggedIn) Type() string   { return EventTypeUserLoggedIn.String() }
func (e UserLoggedOut) Type() string  { return EventTypeUserLoggedOut.String() }

// NewUserRegistered creates a UserRegistered event.
func NewUserRegistered(userID uuid.UUID, username string) *UserRegistered {
	return &UserRegistered{UserEvent: newUserEvent(userID, username)}
}

// NewUserLoggedIn creates a UserLoggedIn event.
func NewUserLoggedIn(userID uuid.UUID, username string) *UserLoggedIn {
	return &UserLoggedIn{UserEvent: newUserEvent(userID, username)}
}

// NewUserLoggedOut creates a UserLoggedOut event.
func NewUserLoggedOut(userID uuid.UUID, username string) *UserLoggedOut {
	return &UserLoggedOut{UserEvent: newUserEvent(userID, username)}
}
