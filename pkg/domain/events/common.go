package events

import (
	"time"

	"github.com/google/uuid"
)

// Event is anything published on the event bus.
type Event interface {
	Type() string
}

// UserEvent carries the fields common to every event about a user.
type UserEvent struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Username  string
	Timestamp time.Time
}

func newUserEvent(userID uuid.UUID, username string) UserEvent {
	return UserEvent{
		ID:        uuid.New(),
		UserID:    userID,
		Username:  username,
		Timestamp: time.Now(),
	}
}

// EventID returns the unique id of this event occurrence.
func (e UserEvent) EventID() uuid.UUID {
	return e.ID
}
