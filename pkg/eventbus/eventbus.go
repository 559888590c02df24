// Package eventbus defines how ledger events are published and consumed.
package eventbus

import (
	"context"

	"github.com/amirasaad/ledger/pkg/domain/events"
)

// HandlerFunc processes a single event.
type HandlerFunc func(ctx context.Context, e events.Event) error

// Bus defines the contract for publishing and subscribing to ledger events.
type Bus interface {
	Register(eventType string, handler HandlerFunc)
	Emit(ctx context.Context, e events.Event) error
}

// RegisterAll subscribes handler to every event type the ledger emits.
func RegisterAll(bus Bus, handler HandlerFunc) {
	for _, et := range events.All() {
		bus.Register(et.String(), handler)
	}
}
