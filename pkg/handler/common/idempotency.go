package common

import (
	"context"
	"log/slog"
	"sync"

	"github.com/amirasaad/ledger/pkg/domain/events"
	"github.com/amirasaad/ledger/pkg/eventbus"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// KeyExtractor extracts an idempotency key from an event
type KeyExtractor func(events.Event) string

// EventIDKey keys an event by its occurrence id. Events without one yield "".
func EventIDKey(e events.Event) string {
	identified, ok := e.(interface{ EventID() uuid.UUID })
	if !ok || identified.EventID() == uuid.Nil {
		return ""
	}
	return identified.EventID().String()
}

// IdempotencyTracker tracks processed events by key
type IdempotencyTracker struct {
	processed sync.Map
	inflight  singleflight.Group
}

// NewIdempotencyTracker creates a new idempotency tracker
func NewIdempotencyTracker() *IdempotencyTracker {
	return &IdempotencyTracker{}
}

// Store marks a key as processed
func (t *IdempotencyTracker) Store(key string) {
	t.processed.Store(key, struct{}{})
}

// Delete removes a key from the tracker
func (t *IdempotencyTracker) Delete(key string) {
	t.processed.Delete(key)
}

// Processed reports whether key has been handled successfully.
func (t *IdempotencyTracker) Processed(key string) bool {
	_, ok := t.processed.Load(key)
	return ok
}

// WithIdempotency wraps a handler so each key is handled at most once.
// A key is only marked processed after the handler succeeds.
func WithIdempotency(
	handler eventbus.HandlerFunc,
	tracker *IdempotencyTracker,
	keyExtractor KeyExtractor,
	handlerName string,
	logger *slog.Logger,
) eventbus.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(ctx context.Context, e events.Event) error {
		key := keyExtractor(e)
		if key == "" {
			return handler(ctx, e)
		}

		log := logger.With(
			"handler", handlerName,
			"event_type", e.Type(),
			"idempotency_key", key,
		)

		if tracker.Processed(key) {
			log.Info("🔁 [SKIP] Event already processed")
			return nil
		}

		// Concurrent deliveries of one key share a single handler call.
		_, err, _ := tracker.inflight.Do(key, func() (any, error) {
			if tracker.Processed(key) {
				return nil, nil
			}
			if err := handler(ctx, e); err != nil {
				return nil, err
			}
			tracker.Store(key)
			return nil, nil
		})
		return err
	}
}
