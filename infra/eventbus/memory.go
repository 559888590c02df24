package eventbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/amirasaad/ledger/pkg/domain/events"
	"github.com/amirasaad/ledger/pkg/eventbus"
)

// DefaultMaxAttempts is how many times an event is delivered before the bus gives up.
const DefaultMaxAttempts = 3

// ErrDeliveryFailed is returned by Emit when some handler still failed on the last attempt.
var ErrDeliveryFailed = errors.New("event delivery failed")

// MemoryEventBus dispatches events synchronously to in-process handlers.
//
// Delivery is at-least-once: when any handler fails or panics, the whole
// event is delivered again to every handler of its type, up to the
// configured number of attempts. Handlers that must not repeat side effects
// wrap themselves with common.WithIdempotency.
type MemoryEventBus struct {
	handlers    map[string][]eventbus.HandlerFunc
	mu          sync.RWMutex
	logger      *slog.Logger
	maxAttempts int

	capture      bool
	captureLimit int
	published    []events.Event
}

// Option configures a MemoryEventBus.
type Option func(*MemoryEventBus)

// WithMaxAttempts sets how many deliveries a failing event gets. Values below 1 mean 1.
func WithMaxAttempts(n int) Option {
	return func(b *MemoryEventBus) {
		b.maxAttempts = max(n, 1)
	}
}

// WithCapture keeps emitted events for Published. A positive limit keeps
// only the most recent limit events.
func WithCapture(limit int) Option {
	return func(b *MemoryEventBus) {
		b.capture = true
		b.captureLimit = limit
	}
}

// NewWithMemory creates a new in-memory event bus.
func NewWithMemory(logger *slog.Logger, opts ...Option) *MemoryEventBus {
	if logger == nil {
		logger = slog.Default()
	}
	b := &MemoryEventBus{
		handlers:    make(map[string][]eventbus.HandlerFunc),
		logger:      logger.With("bus", "memory"),
		maxAttempts: DefaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Register registers a handler for a specific event type.
func (b *MemoryEventBus) Register(eventType string, handler eventbus.HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Emit dispatches the event to all registered handlers for its type, in
// registration order, redelivering it while any handler fails.
func (b *MemoryEventBus) Emit(ctx context.Context, event events.Event) error {
	eventType := event.Type()
	b.mu.Lock()
	handlers := append([]eventbus.HandlerFunc(nil), b.handlers[eventType]...)
	b.record(event)
	b.mu.Unlock()

	for attempt := 1; ; attempt++ {
		var failed []error
		for _, handler := range handlers {
			if err := b.dispatch(ctx, handler, event); err != nil {
				failed = append(failed, err)
			}
		}
		if len(failed) == 0 {
			return nil
		}

		log := b.logger.With("type", eventType, "attempt", attempt, "failedHandlers", len(failed))
		if attempt >= b.maxAttempts || ctx.Err() != nil {
			log.Error("❌ [DROP] Event delivery abandoned", "error", errors.Join(failed...))
			return fmt.Errorf("%w: %s after %d attempt(s): %w",
				ErrDeliveryFailed, eventType, attempt, errors.Join(failed...))
		}
		log.Warn("🔁 [RETRY] Redelivering event", "error", errors.Join(failed...))
	}
}

func (b *MemoryEventBus) dispatch(
	ctx context.Context,
	handler eventbus.HandlerFunc,
	event events.Event,
) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("panic recovered in event handler",
				"type", event.Type(), "panic", fmt.Sprint(r))
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	if err := handler(ctx, event); err != nil {
		b.logger.Error("failed to process event", "type", event.Type(), "error", err)
		return err
	}
	return nil
}

// record appends event to the capture buffer. Callers hold b.mu.
func (b *MemoryEventBus) record(event events.Event) {
	if !b.capture {
		return
	}
	b.published = append(b.published, event)
	if b.captureLimit > 0 && len(b.published) > b.captureLimit {
		b.published = append([]events.Event(nil), b.published[len(b.published)-b.captureLimit:]...)
	}
}

// ClearPublished clears the list of published events.
func (b *MemoryEventBus) ClearPublished() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = nil
}

// Published returns a copy of the captured events. It is always empty
// unless the bus was built WithCapture.
func (b *MemoryEventBus) Published() []events.Event {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]events.Event, len(b.published))
	copy(out, b.published)
	return out
}

var _ eventbus.Bus = (*MemoryEventBus)(nil)
