package common

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/amirasaad/ledger/pkg/domain/events"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdempotencyTracker(t *testing.T) {
	t.Parallel()
	tracker := NewIdempotencyTracker()
	key := "test-key-1"

	assert.False(t, tracker.Processed(key))
	tracker.Store(key)
	assert.True(t, tracker.Processed(key))
	tracker.Delete(key)
	assert.False(t, tracker.Processed(key))
}

func TestEventIDKey(t *testing.T) {
	t.Parallel()
	e := events.NewUserLoggedIn(uuid.New(), "alice")
	assert.Equal(t, e.ID.String(), EventIDKey(e))
	assert.Empty(t, EventIDKey(&events.UserLoggedIn{}), "zero id yields no key")
	assert.Empty(t, EventIDKey(&testEvent{}))
}

func TestWithIdempotency(t *testing.T) {
	t.Parallel()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	ctx := context.Background()

	t.Run("executes handler when key is empty", func(t *testing.T) {
		t.Parallel()
		calls := 0
		handler := func(context.Context, events.Event) error {
			calls++
			return nil
		}
		wrapped := WithIdempotency(handler, NewIdempotencyTracker(), EventIDKey, "test-handler", logger)

		require.NoError(t, wrapped(ctx, &testEvent{}))
		require.NoError(t, wrapped(ctx, &testEvent{}))
		assert.Equal(t, 2, calls)
	})

	t.Run("skips handler when event already processed", func(t *testing.T) {
		t.Parallel()
		calls := 0
		handler := func(context.Context, events.Event) error {
			calls++
			return nil
		}
		wrapped := WithIdempotency(handler, NewIdempotencyTracker(), EventIDKey, "test-handler", logger)
		event := events.NewUserRegistered(uuid.New(), "alice")

		require.NoError(t, wrapped(ctx, event))
		require.NoError(t, wrapped(ctx, event))
		assert.Equal(t, 1, calls)

		require.NoError(t, wrapped(ctx, events.NewUserRegistered(uuid.New(), "bob")))
		assert.Equal(t, 2, calls)
	})

	t.Run("failed handling can be retried", func(t *testing.T) {
		t.Parallel()
		tracker := NewIdempotencyTracker()
		handlerErr := errors.New("handler error")
		fail := true
		handler := func(context.Context, events.Event) error {
			if fail {
				return handlerErr
			}
			return nil
		}
		wrapped := WithIdempotency(handler, tracker, EventIDKey, "test-handler", logger)
		event := events.NewUserLoggedOut(uuid.New(), "alice")

		err := wrapped(ctx, event)
		require.ErrorIs(t, err, handlerErr)
		assert.False(t, tracker.Processed(EventIDKey(event)))

		fail = false
		require.NoError(t, wrapped(ctx, event))
		assert.True(t, tracker.Processed(EventIDKey(event)))
	})

	t.Run("concurrent deliveries run the handler once", func(t *testing.T) {
		t.Parallel()
		var calls atomic.Int32
		handler := func(context.Context, events.Event) error {
			calls.Add(1)
			return nil
		}
		wrapped := WithIdempotency(handler, NewIdempotencyTracker(), EventIDKey, "test-handler", nil)
		event := events.NewUserLoggedIn(uuid.New(), "alice")

		var wg sync.WaitGroup
		for range 16 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.NoError(t, wrapped(ctx, event))
			}()
		}
		wg.Wait()
		assert.Equal(t, int32(1), calls.Load())
	})
}

type testEvent struct{}

func (e *testEvent) Type() string {
	return "test.event"
}
