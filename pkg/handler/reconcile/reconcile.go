// Package reconcile checks, after every ledger event, that the affected
// account's transaction log still explains its balance.
package reconcile

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/amirasaad/ledger/pkg/domain/events"
	"github.com/amirasaad/ledger/pkg/domain/user"
	"github.com/amirasaad/ledger/pkg/eventbus"
	"github.com/amirasaad/ledger/pkg/session"
)

// UserLookup resolves the owner named in an event.
type UserLookup func(ctx context.Context, username string) (*user.User, error)

type ledgerEvent interface {
	Ledger() events.LedgerEvent
}

// Handler returns an event handler that reconciles the account an event
// touched. A mismatch is returned as account.ErrLedgerMismatch so the bus
// reports it; events without a ledger part are ignored.
func Handler(lookup UserLookup, logger *slog.Logger) eventbus.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("handler", "Reconcile")
	return func(ctx context.Context, e events.Event) error {
		le, ok := e.(ledgerEvent)
		if !ok {
			return nil
		}
		ev := le.Ledger()
		number := ev.AccountNumber.String()

		owner, err := lookup(ctx, ev.Username)
		if err != nil {
			return fmt.Errorf("reconcile account %s: %w", number, err)
		}
		acc, err := session.SelectAccount(owner, number)
		if err != nil {
			return fmt.Errorf("reconcile account %s: %w", number, err)
		}
		if err := acc.Reconcile(); err != nil {
			log.ErrorContext(ctx, "⚠️ [MISMATCH] Ledger does not explain balance",
				"event_type", e.Type(),
				"account_number", number,
				"error", err,
			)
			return fmt.Errorf("reconcile account %s: %w", number, err)
		}
		log.DebugContext(ctx, "✅ [RECONCILED] "+e.Type(),
			"account_number", number,
			"balance", acc.Balance().String(),
		)
		return nil
	}
}

// Register subscribes the reconcile handler to every ledger event type.
func Register(bus eventbus.Bus, lookup UserLookup, logger *slog.Logger) {
	h := Handler(lookup, logger)
	for _, et := range events.LedgerTypes() {
		bus.Register(et.String(), h)
	}
}
