// Package audit writes one structured log record per ledger event.
package audit

import (
	"context"
	"log/slog"

	"github.com/amirasaad/ledger/pkg/domain/events"
	"github.com/amirasaad/ledger/pkg/eventbus"
	"github.com/amirasaad/ledger/pkg/handler/common"
)

// Handler returns an event handler that logs e with the fields relevant to its type.
func Handler(logger *slog.Logger) eventbus.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("handler", "Audit")
	return func(ctx context.Context, e events.Event) error {
		log.InfoContext(ctx, "📝 [AUDIT] "+e.Type(), attrs(e)...)
		return nil
	}
}

// Register subscribes the audit handler to every event type on bus.
// Redelivered events are recorded once.
func Register(bus eventbus.Bus, logger *slog.Logger) {
	h := common.WithIdempotency(
		Handler(logger),
		common.NewIdempotencyTracker(),
		common.EventIDKey,
		"Audit",
		logger,
	)
	eventbus.RegisterAll(bus, h)
}

func attrs(e events.Event) []any {
	switch ev := e.(type) {
	case *events.UserRegistered:
		return userAttrs(ev.UserEvent)
	case *events.UserLoggedIn:
		return userAttrs(ev.UserEvent)
	case *events.UserLoggedOut:
		return userAttrs(ev.UserEvent)
	case *events.AccountOpened:
		return append(ledgerAttrs(ev.LedgerEvent),
			"holder_name", ev.HolderName,
			"account_type", ev.AccountType,
		)
	case *events.FundsDeposited:
		return ledgerAttrs(ev.LedgerEvent)
	case *events.FundsWithdrawn:
		return ledgerAttrs(ev.LedgerEvent)
	case *events.InterestAccrued:
		return append(ledgerAttrs(ev.LedgerEvent), "rate", ev.Rate.String())
	default:
		return nil
	}
}

func userAttrs(e events.UserEvent) []any {
	return []any{
		"event_id", e.ID,
		"user_id", e.UserID,
		"username", e.Username,
		"at", e.Timestamp,
	}
}

func ledgerAttrs(e events.LedgerEvent) []any {
	return append(userAttrs(e.UserEvent),
		"account_number", e.AccountNumber.String(),
		"transaction_id", e.TransactionID,
		"amount", e.Amount.String(),
		"balance", e.Balance.String(),
	)
}
