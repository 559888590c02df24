package app

import (
	"log/slog"

	"github.com/amirasaad/ledger/pkg/handler/audit"
	"github.com/amirasaad/ledger/pkg/handler/reconcile"
)

// setupEventBus registers the application's event handlers.
func (a *App) setupEventBus() {
	if a.Deps.EventBus == nil {
		return
	}
	logger := a.Deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	audit.Register(a.Deps.EventBus, logger.With("component", "audit"))
	if a.Deps.UserRepo != nil {
		reconcile.Register(a.Deps.EventBus, a.Deps.UserRepo.GetByUsername, logger.With("component", "reconcile"))
	}
}
