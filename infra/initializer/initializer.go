package initializer

import (
	"fmt"

	infra_eventbus "github.com/amirasaad/ledger/infra/eventbus"
	infra_user "github.com/amirasaad/ledger/infra/repository/user"
	"github.com/amirasaad/ledger/pkg/app"
	"github.com/amirasaad/ledger/pkg/config"
	"github.com/amirasaad/ledger/pkg/utils"
)

// InitializeDependencies builds the logger and the in-memory infrastructure.
// The returned cleanup flushes and closes the log output.
func InitializeDependencies(cfg *config.App) (
	deps *app.Deps,
	cleanup func() error,
	err error,
) {
	out := logOutput(cfg.Log)
	logger := setupLogger(cfg.Log, out)

	creds, err := utils.NewCredentials(cfg.Auth.Credentials, cfg.Auth.BcryptCost)
	if err != nil {
		_ = out.Close()
		return nil, nil, fmt.Errorf("failed to initialize credential policy: %w", err)
	}

	bus := infra_eventbus.NewWithMemory(logger,
		infra_eventbus.WithMaxAttempts(cfg.Ledger.EventMaxAttempts),
	)
	deps = &app.Deps{
		UserRepo:    infra_user.New(),
		Credentials: creds,
		EventBus:    bus,
		Logger:      logger,
	}
	logger.Info("Dependencies initialized",
		"env", cfg.Env,
		"credentials", cfg.Auth.Credentials,
		"first_account_number", cfg.Ledger.FirstAccountNumber,
		"max_accounts_per_user", cfg.Ledger.MaxAccountsPerUser,
		"event_max_attempts", cfg.Ledger.EventMaxAttempts,
	)
	return deps, out.Close, nil
}
