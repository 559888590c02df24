package app

import (
	"log/slog"

	"github.com/amirasaad/ledger/pkg/config"
	"github.com/amirasaad/ledger/pkg/domain/account"
	"github.com/amirasaad/ledger/pkg/eventbus"
	userrepo "github.com/amirasaad/ledger/pkg/repository/user"
	accountsvc "github.com/amirasaad/ledger/pkg/service/account"
	usersvc "github.com/amirasaad/ledger/pkg/service/user"
	"github.com/amirasaad/ledger/pkg/utils"
)

// Deps contains the infrastructure the services are built from.
type Deps struct {
	UserRepo    userrepo.Repository
	Credentials utils.Credentials
	EventBus    eventbus.Bus
	Logger      *slog.Logger
}

// App is the wired application: configuration, services and their dependencies.
type App struct {
	Deps           *Deps
	Config         *config.App
	Directory      *accountsvc.Directory
	UserService    *usersvc.Service
	AccountService *accountsvc.Service
}

// New builds the services from deps and cfg and subscribes the event handlers.
func New(deps *Deps, cfg *config.App) *App {
	app := &App{
		Deps:   deps,
		Config: cfg,
	}
	app.setupEventBus()

	app.Directory = accountsvc.NewDirectory(
		account.Number(cfg.Ledger.FirstAccountNumber),
		cfg.Ledger.MaxAccountsPerUser,
	)
	app.UserService = usersvc.New(deps.UserRepo, deps.Credentials, deps.EventBus, deps.Logger)
	app.AccountService = accountsvc.NewService(app.Directory, deps.EventBus, deps.Logger)
	return app
}
