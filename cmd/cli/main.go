package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/amirasaad/ledger/infra/initializer"
	"github.com/amirasaad/ledger/internal/console"
	"github.com/amirasaad/ledger/pkg/app"
	"github.com/amirasaad/ledger/pkg/config"
	"github.com/charmbracelet/log"
	"golang.org/x/term"
	"gopkg.in/urfave/cli.v1"
)

var (
	envFileFlag = cli.StringFlag{
		Name:  "env-file",
		Usage: "Environment file to load before reading LOG_*, LEDGER_* and AUTH_* variables",
		Value: ".env",
	}
	logLevelFlag = cli.IntFlag{
		Name:  "log-level",
		Usage: "Override LOG_LEVEL (-4 debug, 0 info, 4 warn, 8 error)",
	}
)

func main() {
	if err := newApp(os.Stdin, os.Stdout).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(in *os.File, out io.Writer) *cli.App {
	a := cli.NewApp()
	a.Name = "ledger"
	a.Usage = "interactive single-session banking ledger"
	a.HideVersion = true
	a.Flags = []cli.Flag{envFileFlag, logLevelFlag}
	a.Action = func(ctx *cli.Context) error {
		cfg, err := config.Load(ctx.String(envFileFlag.Name))
		if err != nil {
			return fmt.Errorf("failed to load application configuration: %w", err)
		}
		if ctx.IsSet(logLevelFlag.Name) {
			cfg.Log.Level = ctx.Int(logLevelFlag.Name)
			if err := config.Validate(cfg); err != nil {
				return fmt.Errorf("invalid --%s: %w", logLevelFlag.Name, err)
			}
		}
		return run(cfg, in, out)
	}
	return a
}

func run(cfg *config.App, in *os.File, out io.Writer) (err error) {
	deps, cleanup, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer func() {
		if cerr := cleanup(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	ctx := context.Background()
	if sigs := shutdownSignals(term.IsTerminal(int(in.Fd()))); len(sigs) > 0 {
		var stop context.CancelFunc
		ctx, stop = signal.NotifyContext(ctx, sigs...)
		defer stop()
	}

	a := app.New(deps, cfg)
	prompter := console.NewPrompter(in, out)
	defer func() { _ = prompter.Close() }()

	deps.Logger.Info("starting console", "env", cfg.Env)
	c := console.New(console.Config{
		Prompter:    prompter,
		Out:         out,
		Users:       a.UserService,
		Accounts:    a.AccountService,
		Logger:      deps.Logger,
		MaxAccounts: cfg.Ledger.MaxAccountsPerUser,
	})
	if err := c.Run(ctx); err != nil {
		return fmt.Errorf("console stopped: %w", err)
	}
	deps.Logger.Info("console closed")
	return nil
}

// shutdownSignals lists the signals that end an interactive session
// gracefully. Piped input keeps the default handlers, since a blocked read
// would never observe the cancelled context.
func shutdownSignals(interactive bool) []os.Signal {
	if !interactive {
		return nil
	}
	return []os.Signal{os.Interrupt, syscall.SIGTERM}
}
