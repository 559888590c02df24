// Package console runs the interactive banking menu on top of the ledger services.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/amirasaad/ledger/pkg/domain/account"
	"github.com/amirasaad/ledger/pkg/domain/user"
	"github.com/amirasaad/ledger/pkg/dto"
	"github.com/amirasaad/ledger/pkg/mapper"
	"github.com/amirasaad/ledger/pkg/money"
	"github.com/amirasaad/ledger/pkg/session"
	accountsvc "github.com/amirasaad/ledger/pkg/service/account"
	usersvc "github.com/amirasaad/ledger/pkg/service/user"
	"github.com/fatih/color"
	"github.com/shopspring/decimal"
)

// StatementTimeFormat is the layout of timestamps in statement lines.
const StatementTimeFormat = time.DateTime

// Config holds what a Console needs to run.
type Config struct {
	Prompter Prompter
	Out      io.Writer
	Users    *usersvc.Service
	Accounts *accountsvc.Service
	Logger   *slog.Logger
	// MaxAccounts is only used to word the limit message.
	MaxAccounts int
}

// Console drives one interactive session.
type Console struct {
	prompt      Prompter
	out         io.Writer
	users       *usersvc.Service
	accounts    *accountsvc.Service
	sess        *session.Session
	logger      *slog.Logger
	maxAccounts int

	title   *color.Color
	success *color.Color
	failure *color.Color
}

// New creates a Console with nobody signed in.
func New(cfg Config) *Console {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	maxAccounts := cfg.MaxAccounts
	if maxAccounts <= 0 {
		maxAccounts = user.DefaultMaxAccounts
	}
	return &Console{
		prompt:      cfg.Prompter,
		out:         cfg.Out,
		users:       cfg.Users,
		accounts:    cfg.Accounts,
		sess:        session.New(),
		logger:      logger.With("component", "console"),
		maxAccounts: maxAccounts,
		title:       color.New(color.FgCyan, color.Bold),
		success:     color.New(color.FgGreen),
		failure:     color.New(color.FgRed),
	}
}

// Session returns the console's session.
func (c *Console) Session() *session.Session {
	return c.sess
}

// Run shows menus until the user exits, input ends, or ctx is done.
// End of input and an interrupted prompt are a normal exit.
func (c *Console) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		var (
			exit bool
			err  error
		)
		if c.sess.Active() {
			err = c.accountMenu(ctx)
		} else {
			exit, err = c.mainMenu(ctx)
		}
		switch {
		case errors.Is(err, io.EOF), errors.Is(err, ErrAborted):
			c.logger.Debug("console input closed", "error", err)
			return nil
		case err != nil:
			return err
		case exit:
			return nil
		}
	}
}

func (c *Console) mainMenu(ctx context.Context) (bool, error) {
	c.heading("---Banking Application ---")
	c.println("1. Register")
	c.println("2. Login")
	c.println("3. Exit")
	choice, err := c.ask("Choose an option: ")
	if err != nil {
		return false, err
	}
	switch choice {
	case "1":
		return false, c.register(ctx)
	case "2":
		return false, c.login(ctx)
	case "3":
		return true, nil
	default:
		c.fail("Invalid option. Try again.")
		return false, nil
	}
}

func (c *Console) accountMenu(ctx context.Context) error {
	u, err := c.sess.User()
	if err != nil {
		return nil
	}
	c.heading("---Banking Application Menu---")
	c.println("\nWelcome, " + u.Username)
	c.println("1. Open New Account")
	c.println("2. Deposit")
	c.println("3. Withdraw")
	c.println("4. Check Balance")
	c.println("5. Generate Statement")
	c.println("6. Calculate Interest")
	c.println("7. Logout")
	choice, err := c.ask("Choose an option: ")
	if err != nil {
		return err
	}
	switch choice {
	case "1":
		return c.openAccount(ctx)
	case "2":
		return c.deposit(ctx)
	case "3":
		return c.withdraw(ctx)
	case "4":
		return c.checkBalance(ctx)
	case "5":
		return c.statement(ctx)
	case "6":
		return c.interest(ctx)
	case "7":
		return c.logout(ctx)
	default:
		c.fail("Invalid option. Try again.")
		return nil
	}
}

func (c *Console) register(ctx context.Context) error {
	c.heading("--- Register ---")
	username, err := c.prompt.PromptInput("Enter username: ")
	if err != nil {
		return err
	}
	password, err := c.prompt.PromptPassword("Enter password: ")
	if err != nil {
		return err
	}
	if _, err := c.users.Register(ctx, c.sess, username, password); err != nil {
		c.fail(c.describe(err))
		return nil
	}
	c.ok("User registered successfully. You are now logged in.")
	return nil
}

func (c *Console) login(ctx context.Context) error {
	username, err := c.prompt.PromptInput("Enter username: ")
	if err != nil {
		return err
	}
	password, err := c.prompt.PromptPassword("Enter password: ")
	if err != nil {
		return err
	}
	if _, err := c.users.Login(ctx, c.sess, username, password); err != nil {
		c.fail(c.describe(err))
		return nil
	}
	c.ok("Login successful.")
	return nil
}

func (c *Console) logout(ctx context.Context) error {
	if err := c.users.Logout(ctx, c.sess); err != nil {
		c.fail(c.describe(err))
		return nil
	}
	c.ok("Logged out successfully.")
	return nil
}

func (c *Console) openAccount(ctx context.Context) error {
	c.heading("--- Open Account ---")
	holder, err := c.prompt.PromptInput("Enter account holder's name: ")
	if err != nil {
		return err
	}
	accountType, err := c.ask("Enter account type (savings/checking): ")
	if err != nil {
		return err
	}
	for {
		if _, perr := account.ParseType(accountType); perr == nil {
			break
		}
		c.fail("Invalid account type. Please enter 'savings' or 'checking'.")
		if accountType, err = c.ask("Enter account type (savings/checking): "); err != nil {
			return err
		}
	}
	deposit, ok, err := c.askAmount("Enter initial deposit: ")
	if err != nil || !ok {
		return err
	}
	acc, err := c.accounts.OpenAccount(ctx, c.sess, dto.AccountOpen{
		HolderName:     holder,
		Type:           accountType,
		InitialDeposit: deposit,
	})
	if err != nil {
		c.fail(c.describe(err))
		return nil
	}
	c.ok(fmt.Sprintf("Account created successfully. Account Number: %s", acc.Number()))
	return nil
}

func (c *Console) deposit(ctx context.Context) error {
	c.heading("--- Deposit ---")
	number, ok, err := c.selectAccount(ctx)
	if err != nil || !ok {
		return err
	}
	amount, ok, err := c.askAmount("Enter deposit amount: ")
	if err != nil || !ok {
		return err
	}
	if _, err := c.accounts.Deposit(ctx, c.sess, number, amount); err != nil {
		c.fail(c.describe(err))
		return nil
	}
	c.ok("Deposit successful.")
	return nil
}

func (c *Console) withdraw(ctx context.Context) error {
	c.heading("--- Withdraw ---")
	number, ok, err := c.selectAccount(ctx)
	if err != nil || !ok {
		return err
	}
	amount, ok, err := c.askAmount("Enter withdrawal amount: ")
	if err != nil || !ok {
		return err
	}
	if _, err := c.accounts.Withdraw(ctx, c.sess, number, amount); err != nil {
		c.fail(c.describe(err))
		return nil
	}
	c.ok("Withdrawal successful.")
	return nil
}

func (c *Console) checkBalance(ctx context.Context) error {
	c.heading("--- Check Balance ---")
	number, ok, err := c.selectAccount(ctx)
	if err != nil || !ok {
		return err
	}
	balance, err := c.accounts.CheckBalance(ctx, c.sess, number)
	if err != nil {
		c.fail(c.describe(err))
		return nil
	}
	c.println("Current balance: " + balance.String())
	return nil
}

func (c *Console) statement(ctx context.Context) error {
	c.heading("--- Transaction History ---")
	number, ok, err := c.selectAccount(ctx)
	if err != nil || !ok {
		return err
	}
	entries, err := c.accounts.GenerateStatement(ctx, c.sess, number)
	if err != nil {
		c.fail(c.describe(err))
		return nil
	}
	for _, tx := range mapper.MapStatementToRead(entries) {
		c.println(fmt.Sprintf("%s: %s of %s", tx.CreatedAt.Format(StatementTimeFormat), tx.Kind, tx.Amount))
	}
	return nil
}

func (c *Console) interest(ctx context.Context) error {
	c.heading("--- Calculate Interest ---")
	number, ok, err := c.selectAccount(ctx)
	if err != nil || !ok {
		return err
	}
	line, err := c.ask("Enter interest rate (e.g., 0.05 for 5%): ")
	if err != nil {
		return err
	}
	rate, err := money.ParseRate(line)
	if err != nil {
		c.fail(c.describe(err))
		return nil
	}
	tx, err := c.accounts.CalculateInterest(ctx, c.sess, number, rate)
	if err != nil {
		c.fail(c.describe(err))
		return nil
	}
	c.ok(fmt.Sprintf("Interest of %s added to the account %s.", tx.Amount, tx.AccountNumber))
	return nil
}

// selectAccount lists the owned accounts and reads a choice. ok is false when
// the choice could not be resolved; the reason has already been printed.
func (c *Console) selectAccount(ctx context.Context) (number string, ok bool, err error) {
	owned, err := c.accounts.ListOwnedAccounts(ctx, c.sess)
	if err != nil {
		c.fail(c.describe(err))
		return "", false, nil
	}
	if len(owned) == 0 {
		c.fail(c.describe(session.ErrNoAccountsFound))
		return "", false, nil
	}
	c.println("Select an account by number:")
	for _, acc := range mapper.MapAccountsToRead(owned) {
		c.println("- " + acc.Number)
	}
	number, err = c.ask("")
	if err != nil {
		return "", false, err
	}
	if _, err := c.sess.SelectAccount(number); err != nil {
		c.fail(c.describe(err))
		return "", false, nil
	}
	return number, true, nil
}

func (c *Console) askAmount(prompt string) (amount decimal.Decimal, ok bool, err error) {
	line, err := c.ask(prompt)
	if err != nil {
		return decimal.Zero, false, err
	}
	amount, err = money.Parse(line)
	if err != nil {
		c.fail(c.describe(err))
		return decimal.Zero, false, nil
	}
	return amount, true, nil
}

// ask reads a line with surrounding whitespace removed.
func (c *Console) ask(prompt string) (string, error) {
	line, err := c.prompt.PromptInput(prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (c *Console) describe(err error) string {
	switch {
	case errors.Is(err, user.ErrDuplicateUsername):
		return "User already exists. Please try logging in or use another username."
	case errors.Is(err, user.ErrInvalidCredentials):
		return "Invalid credentials."
	case errors.Is(err, user.ErrAccountLimitExceeded):
		if c.maxAccounts == 2 {
			return "Only two accounts per user are allowed."
		}
		return fmt.Sprintf("Only %d accounts per user are allowed.", c.maxAccounts)
	case errors.Is(err, account.ErrInvalidAccountType):
		return "Invalid account type. Please enter 'savings' or 'checking'."
	case errors.Is(err, account.ErrInsufficientFunds):
		return "Insufficient funds. Withdrawal failed."
	case errors.Is(err, account.ErrInvalidOperation):
		return "Interest can only be calculated for savings accounts."
	case errors.Is(err, account.ErrInvalidRate):
		return "Invalid interest rate. Enter a non-negative number such as 0.05."
	case errors.Is(err, account.ErrInvalidAmount):
		return "Invalid amount. Enter a positive number."
	case errors.Is(err, session.ErrNoAccountsFound):
		return "No accounts found."
	case errors.Is(err, session.ErrAccountNotFound):
		return "Account not found."
	case errors.Is(err, session.ErrNotLoggedIn):
		return "Please log in first."
	case errors.Is(err, dto.ErrInvalidInput):
		return "Invalid input: " + strings.TrimPrefix(err.Error(), dto.ErrInvalidInput.Error()+": ") + "."
	default:
		c.logger.Error("unexpected error", "error", err)
		return "Something went wrong: " + err.Error()
	}
}

func (c *Console) heading(s string) {
	c.println("")
	_, _ = c.title.Fprintln(c.out, s)
}

func (c *Console) println(s string) {
	_, _ = fmt.Fprintln(c.out, s)
}

func (c *Console) ok(s string) {
	_, _ = c.success.Fprintln(c.out, s)
}

func (c *Console) fail(s string) {
	_, _ = c.failure.Fprintln(c.out, s)
}
