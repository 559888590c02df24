// Package account provides the ledger operations available to a signed-in user:
// opening accounts, deposits, withdrawals, interest, balances and statements.
//
// Every operation takes the caller's session explicitly and resolves the target
// account among the accounts that session's user owns.
package account

import (
	"context"
	"log/slog"

	"github.com/amirasaad/ledger/pkg/domain/account"
	"github.com/amirasaad/ledger/pkg/domain/events"
	"github.com/amirasaad/ledger/pkg/domain/user"
	"github.com/amirasaad/ledger/pkg/dto"
	"github.com/amirasaad/ledger/pkg/eventbus"
	"github.com/amirasaad/ledger/pkg/session"
	"github.com/shopspring/decimal"
)

// Service provides business logic for account operations.
type Service struct {
	dir    *Directory
	bus    eventbus.Bus
	logger *slog.Logger
}

// NewService creates a new Service. A nil dir uses the default numbering and limit.
func NewService(dir *Directory, bus eventbus.Bus, logger *slog.Logger) *Service {
	if dir == nil {
		dir = NewDirectory(account.DefaultFirstNumber, user.DefaultMaxAccounts)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{dir: dir, bus: bus, logger: logger}
}

// OpenAccount opens an account for the session user and records the opening
// deposit. Rejected requests do not consume an account number.
func (s *Service) OpenAccount(
	ctx context.Context,
	sess *session.Session,
	in dto.AccountOpen,
) (*account.Account, error) {
	log := s.logger.With("context", "OpenAccount", "type", in.Type)
	u, err := sess.User()
	if err != nil {
		log.Error("OpenAccount failed", "error", err)
		return nil, err
	}
	log = log.With("userID", u.ID)
	if err := dto.Validate(in); err != nil {
		log.Error("OpenAccount failed", "error", err)
		return nil, err
	}
	if err := s.dir.EnforceLimit(u); err != nil {
		log.Error("OpenAccount failed", "error", err, "owned", u.AccountCount())
		return nil, err
	}
	acc, err := account.New().
		WithNumberSource(s.dir.NextAccountNumber).
		WithHolderName(in.HolderName).
		WithType(in.Type).
		WithInitialDeposit(in.InitialDeposit).
		Build()
	if err != nil {
		log.Error("OpenAccount failed: domain error", "error", err)
		return nil, err
	}
	if err := u.AddAccount(acc, s.dir.Limit()); err != nil {
		log.Error("OpenAccount failed", "error", err, "accountNumber", acc.Number())
		return nil, err
	}
	log.Info("OpenAccount successful", "accountNumber", acc.Number(), "balance", acc.Balance())
	s.emit(ctx, log, events.NewAccountOpened(u.ID, u.Username, acc, acc.Statement()[0]))
	return acc, nil
}

// Deposit adds amount to the selected account.
func (s *Service) Deposit(
	ctx context.Context,
	sess *session.Session,
	number string,
	amount decimal.Decimal,
) (account.Transaction, error) {
	log := s.logger.With("context", "Deposit", "accountNumber", number, "amount", amount)
	u, acc, err := s.selectAccount(sess, number)
	if err != nil {
		log.Error("Deposit failed", "error", err)
		return account.Transaction{}, err
	}
	tx, err := acc.Deposit(amount)
	if err != nil {
		log.Error("Deposit failed: domain error", "error", err)
		return account.Transaction{}, err
	}
	balance := acc.Balance()
	log.Info("Deposit successful", "transactionID", tx.ID, "balance", balance)
	s.emit(ctx, log, events.NewFundsDeposited(u.ID, u.Username, tx, balance))
	return tx, nil
}

// Withdraw removes amount from the selected account. Overdrafts are rejected
// with account.ErrInsufficientFunds and change nothing.
func (s *Service) Withdraw(
	ctx context.Context,
	sess *session.Session,
	number string,
	amount decimal.Decimal,
) (account.Transaction, error) {
	log := s.logger.With("context", "Withdraw", "accountNumber", number, "amount", amount)
	u, acc, err := s.selectAccount(sess, number)
	if err != nil {
		log.Error("Withdraw failed", "error", err)
		return account.Transaction{}, err
	}
	tx, err := acc.Withdraw(amount)
	if err != nil {
		log.Error("Withdraw failed: domain error", "error", err, "balance", acc.Balance())
		return account.Transaction{}, err
	}
	balance := acc.Balance()
	log.Info("Withdraw successful", "transactionID", tx.ID, "balance", balance)
	s.emit(ctx, log, events.NewFundsWithdrawn(u.ID, u.Username, tx, balance))
	return tx, nil
}

// CheckBalance returns the balance of the selected account.
func (s *Service) CheckBalance(
	_ context.Context,
	sess *session.Session,
	number string,
) (decimal.Decimal, error) {
	log := s.logger.With("context", "CheckBalance", "accountNumber", number)
	_, acc, err := s.selectAccount(sess, number)
	if err != nil {
		log.Error("CheckBalance failed", "error", err)
		return decimal.Zero, err
	}
	balance := acc.Balance()
	log.Debug("CheckBalance successful", "balance", balance)
	return balance, nil
}

// GenerateStatement returns every transaction of the selected account, oldest first.
func (s *Service) GenerateStatement(
	_ context.Context,
	sess *session.Session,
	number string,
) ([]account.Transaction, error) {
	log := s.logger.With("context", "GenerateStatement", "accountNumber", number)
	_, acc, err := s.selectAccount(sess, number)
	if err != nil {
		log.Error("GenerateStatement failed", "error", err)
		return nil, err
	}
	statement := acc.Statement()
	log.Debug("GenerateStatement successful", "entries", len(statement))
	return statement, nil
}

// CalculateInterest credits balance × rate to the selected savings account.
func (s *Service) CalculateInterest(
	ctx context.Context,
	sess *session.Session,
	number string,
	rate decimal.Decimal,
) (account.Transaction, error) {
	log := s.logger.With("context", "CalculateInterest", "accountNumber", number, "rate", rate)
	u, acc, err := s.selectAccount(sess, number)
	if err != nil {
		log.Error("CalculateInterest failed", "error", err)
		return account.Transaction{}, err
	}
	tx, err := acc.CalculateInterest(rate)
	if err != nil {
		log.Error("CalculateInterest failed: domain error", "error", err, "type", acc.Type())
		return account.Transaction{}, err
	}
	balance := acc.Balance()
	log.Info("CalculateInterest successful", "interest", tx.Amount, "balance", balance)
	s.emit(ctx, log, events.NewInterestAccrued(u.ID, u.Username, tx, balance, rate))
	return tx, nil
}

// ListOwnedAccounts returns the session user's accounts in the order they were opened.
func (s *Service) ListOwnedAccounts(
	_ context.Context,
	sess *session.Session,
) ([]*account.Account, error) {
	u, err := sess.User()
	if err != nil {
		s.logger.Error("ListOwnedAccounts failed", "error", err)
		return nil, err
	}
	return u.Accounts(), nil
}

func (s *Service) selectAccount(sess *session.Session, number string) (*user.User, *account.Account, error) {
	u, err := sess.User()
	if err != nil {
		return nil, nil, err
	}
	acc, err := session.SelectAccount(u, number)
	if err != nil {
		return nil, nil, err
	}
	return u, acc, nil
}

func (s *Service) emit(ctx context.Context, log *slog.Logger, e events.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Emit(ctx, e); err != nil {
		log.Error("failed to emit event", "type", e.Type(), "error", err)
	}
}
