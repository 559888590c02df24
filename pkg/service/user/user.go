// Package user provides registration, login and logout against the user directory.
package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/ledger/pkg/domain/events"
	"github.com/amirasaad/ledger/pkg/domain/user"
	"github.com/amirasaad/ledger/pkg/dto"
	"github.com/amirasaad/ledger/pkg/eventbus"
	userrepo "github.com/amirasaad/ledger/pkg/repository/user"
	"github.com/amirasaad/ledger/pkg/session"
	"github.com/amirasaad/ledger/pkg/utils"
)

// Service provides business logic for user operations.
type Service struct {
	repo   userrepo.Repository
	creds  utils.Credentials
	bus    eventbus.Bus
	logger *slog.Logger
}

// New creates a new Service. A nil creds defaults to plain comparison.
func New(
	repo userrepo.Repository,
	creds utils.Credentials,
	bus eventbus.Bus,
	logger *slog.Logger,
) *Service {
	if creds == nil {
		creds = utils.PlainCredentials{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:   repo,
		creds:  creds,
		bus:    bus,
		logger: logger,
	}
}

// Register creates a user and signs it into sess.
func (s *Service) Register(
	ctx context.Context,
	sess *session.Session,
	username, password string,
) (*user.User, error) {
	in := dto.UserCreate{Username: username, Password: password}
	log := s.logger.With("context", "Register", "username", in.Username)
	if err := dto.Validate(in); err != nil {
		log.Error("Register failed", "error", err)
		return nil, err
	}
	exists, err := s.repo.ExistsByUsername(ctx, in.Username)
	if err != nil {
		log.Error("Register failed", "error", err)
		return nil, fmt.Errorf("register %q: %w", in.Username, err)
	}
	if exists {
		log.Error("Register failed", "error", user.ErrDuplicateUsername)
		return nil, user.ErrDuplicateUsername
	}
	stored, err := s.creds.Hash(in.Password)
	if err != nil {
		log.Error("Register failed", "error", err)
		return nil, fmt.Errorf("register %q: %w", in.Username, err)
	}
	u, err := user.New(in.Username, stored)
	if err != nil {
		log.Error("Register failed", "error", err)
		return nil, err
	}
	if err := s.repo.Create(ctx, u); err != nil {
		log.Error("Register failed", "error", err)
		if errors.Is(err, user.ErrDuplicateUsername) {
			return nil, user.ErrDuplicateUsername
		}
		return nil, fmt.Errorf("register %q: %w", in.Username, err)
	}
	sess.SignIn(u)
	log.Info("Register successful", "userID", u.ID)
	s.emit(ctx, log, events.NewUserRegistered(u.ID, u.Username))
	s.emit(ctx, log, events.NewUserLoggedIn(u.ID, u.Username))
	return u, nil
}

// Login signs the user matching username and password into sess.
// Any mismatch is reported as user.ErrInvalidCredentials and leaves sess unchanged.
func (s *Service) Login(
	ctx context.Context,
	sess *session.Session,
	username, password string,
) (*user.User, error) {
	in := dto.UserLogin{Username: username, Password: password}
	log := s.logger.With("context", "Login", "username", in.Username)
	u, err := s.repo.GetByUsername(ctx, in.Username)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			log.Info("Login failed", "error", user.ErrInvalidCredentials)
			return nil, user.ErrInvalidCredentials
		}
		log.Error("Login failed", "error", err)
		return nil, fmt.Errorf("login %q: %w", in.Username, err)
	}
	if !s.creds.Verify(in.Password, u.Password) {
		log.Info("Login failed", "error", user.ErrInvalidCredentials)
		return nil, user.ErrInvalidCredentials
	}
	sess.SignIn(u)
	log.Info("Login successful", "userID", u.ID)
	s.emit(ctx, log, events.NewUserLoggedIn(u.ID, u.Username))
	return u, nil
}

// Logout clears the active user of sess. The user record is kept.
func (s *Service) Logout(ctx context.Context, sess *session.Session) error {
	log := s.logger.With("context", "Logout")
	signedIn := sess.SignedInAt()
	u, ok := sess.SignOut()
	if !ok {
		log.Error("Logout failed", "error", session.ErrNotLoggedIn)
		return session.ErrNotLoggedIn
	}
	log.Info("Logout successful",
		"userID", u.ID,
		"username", u.Username,
		"sessionDuration", time.Since(signedIn).Round(time.Millisecond),
	)
	s.emit(ctx, log, events.NewUserLoggedOut(u.ID, u.Username))
	return nil
}

func (s *Service) emit(ctx context.Context, log *slog.Logger, e events.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Emit(ctx, e); err != nil {
		log.Error("failed to emit event", "type", e.Type(), "error", err)
	}
}
