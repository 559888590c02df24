package user

import (
	"context"

	"github.com/amirasaad/ledger/pkg/domain/user"
)

// Repository defines the interface for user storage.
// Usernames are unique and compared case-sensitively.
type Repository interface {
	// Create stores u, or returns user.ErrDuplicateUsername if the username is taken.
	Create(ctx context.Context, u *user.User) error

	// GetByUsername returns the user with exactly this username, or user.ErrUserNotFound.
	GetByUsername(ctx context.Context, username string) (*user.User, error)

	// ExistsByUsername checks if a user with the given username exists.
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}
