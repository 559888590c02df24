package user

import (
	"context"
	"sync"

	"github.com/amirasaad/ledger/pkg/domain/user"
	repo "github.com/amirasaad/ledger/pkg/repository/user"
)

// repository keeps users in process memory for the life of the program.
type repository struct {
	mu         sync.RWMutex
	byUsername map[string]*user.User
}

// New returns an empty in-memory user repository.
func New() repo.Repository {
	return &repository{byUsername: make(map[string]*user.User)}
}

func (r *repository) Create(
	ctx context.Context,
	u *user.User,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.byUsername[u.Username]; taken {
		return user.ErrDuplicateUsername
	}
	r.byUsername[u.Username] = u
	return nil
}

func (r *repository) GetByUsername(
	ctx context.Context,
	username string,
) (*user.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byUsername[username]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

func (r *repository) ExistsByUsername(
	ctx context.Context,
	username string,
) (bool, error) {
	_, err := r.GetByUsername(ctx, username)
	switch err {
	case nil:
		return true, nil
	case user.ErrUserNotFound:
		return false, nil
	default:
		return false, err
	}
}
