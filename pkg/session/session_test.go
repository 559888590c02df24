package session_test

import (
	"testing"

	"github.com/amirasaad/ledger/pkg/domain/account"
	"github.com/amirasaad/ledger/pkg/domain/user"
	"github.com/amirasaad/ledger/pkg/session"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignInSignOut(t *testing.T) {
	t.Parallel()
	s := session.New()
	assert.False(t, s.Active())
	_, err := s.User()
	assert.ErrorIs(t, err, session.ErrNotLoggedIn)

	u, err := user.New("alice", "pw1")
	require.NoError(t, err)
	s.SignIn(u)
	assert.True(t, s.Active())
	assert.False(t, s.SignedInAt().IsZero())
	got, err := s.User()
	require.NoError(t, err)
	assert.Same(t, u, got)

	out, ok := s.SignOut()
	assert.True(t, ok)
	assert.Same(t, u, out)
	assert.False(t, s.Active())
	assert.True(t, s.SignedInAt().IsZero())

	_, ok = s.SignOut()
	assert.False(t, ok)
}

func TestSelectAccount(t *testing.T) {
	t.Parallel()
	u, err := user.New("alice", "pw1")
	require.NoError(t, err)
	s := session.New()

	_, err = s.SelectAccount("1001")
	assert.ErrorIs(t, err, session.ErrNotLoggedIn)

	s.SignIn(u)
	_, err = s.SelectAccount("1001")
	assert.ErrorIs(t, err, session.ErrNoAccountsFound)

	first, err := account.Open(1001, "Alice", "savings", decimal.NewFromInt(10))
	require.NoError(t, err)
	second, err := account.Open(1004, "Alice Jr", "checking", decimal.Zero)
	require.NoError(t, err)
	require.NoError(t, u.AddAccount(first, user.DefaultMaxAccounts))
	require.NoError(t, u.AddAccount(second, user.DefaultMaxAccounts))

	tests := []struct {
		input   string
		want    *account.Account
		wantErr error
	}{
		{input: "1001", want: first},
		{input: "1004", want: second},
		{input: "1002", wantErr: session.ErrAccountNotFound},
		{input: "1001 ", wantErr: session.ErrAccountNotFound},
		{input: "abc", wantErr: session.ErrAccountNotFound},
	}
	for _, tt := range tests {
		got, err := s.SelectAccount(tt.input)
		if tt.wantErr != nil {
			assert.ErrorIs(t, err, tt.wantErr, "input %q", tt.input)
			continue
		}
		require.NoError(t, err)
		assert.Same(t, tt.want, got)
	}
	assert.Len(t, first.Statement(), 1, "selection has no side effects")
}

func TestSelectAccount_NilUser(t *testing.T) {
	t.Parallel()
	_, err := session.SelectAccount(nil, "1001")
	assert.ErrorIs(t, err, session.ErrNotLoggedIn)
}
