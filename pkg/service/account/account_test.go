package account_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/amirasaad/ledger/infra/eventbus"
	"github.com/amirasaad/ledger/pkg/domain/account"
	"github.com/amirasaad/ledger/pkg/domain/events"
	"github.com/amirasaad/ledger/pkg/domain/user"
	"github.com/amirasaad/ledger/pkg/dto"
	"github.com/amirasaad/ledger/pkg/money"
	"github.com/amirasaad/ledger/pkg/session"
	accountsvc "github.com/amirasaad/ledger/pkg/service/account"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	os.Exit(m.Run())
}

type fixture struct {
	svc  *accountsvc.Service
	bus  *eventbus.MemoryEventBus
	sess *session.Session
	user *user.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	bus := eventbus.NewWithMemory(slog.Default(), eventbus.WithCapture(0))
	u, err := user.New("alice", "pw1")
	require.NoError(t, err)
	sess := session.New()
	sess.SignIn(u)
	return &fixture{
		svc:  accountsvc.NewService(nil, bus, slog.Default()),
		bus:  bus,
		sess: sess,
		user: u,
	}
}

func (f *fixture) open(t *testing.T, holder, typ, deposit string) *account.Account {
	t.Helper()
	acc, err := f.svc.OpenAccount(context.Background(), f.sess, dto.AccountOpen{
		HolderName:     holder,
		Type:           typ,
		InitialDeposit: money.MustParse(deposit),
	})
	require.NoError(t, err)
	return acc
}

func dec(s string) decimal.Decimal { return money.MustParse(s) }

func TestOpenAccount(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	acc := f.open(t, "Alice", "Savings", "100")

	assert.Equal(t, account.Number(1001), acc.Number())
	assert.Equal(t, account.TypeSavings, acc.Type())
	assert.Equal(t, "Alice", acc.HolderName())
	assert.True(t, dec("100").Equal(acc.Balance()))
	require.Len(t, acc.Statement(), 1)
	assert.Equal(t, account.KindDeposit, acc.Statement()[0].Kind)

	owned, err := f.svc.ListOwnedAccounts(context.Background(), f.sess)
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Same(t, acc, owned[0])

	published := f.bus.Published()
	require.Len(t, published, 1)
	opened, ok := published[0].(*events.AccountOpened)
	require.True(t, ok)
	assert.Equal(t, acc.Number(), opened.AccountNumber)
	assert.Equal(t, f.user.ID, opened.UserID)
}

func TestOpenAccount_Rejections(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)

	tests := []struct {
		name    string
		in      dto.AccountOpen
		wantErr error
	}{
		{name: "bad type", in: dto.AccountOpen{HolderName: "A", Type: "brokerage"}, wantErr: account.ErrInvalidAccountType},
		{name: "negative deposit", in: dto.AccountOpen{HolderName: "A", Type: "checking", InitialDeposit: dec("-1")}, wantErr: account.ErrInvalidAmount},
		{name: "missing holder", in: dto.AccountOpen{Type: "checking"}, wantErr: dto.ErrInvalidInput},
	}
	for _, tt := range tests {
		_, err := f.svc.OpenAccount(ctx, f.sess, tt.in)
		assert.ErrorIs(t, err, tt.wantErr, tt.name)
	}
	assert.Zero(t, f.user.AccountCount())
	assert.Empty(t, f.bus.Published())

	acc := f.open(t, "A", "checking", "0")
	assert.Equal(t, account.Number(1001), acc.Number(), "rejected opens consume no number")
	require.Len(t, acc.Statement(), 1, "zero opening deposit is still recorded")

	_, err := f.svc.OpenAccount(ctx, session.New(), dto.AccountOpen{HolderName: "A", Type: "checking"})
	assert.ErrorIs(t, err, session.ErrNotLoggedIn)
}

func TestOpenAccount_LimitExceeded(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	first := f.open(t, "Alice", "savings", "10")
	second := f.open(t, "Alice", "checking", "20")
	assert.Equal(t, account.Number(1002), second.Number())

	_, err := f.svc.OpenAccount(ctx, f.sess, dto.AccountOpen{HolderName: "Alice", Type: "savings", InitialDeposit: dec("5")})
	assert.ErrorIs(t, err, user.ErrAccountLimitExceeded)
	assert.Equal(t, 2, f.user.AccountCount())

	owned, err := f.svc.ListOwnedAccounts(ctx, f.sess)
	require.NoError(t, err)
	assert.Equal(t, []*account.Account{first, second}, owned)
}

func TestNumbersAreUniqueAcrossUsers(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := accountsvc.NewService(accountsvc.NewDirectory(0, 0), nil, nil)

	seen := map[account.Number]bool{}
	for _, name := range []string{"alice", "bob", "carol"} {
		u, err := user.New(name, "pw")
		require.NoError(t, err)
		sess := session.New()
		sess.SignIn(u)
		for range 2 {
			acc, err := svc.OpenAccount(ctx, sess, dto.AccountOpen{HolderName: name, Type: "checking"})
			require.NoError(t, err)
			assert.False(t, seen[acc.Number()], "number %s reused", acc.Number())
			seen[acc.Number()] = true
		}
	}
	assert.Len(t, seen, 6)
	assert.True(t, seen[1001])
	assert.True(t, seen[1006])
}

func TestLedgerScenario(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	acc := f.open(t, "Alice", "savings", "100")
	n := acc.Number().String()

	_, err := f.svc.Deposit(ctx, f.sess, n, dec("50"))
	require.NoError(t, err)
	balance, err := f.svc.CheckBalance(ctx, f.sess, n)
	require.NoError(t, err)
	assert.True(t, dec("150").Equal(balance))

	_, err = f.svc.Withdraw(ctx, f.sess, n, dec("200"))
	assert.ErrorIs(t, err, account.ErrInsufficientFunds)
	balance, err = f.svc.CheckBalance(ctx, f.sess, n)
	require.NoError(t, err)
	assert.True(t, dec("150").Equal(balance))

	_, err = f.svc.Withdraw(ctx, f.sess, n, dec("150"))
	require.NoError(t, err)

	tx, err := f.svc.CalculateInterest(ctx, f.sess, n, dec("0.05"))
	require.NoError(t, err)
	assert.True(t, tx.Amount.IsZero())
	assert.Equal(t, account.KindInterest, tx.Kind)

	statement, err := f.svc.GenerateStatement(ctx, f.sess, n)
	require.NoError(t, err)
	kinds := make([]account.Kind, 0, len(statement))
	for _, e := range statement {
		kinds = append(kinds, e.Kind)
	}
	assert.Equal(t, []account.Kind{
		account.KindDeposit, account.KindDeposit, account.KindWithdrawal, account.KindInterest,
	}, kinds)
	for _, acc := range f.user.Accounts() {
		require.NoError(t, acc.Reconcile())
	}

	var types []string
	for _, e := range f.bus.Published() {
		types = append(types, e.Type())
	}
	assert.Equal(t, []string{
		events.EventTypeAccountOpened.String(),
		events.EventTypeFundsDeposited.String(),
		events.EventTypeFundsWithdrawn.String(),
		events.EventTypeInterestAccrued.String(),
	}, types, "failed operations publish nothing")
}

func TestCalculateInterest(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	savings := f.open(t, "Alice", "savings", "200")
	checking := f.open(t, "Alice", "checking", "200")

	tx, err := f.svc.CalculateInterest(ctx, f.sess, savings.Number().String(), dec("0.05"))
	require.NoError(t, err)
	assert.True(t, dec("10").Equal(tx.Amount))
	assert.True(t, dec("210").Equal(savings.Balance()))

	_, err = f.svc.CalculateInterest(ctx, f.sess, checking.Number().String(), dec("0.05"))
	assert.ErrorIs(t, err, account.ErrInvalidOperation)
	assert.True(t, dec("200").Equal(checking.Balance()))
	assert.Len(t, checking.Statement(), 1)

	_, err = f.svc.CalculateInterest(ctx, f.sess, savings.Number().String(), dec("-0.01"))
	assert.ErrorIs(t, err, account.ErrInvalidRate)
}

func TestOperations_Selection(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.Deposit(ctx, f.sess, "1001", dec("1"))
	assert.ErrorIs(t, err, session.ErrNoAccountsFound)

	f.open(t, "Alice", "checking", "5")
	_, err = f.svc.Deposit(ctx, f.sess, "9999", dec("1"))
	assert.ErrorIs(t, err, session.ErrAccountNotFound)
	_, err = f.svc.CheckBalance(ctx, f.sess, "1002")
	assert.ErrorIs(t, err, session.ErrAccountNotFound)
	_, err = f.svc.GenerateStatement(ctx, f.sess, "")
	assert.ErrorIs(t, err, session.ErrAccountNotFound)

	other := session.New()
	bob, err := user.New("bob", "pw2")
	require.NoError(t, err)
	other.SignIn(bob)
	_, err = f.svc.Withdraw(ctx, other, "1001", dec("1"))
	assert.ErrorIs(t, err, session.ErrNoAccountsFound, "accounts of other users are not selectable")

	_, err = f.svc.ListOwnedAccounts(ctx, session.New())
	assert.ErrorIs(t, err, session.ErrNotLoggedIn)
}

func TestDepositWithdraw_InvalidAmounts(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	acc := f.open(t, "Alice", "checking", "10")
	n := acc.Number().String()

	for _, amt := range []string{"0", "-5"} {
		_, err := f.svc.Deposit(ctx, f.sess, n, dec(amt))
		assert.ErrorIs(t, err, account.ErrInvalidAmount)
		_, err = f.svc.Withdraw(ctx, f.sess, n, dec(amt))
		assert.ErrorIs(t, err, account.ErrInvalidAmount)
	}
	assert.Len(t, acc.Statement(), 1)
	assert.True(t, dec("10").Equal(acc.Balance()))
}
