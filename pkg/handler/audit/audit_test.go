package audit_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	infraeventbus "github.com/amirasaad/ledger/infra/eventbus"
	"github.com/amirasaad/ledger/pkg/domain/account"
	"github.com/amirasaad/ledger/pkg/domain/events"
	"github.com/amirasaad/ledger/pkg/handler/audit"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func records(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		out = append(out, rec)
	}
	return out
}

func TestRegister_LogsEveryEventOnce(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	bus := infraeventbus.NewWithMemory(logger)
	audit.Register(bus, logger)

	ctx := context.Background()
	userID := uuid.New()
	acc, err := account.Open(1001, "Alice", "savings", decimal.NewFromInt(100))
	require.NoError(t, err)
	opened := events.NewAccountOpened(userID, "alice", acc, acc.Statement()[0])

	require.NoError(t, bus.Emit(ctx, events.NewUserRegistered(userID, "alice")))
	require.NoError(t, bus.Emit(ctx, opened))
	require.NoError(t, bus.Emit(ctx, opened))

	recs := records(t, &buf)
	require.Len(t, recs, 2, "redelivered event is recorded once")

	assert.Equal(t, "📝 [AUDIT] User.Registered", recs[0]["msg"])
	assert.Equal(t, "alice", recs[0]["username"])

	assert.Equal(t, "📝 [AUDIT] Account.Opened", recs[1]["msg"])
	assert.Equal(t, "1001", recs[1]["account_number"])
	assert.Equal(t, "100", recs[1]["amount"])
	assert.Equal(t, "Alice", recs[1]["holder_name"])
	assert.Equal(t, "savings", recs[1]["account_type"])
}

func TestHandler_InterestCarriesRate(t *testing.T) {
	var buf bytes.Buffer
	h := audit.Handler(slog.New(slog.NewJSONHandler(&buf, nil)))

	acc, err := account.Open(1002, "Bob", "savings", decimal.NewFromInt(200))
	require.NoError(t, err)
	rate := decimal.RequireFromString("0.05")
	tx, err := acc.CalculateInterest(rate)
	require.NoError(t, err)

	err = h(context.Background(), events.NewInterestAccrued(uuid.New(), "bob", tx, acc.Balance(), rate))
	require.NoError(t, err)

	recs := records(t, &buf)
	require.Len(t, recs, 1)
	assert.Equal(t, "0.05", recs[0]["rate"])
	assert.Equal(t, "10", recs[0]["amount"])
	assert.Equal(t, "210", recs[0]["balance"])
}
