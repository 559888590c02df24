package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMain runs before any tests and applies globally for all tests in the package.
func TestMain(m *testing.M) {
	color.NoColor = true
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	os.Exit(m.Run())
}

func script(t *testing.T, lines ...string) *os.File {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600))
	f, err := os.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestApp_RunsConsoleSession(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
	logFile := filepath.Join(t.TempDir(), "ledger.log")
	t.Setenv("LOG_FILE", logFile)
	t.Setenv("LOG_FORMAT", "json")

	in := script(t,
		"1", "alice", "pw1",
		"1", "Alice", "Checking", "25",
		"4", "1001",
		"7",
		"3",
	)
	var out bytes.Buffer
	err := newApp(in, &out).Run([]string{"ledger", "--env-file", "missing.env", "--log-level=-4"})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Account created successfully. Account Number: 1001")
	assert.Contains(t, out.String(), "Current balance: 25")
	assert.Contains(t, out.String(), "Logged out successfully.")

	logs, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(logs), "Dependencies initialized")
	assert.Contains(t, string(logs), "starting console")
	assert.Contains(t, string(logs), "[AUDIT] Account.Opened")
}

func TestApp_RejectsInvalidLogLevel(t *testing.T) {
	in := script(t, "3")
	var out bytes.Buffer
	err := newApp(in, &out).Run([]string{"ledger", "--env-file", "missing.env", "--log-level", "3"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --log-level")
	assert.Empty(t, out.String())
}

func TestApp_RejectsInvalidEnvironment(t *testing.T) {
	t.Setenv("AUTH_CREDENTIALS", "rot13")
	in := script(t, "3")
	err := newApp(in, io.Discard).Run([]string{"ledger", "--env-file", "missing.env"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load application configuration")
}

func TestShutdownSignals(t *testing.T) {
	assert.Nil(t, shutdownSignals(false), "piped input keeps default signal handling")
	assert.Equal(t, []os.Signal{os.Interrupt, syscall.SIGTERM}, shutdownSignals(true))
}
