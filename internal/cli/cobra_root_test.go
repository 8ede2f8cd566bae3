package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labkit/internal/config"
	apperrors "labkit/internal/errors"
	"labkit/internal/logging"
	"labkit/internal/repository/sqlite"
)

var instantFlags = []string{
	"--plain",
	"--fetch-min-delay", "0s",
	"--fetch-max-delay", "0s",
	"--save-delay", "0s",
	"--save-failure-rate", "0",
}

func memoryRepository(*config.Config) (sqlite.Repository, error) {
	return config.CreateTestRepository()
}

func runRoot(t *testing.T, input string, args ...string) (*RootCommand, string, error) {
	t.Helper()
	root := NewRootCommand(config.NewLoader().WithEnvFile(""), memoryRepository)
	t.Cleanup(func() { root.Close() })

	var out, errOut bytes.Buffer
	root.SetIO(strings.NewReader(input), &out, &errOut)
	root.SetArgs(append(append([]string{}, instantFlags...), args...))
	err := root.Execute()
	return root, out.String(), err
}

func TestRootCommand_RunsExercises(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		contains string
	}{
		{"calc", []string{"calc", "2", "3", "add"}, "2 + 3 = 5"},
		{"quiz", []string{"quiz", "b", "c", "c", "b", "b"}, "All Correct!"},
		{"register", []string{"register", "Sara", "sara@x.io", "21", "secret1"}, "Welcome, Sara."},
		{"records", []string{"records"}, "Records · 3 records"},
		{"loader", []string{"loader"}, "Loaded 8 users"},
		{"portal save", []string{"portal", "save"}, "Saved 3 students & 4 courses"},
		{"todo", []string{"todo", "add", "Buy milk"}, "Added #1 Buy milk"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, out, err := runRoot(t, "", tt.args...)
			require.NoError(t, err)
			assert.Contains(t, out, tt.contains)
			assert.True(t, root.Config().Display.Plain)
		})
	}
}

func TestRootCommand_FailFlag(t *testing.T) {
	_, out, err := runRoot(t, "", "loader", "--fail")
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeTransport))
	assert.Contains(t, out, "Failed")

	_, _, err = runRoot(t, "", "portal", "save", "--fail")
	require.Error(t, err)
	assert.Equal(t, "Server timeout — please try again.", apperrors.GetUserMessage(err))
}

func TestRootCommand_FlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("LAB_TAX_RATE", "0.2")
	t.Setenv("LAB_HISTORY_LIMIT", "3")

	root, out, err := runRoot(t, "", "--tax-rate", "0", "cart", "add", "1")
	require.NoError(t, err)
	assert.Equal(t, 0.0, root.Config().Cart.TaxRate)
	assert.Equal(t, 3, root.Config().Calculator.HistoryLimit)
	assert.Contains(t, out, "Total     $29.99")
}

func TestRootCommand_InvalidConfiguration(t *testing.T) {
	_, _, err := runRoot(t, "", "--history-limit", "0", "calc", "history")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "history limit must be at least 1")
}

func TestRootCommand_RepositoryError(t *testing.T) {
	root := NewRootCommand(config.NewLoader().WithEnvFile(""), func(*config.Config) (sqlite.Repository, error) {
		return nil, errors.New("disk full")
	})
	root.SetIO(strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})
	root.SetArgs([]string{"todo"})

	assert.EqualError(t, root.Execute(), "disk full")
	assert.NoError(t, root.Close())
}

func TestRootCommand_Verbose(t *testing.T) {
	var debug bytes.Buffer
	prev := logging.SetOutput(&debug)
	t.Cleanup(func() {
		logging.SetOutput(prev)
		logging.SetVerbose(false)
	})

	_, _, err := runRoot(t, "", "--verbose", "calc", "1", "1", "add")
	require.NoError(t, err)
	assert.Contains(t, debug.String(), "config: db=")
}

func TestRootCommand_Shell(t *testing.T) {
	_, out, err := runRoot(t, "todo add A\ntodo add B\ntodo\nexit\n", "shell")
	require.NoError(t, err)
	assert.Contains(t, out, "Added #2 B")
	assert.Contains(t, out, "To-do · 2 tasks")
}

func TestRootCommand_Serve(t *testing.T) {
	root := NewRootCommand(config.NewLoader().WithEnvFile(""), memoryRepository)
	var out bytes.Buffer
	root.SetIO(strings.NewReader(""), &out, &bytes.Buffer{})
	root.SetArgs(append(append([]string{}, instantFlags...), "--addr", "127.0.0.1:0", "serve"))

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	require.NoError(t, root.ExecuteContext(ctx))
	assert.Contains(t, out.String(), "Serving on 127.0.0.1:0")
}

func TestRootCommand_UnknownCommand(t *testing.T) {
	_, _, err := runRoot(t, "", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}

func TestOverridesFromFlags(t *testing.T) {
	root := NewRootCommand(config.NewLoader().WithEnvFile(""), memoryRepository)
	flags := root.cmd.PersistentFlags()
	require.NoError(t, flags.Parse([]string{"--db-dir", "/tmp/lab", "--save-failure-rate", "0", "--verbose"}))

	o := overridesFromFlags(flags)

	require.NotNil(t, o.DBDir)
	assert.Equal(t, "/tmp/lab", *o.DBDir)
	require.NotNil(t, o.SaveFailureRate)
	assert.Equal(t, 0.0, *o.SaveFailureRate)
	require.NotNil(t, o.Verbose)
	assert.True(t, *o.Verbose)
	assert.Nil(t, o.TaxRate)
	assert.Nil(t, o.Addr)
	assert.Nil(t, o.Timeout)
}

func TestRootCommand_Aliases(t *testing.T) {
	_, out, err := runRoot(t, "", "load")
	require.NoError(t, err)
	assert.Contains(t, out, "Loaded 8 users")

	_, out, err = runRoot(t, "", "saves")
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing saved yet.")
}

func TestRootCommand_RegisterFlags(t *testing.T) {
	_, out, err := runRoot(t, "", "register", "--name", "Sara", "--email", "sara@x.io", "--age", "21", "--password", "secret1")
	require.NoError(t, err)
	assert.Contains(t, out, "Welcome, Sara.")

	_, _, err = runRoot(t, "", "register", "--name", "Sara")
	require.Error(t, err)
	assert.Contains(t, apperrors.GetUserMessage(err), "Email is required.")
}
