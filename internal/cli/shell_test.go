package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labkit/internal/logging"
)

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected []string
	}{
		{"empty", "", nil},
		{"blank", "  \t ", nil},
		{"words", "todo add milk", []string{"todo", "add", "milk"}},
		{"extra spaces", "  calc  2\t3   add ", []string{"calc", "2", "3", "add"}},
		{"double quotes", `students add "Hina Raza" 5 "Calculus, Physics"`, []string{"students", "add", "Hina Raza", "5", "Calculus, Physics"}},
		{"single quotes keep backslash", `todo add 'C:\dir'`, []string{"todo", "add", `C:\dir`}},
		{"escaped space", `todo add Buy\ milk`, []string{"todo", "add", "Buy milk"}},
		{"escaped quote", `todo add say\"hi\"`, []string{"todo", "add", `say"hi"`}},
		{"empty quoted arg", `products list '' Audio`, []string{"products", "list", "", "Audio"}},
		{"quotes inside word", `a"b c"d`, []string{"ab cd"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args, err := splitArgs(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, args)
		})
	}
}

func TestSplitArgs_Unterminated(t *testing.T) {
	for _, line := range []string{`todo add "milk`, `todo add 'milk`, `todo add milk\`} {
		_, err := splitArgs(line)
		assert.Error(t, err, line)
	}
}

func TestShell_Run(t *testing.T) {
	input := "todo add 'Buy milk'\n" +
		"\n" +
		"todo bogus\n" +
		"todo add \"oops\n" +
		"help todo\n" +
		"exit\n" +
		"todo add never\n"
	app, out, errOut := setupTestApp(t, input)

	require.NoError(t, NewShell(app).Run(context.Background()))

	assert.Contains(t, out.String(), "labkit shell")
	assert.Contains(t, out.String(), shellPrompt)
	assert.Contains(t, out.String(), "Added #1 Buy milk")
	assert.Contains(t, out.String(), todoUsage+"\n")
	assert.Contains(t, errOut.String(), "✖ unknown action \"bogus\"")
	assert.Contains(t, errOut.String(), "✖ unterminated quote or escape")
	assert.Equal(t, 1, app.Session().Todos.View().Stats.Total)
}

func TestShell_RunStopsAtEOF(t *testing.T) {
	app, out, _ := setupTestApp(t, "calc 2 3 add")

	require.NoError(t, NewShell(app).Run(context.Background()))
	assert.Contains(t, out.String(), "2 + 3 = 5")
}

func TestShell_HelpListsEveryCommand(t *testing.T) {
	app, out, _ := setupTestApp(t, "help\nquit\n")

	require.NoError(t, NewShell(app).Run(context.Background()))
	for _, name := range app.Registry().Names() {
		assert.Contains(t, out.String(), app.Registry().Usage(name))
	}
	assert.Contains(t, out.String(), "help [command]")
}

func TestShell_RunHonoursContext(t *testing.T) {
	app, out, _ := setupTestApp(t, "todo add late\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewShell(app).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotContains(t, out.String(), "Added")
}

func TestShell_TracesWhenVerbose(t *testing.T) {
	var trace bytes.Buffer
	prev := logging.SetOutput(&trace)
	defer logging.SetOutput(prev)
	logging.SetVerbose(true)
	defer logging.SetVerbose(false)

	app, _, _ := setupTestApp(t, "todo add milk\nexit\n")
	require.NoError(t, NewShell(app).Run(context.Background()))

	assert.Contains(t, trace.String(), `shell: ["todo" "add" "milk"]`)
	assert.Contains(t, trace.String(), "shell: exit\n")
}
