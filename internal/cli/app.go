package cli

import (
	"context"
	"io"
	"os"

	"labkit/internal/api"
	"labkit/internal/config"
	"labkit/internal/errors"
	"labkit/internal/repository/sqlite"
)

// App represents the main CLI application
type App struct {
	session   *api.Session
	config    *config.Config
	repo      sqlite.Repository
	presenter *Presenter
	in        io.Reader
	registry  *CommandRegistry
}

// NewApp creates a CLI application over session, writing to stdout and stderr
func NewApp(session *api.Session, cfg *config.Config, repo sqlite.Repository) *App {
	if cfg == nil {
		cfg = session.Config()
	}
	app := &App{
		session:   session,
		config:    cfg,
		repo:      repo,
		presenter: NewPresenter(os.Stdout, os.Stderr, cfg.Display.Plain),
		in:        os.Stdin,
	}
	app.registry = NewCommandRegistry(app)
	return app
}

// SetIO redirects input and output, mostly for tests
func (a *App) SetIO(in io.Reader, out, errOut io.Writer) {
	a.in = in
	a.presenter = NewPresenter(out, errOut, a.config.Display.Plain)
}

// Session returns the exercises driven by this app
func (a *App) Session() *api.Session {
	return a.session
}

// Registry returns the shell command registry
func (a *App) Registry() *CommandRegistry {
	return a.registry
}

// Run executes one registry command with the given arguments
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.NewInvalidInputError("command", "", a.registry.GetUsage())
	}
	return a.registry.Execute(ctx, args[0], args[1:])
}
