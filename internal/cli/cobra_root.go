package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"labkit/internal/api"
	"labkit/internal/config"
	"labkit/internal/logging"
	"labkit/internal/repository/sqlite"
	"labkit/internal/server"
)

// RepositoryOpener opens the snapshot store for a loaded configuration
type RepositoryOpener func(*config.Config) (sqlite.Repository, error)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd      *cobra.Command
	loader   *config.Loader
	openRepo RepositoryOpener

	config *config.Config
	repo   sqlite.Repository
	app    *App
}

// NewRootCommand creates the root cobra command with global flags. The
// session is built lazily once flags are parsed.
func NewRootCommand(loader *config.Loader, openRepo RepositoryOpener) *RootCommand {
	if openRepo == nil {
		openRepo = config.CreateRepository
	}
	root := &RootCommand{
		loader:   loader,
		openRepo: openRepo,
	}

	root.cmd = &cobra.Command{
		Use:   "lab",
		Short: "Small interactive exercises: lists, forms, a cart, a quiz and more",
		Long: `labkit (lab) runs a set of small interactive exercises from the command line,
an interactive shell, or over HTTP.

EXAMPLES:
  lab todo add "Buy milk"                  # Add a to-do item
  lab calc 7 2 divide                      # Run a calculation
  lab quiz b b b c d                       # Grade the quiz
  lab register --name Sara --email sara@x.io --age 21 --password secret1
  lab load --fail                          # Fetch users with a forced failure
  lab saves                                # List saved portal snapshots
  lab shell                                # Start the interactive shell
  lab serve --addr :9090                   # Serve the JSON API

State other than saved portal snapshots lives for one invocation; use
"lab shell" or "lab serve" to keep working with the same session.

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > .env file > defaults

    LAB_DB_DIR                             Database directory (default: ~/.labkit)
    LAB_DB_FILENAME                        Database filename (default: labkit.db)
    LAB_DB_QUERY_TIMEOUT                   Query timeout (default: 10s)
    LAB_FETCH_MIN_DELAY                    Shortest simulated fetch (default: 1.5s)
    LAB_FETCH_MAX_DELAY                    Longest simulated fetch (default: 3s)
    LAB_SAVE_DELAY                         Simulated save latency (default: 1.8s)
    LAB_SAVE_FAILURE_RATE                  Chance a save fails (default: 0.1)
    LAB_HISTORY_LIMIT                      Calculator history length (default: 10)
    LAB_TAX_RATE                           Cart tax rate (default: 0.05)
    LAB_SERVER_ADDR                        HTTP listen address (default: :8080)
    LAB_DISPLAY_PLAIN                      Disable colours (default: false)
    LAB_APP_TIMEOUT                        Application timeout (default: 60s)
    LAB_APP_VERBOSE                        Enable verbose output (default: false)
    LAB_DEBUG                              Print debug traces
    LAB_ENV_FILE                           Dotenv file to read (default: .env)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return root.Close()
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// ExecuteContext runs the root command under ctx
func (r *RootCommand) ExecuteContext(ctx context.Context) error {
	return r.cmd.ExecuteContext(ctx)
}

// SetArgs overrides os.Args, mostly for tests
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// SetIO redirects input and output, mostly for tests
func (r *RootCommand) SetIO(in io.Reader, out, errOut io.Writer) {
	r.cmd.SetIn(in)
	r.cmd.SetOut(out)
	r.cmd.SetErr(errOut)
}

// Config returns the configuration of the last run
func (r *RootCommand) Config() *config.Config {
	return r.config
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	// Database configuration
	flags.String("db-dir", "", "Database directory (overrides LAB_DB_DIR)")
	flags.String("db-filename", "", "Database filename (overrides LAB_DB_FILENAME)")
	flags.Duration("db-query-timeout", 0, "Database query timeout (overrides LAB_DB_QUERY_TIMEOUT)")

	// Simulation configuration
	flags.Duration("fetch-min-delay", 0, "Shortest simulated fetch (overrides LAB_FETCH_MIN_DELAY)")
	flags.Duration("fetch-max-delay", 0, "Longest simulated fetch (overrides LAB_FETCH_MAX_DELAY)")
	flags.Duration("save-delay", 0, "Simulated save latency (overrides LAB_SAVE_DELAY)")
	flags.Float64("save-failure-rate", 0, "Chance a portal save fails (overrides LAB_SAVE_FAILURE_RATE)")

	// Exercise configuration
	flags.Int("history-limit", 0, "Calculator history length (overrides LAB_HISTORY_LIMIT)")
	flags.Float64("tax-rate", 0, "Cart tax rate (overrides LAB_TAX_RATE)")

	// Server and display configuration
	flags.String("addr", "", "HTTP listen address (overrides LAB_SERVER_ADDR)")
	flags.Bool("plain", false, "Disable colours (overrides LAB_DISPLAY_PLAIN)")

	// Application configuration
	flags.Duration("app-timeout", 0, "Application timeout (overrides LAB_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Enable verbose output (overrides LAB_APP_VERBOSE)")
}

// overridesFromFlags collects only the flags set on the command line, so
// an explicit zero such as --save-failure-rate 0 still wins over the environment.
func overridesFromFlags(flags *pflag.FlagSet) *config.ConfigOverrides {
	o := &config.ConfigOverrides{}

	if flags.Changed("db-dir") {
		v, _ := flags.GetString("db-dir")
		o.DBDir = &v
	}
	if flags.Changed("db-filename") {
		v, _ := flags.GetString("db-filename")
		o.DBFilename = &v
	}
	if flags.Changed("db-query-timeout") {
		v, _ := flags.GetDuration("db-query-timeout")
		o.DBQueryTimeout = &v
	}

	if flags.Changed("fetch-min-delay") {
		v, _ := flags.GetDuration("fetch-min-delay")
		o.FetchMinDelay = &v
	}
	if flags.Changed("fetch-max-delay") {
		v, _ := flags.GetDuration("fetch-max-delay")
		o.FetchMaxDelay = &v
	}
	if flags.Changed("save-delay") {
		v, _ := flags.GetDuration("save-delay")
		o.SaveDelay = &v
	}
	if flags.Changed("save-failure-rate") {
		v, _ := flags.GetFloat64("save-failure-rate")
		o.SaveFailureRate = &v
	}

	if flags.Changed("history-limit") {
		v, _ := flags.GetInt("history-limit")
		o.HistoryLimit = &v
	}
	if flags.Changed("tax-rate") {
		v, _ := flags.GetFloat64("tax-rate")
		o.TaxRate = &v
	}

	if flags.Changed("addr") {
		v, _ := flags.GetString("addr")
		o.Addr = &v
	}
	if flags.Changed("plain") {
		v, _ := flags.GetBool("plain")
		o.Plain = &v
	}

	if flags.Changed("app-timeout") {
		v, _ := flags.GetDuration("app-timeout")
		o.Timeout = &v
	}
	if flags.Changed("verbose") {
		v, _ := flags.GetBool("verbose")
		o.Verbose = &v
	}

	return o
}

// setup loads configuration, opens the repository and builds the session
func (r *RootCommand) setup(cmd *cobra.Command) error {
	cfg, err := r.loader.LoadWithOverrides(overridesFromFlags(cmd.Flags()))
	if err != nil {
		return err
	}
	r.config = cfg
	logging.SetVerbose(cfg.Application.Verbose)

	repo, err := r.openRepo(cfg)
	if err != nil {
		return err
	}
	r.repo = repo

	r.app = NewApp(api.NewSession(cfg, repo), cfg, repo)
	r.app.SetIO(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
	logging.Debugf("config: db=%s addr=%s\n", cfg.GetDatabasePath(), cfg.Server.Addr)
	return nil
}

// Close releases the repository. A failing command skips the post-run
// hook, so callers should also defer Close.
func (r *RootCommand) Close() error {
	if r.repo == nil {
		return nil
	}
	err := r.repo.Close()
	r.repo = nil
	return err
}

// timeoutContext bounds one-shot commands by the application timeout
func (r *RootCommand) timeoutContext(parent context.Context) (context.Context, context.CancelFunc) {
	timeout := 60 * time.Second
	if r.config != nil {
		timeout = r.config.Application.Timeout
	}
	return context.WithTimeout(parent, timeout)
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	for _, def := range commandDefs {
		r.cmd.AddCommand(r.exerciseCommand(def))
	}

	// Shell command
	shellCmd := &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive shell",
		Long:  "Read exercise commands line by line against one session. Type \"help\" for commands.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return NewShell(r.app).Run(ctx)
		},
	}

	// Serve command
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the exercises as a JSON API",
		Long: `Serve the exercises over HTTP until interrupted.

Routes live under /v1: tasks, products, courses, students, quiz, calc,
register, records, users and portal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return r.serve(ctx)
		},
	}

	// Saves command
	savesCmd := &cobra.Command{
		Use:   "saves",
		Short: "List saved portal snapshots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.timeoutContext(cmd.Context())
			defer cancel()
			return r.app.Run(ctx, []string{"portal", "history"})
		},
	}

	r.cmd.AddCommand(shellCmd, serveCmd, savesCmd)
}

// exerciseCommand wraps one registry command for one-shot use
func (r *RootCommand) exerciseCommand(def commandDef) *cobra.Command {
	cmd := &cobra.Command{
		Use:     def.name + " [args]",
		Aliases: def.aliases,
		Short:   def.short,
		Long:    def.short + ".\n\nUsage:\n  " + def.usage,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flagArgs, ok := argsFromFlags(cmd, def.argFlags); ok {
				args = flagArgs
			}
			if def.failable {
				if fail, _ := cmd.Flags().GetBool("fail"); fail {
					r.forceFailure(def.name)
				}
			}
			ctx, cancel := r.timeoutContext(cmd.Context())
			defer cancel()
			return r.app.Run(ctx, append([]string{def.name}, args...))
		},
	}
	if def.failable {
		cmd.Flags().Bool("fail", false, "Force the simulated request to fail")
	}
	for _, name := range def.argFlags {
		cmd.Flags().String(name, "", "Form field "+name)
	}
	return cmd
}

// argsFromFlags returns the named flag values in order when any of them was set
func argsFromFlags(cmd *cobra.Command, names []string) ([]string, bool) {
	set := false
	values := make([]string, len(names))
	for i, name := range names {
		if cmd.Flags().Changed(name) {
			set = true
		}
		values[i], _ = cmd.Flags().GetString(name)
	}
	return values, set
}

func (r *RootCommand) forceFailure(name string) {
	session := r.app.Session()
	switch name {
	case "loader":
		session.Loader.SetFailing(true)
	case "portal":
		session.Portal.SetFailing(true)
	}
}

func (r *RootCommand) serve(ctx context.Context) error {
	srv := server.New(&server.Options{
		Address: r.config.Server.Addr,
		Debug:   r.config.Application.Verbose,
		Session: r.app.Session(),
	})

	errs := make(chan error, 1)
	go func() {
		errs <- srv.Start()
	}()
	r.app.presenter.OK(fmt.Sprintf("Serving on %s", r.config.Server.Addr))

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		return err
	}
	return <-errs
}
