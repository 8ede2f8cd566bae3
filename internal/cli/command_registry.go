package cli

import (
	"context"
	"sort"
	"strings"

	"labkit/internal/errors"
)

// Command represents a CLI command
type Command interface {
	Execute(ctx context.Context, args []string) error
}

// commandDef describes one exercise command shared by the shell and the
// cobra root. aliases and argFlags only apply to the one-shot cobra command;
// argFlags are string flags that, when any is set, replace the positional
// arguments in order.
type commandDef struct {
	name     string
	usage    string
	short    string
	failable bool
	aliases  []string
	argFlags []string
	build    func(*App) Command
}

var commandDefs = []commandDef{
	{name: "todo", usage: todoUsage, short: "Manage the to-do list",
		build: func(a *App) Command { return NewTodoCommand(a) }},
	{name: "colors", usage: colorsUsage, short: "Generate colour boxes",
		build: func(a *App) Command { return NewColorsCommand(a) }},
	{name: "students", usage: studentsUsage, short: "Manage the student roster",
		build: func(a *App) Command { return NewStudentsCommand(a) }},
	{name: "courses", usage: coursesUsage, short: "Register and search courses",
		build: func(a *App) Command { return NewCoursesCommand(a) }},
	{name: "products", usage: productsUsage, short: "Manage the product catalog",
		build: func(a *App) Command { return NewProductsCommand(a) }},
	{name: "cart", usage: cartUsage, short: "Shop and check out",
		build: func(a *App) Command { return NewCartCommand(a) }},
	{name: "portal", usage: portalUsage, short: "Enroll students and save the portal", failable: true,
		build: func(a *App) Command { return NewPortalCommand(a) }},
	{name: "loader", usage: loaderUsage, short: "Fetch the user directory", failable: true, aliases: []string{"load"},
		build: func(a *App) Command { return NewLoaderCommand(a) }},
	{name: "calc", usage: calcUsage, short: "Run a calculation",
		build: func(a *App) Command { return NewCalcCommand(a) }},
	{name: "quiz", usage: quizUsage, short: "Take the web basics quiz",
		build: func(a *App) Command { return NewQuizCommand(a) }},
	{name: "register", usage: registerUsage, short: "Submit the registration form", argFlags: []string{"name", "email", "age", "password"},
		build: func(a *App) Command { return NewRegisterCommand(a) }},
	{name: "records", usage: recordsUsage, short: "Show the JSON records report",
		build: func(a *App) Command { return NewRecordsCommand(a) }},
}

// CommandRegistry manages all available commands
type CommandRegistry struct {
	commands map[string]Command
	usage    map[string]string
}

// NewCommandRegistry creates a new command registry
func NewCommandRegistry(app *App) *CommandRegistry {
	registry := &CommandRegistry{
		commands: make(map[string]Command),
		usage:    make(map[string]string),
	}

	for _, def := range commandDefs {
		registry.Register(def.name, def.usage, def.build(app))
	}

	return registry
}

// Register adds a command to the registry
func (r *CommandRegistry) Register(name, usage string, command Command) {
	r.commands[name] = command
	r.usage[name] = usage
}

// Execute runs the specified command with the given arguments
func (r *CommandRegistry) Execute(ctx context.Context, commandName string, args []string) error {
	command, exists := r.commands[commandName]
	if !exists {
		return errors.NewInvalidInputError("command", commandName, "unknown command: "+commandName)
	}
	return command.Execute(ctx, args)
}

// Names returns the registered command names in alphabetical order
func (r *CommandRegistry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Usage returns the usage line of one command
func (r *CommandRegistry) Usage(name string) string {
	return r.usage[name]
}

// GetUsage returns the usage of every command, one per line
func (r *CommandRegistry) GetUsage() string {
	lines := make([]string, 0, len(r.commands))
	for _, name := range r.Names() {
		lines = append(lines, "  "+r.usage[name])
	}
	return "usage:\n" + strings.Join(lines, "\n")
}
