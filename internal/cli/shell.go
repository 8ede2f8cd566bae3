package cli

import (
	"bufio"
	"context"
	"strings"

	"labkit/internal/errors"
	"labkit/internal/logging"
)

const shellPrompt = "lab> "

// Shell reads commands line by line and runs them against one session
type Shell struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewShell creates a shell over app
func NewShell(app *App) *Shell {
	return &Shell{app: app, errorHandler: NewErrorHandler()}
}

// Run reads until EOF, "exit" or ctx ends. Command errors are printed and
// the shell keeps going.
func (s *Shell) Run(ctx context.Context) error {
	p := s.app.presenter
	scanner := bufio.NewScanner(s.app.in)
	p.Title("labkit shell. Type \"help\" for commands, \"exit\" to leave.")

	for {
		p.Printf("%s", shellPrompt)
		if !scanner.Scan() {
			p.Line("")
			logging.Debugln("shell: end of input")
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		args, err := splitArgs(scanner.Text())
		if err != nil {
			p.Fail(s.errorHandler.Message(err))
			continue
		}
		if len(args) == 0 {
			continue
		}

		switch args[0] {
		case "exit", "quit":
			logging.Debugln("shell:", args[0])
			return nil
		case "help":
			s.help(args[1:])
			continue
		}

		logging.Debugf("shell: %q\n", args)
		if err := s.app.Run(ctx, args); err != nil {
			p.Fail(s.errorHandler.Message(err))
		}
	}
}

func (s *Shell) help(args []string) {
	registry := s.app.registry
	if len(args) > 0 {
		if usage := registry.Usage(args[0]); usage != "" {
			s.app.presenter.Line(usage)
			return
		}
	}
	s.app.presenter.Line(registry.GetUsage())
	s.app.presenter.Line("  help [command]\n  exit")
}

// splitArgs splits a line on whitespace. Single and double quotes group
// words; a backslash escapes the next character outside single quotes.
func splitArgs(line string) ([]string, error) {
	var (
		args    []string
		current strings.Builder
		inArg   bool
		quote   rune
		escaped bool
	)

	for _, r := range line {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == '\\' && quote != '\'':
			escaped = true
			inArg = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inArg = true
		case r == ' ' || r == '\t':
			if inArg {
				args = append(args, current.String())
				current.Reset()
				inArg = false
			}
		default:
			current.WriteRune(r)
			inArg = true
		}
	}

	if quote != 0 || escaped {
		return nil, errors.NewInvalidInputError("line", line, "unterminated quote or escape")
	}
	if inArg {
		args = append(args, current.String())
	}
	return args, nil
}
