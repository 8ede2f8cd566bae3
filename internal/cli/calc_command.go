package cli

import (
	"context"

	"labkit/internal/services"
)

const calcUsage = "calc <a> <b> <op> | calc history | calc clear"

// CalcCommand drives the calculator
type CalcCommand struct {
	app        *App
	calculator *services.Calculator
}

// NewCalcCommand creates a new calc command handler
func NewCalcCommand(app *App) *CalcCommand {
	return &CalcCommand{app: app, calculator: app.session.Calculator}
}

// Execute runs the calc command
func (c *CalcCommand) Execute(ctx context.Context, args []string) error {
	p := c.app.presenter
	action, _ := subcommand(args, "history")

	switch action {
	case "history":
		history := c.calculator.History()
		p.Title("History")
		if len(history) == 0 {
			p.Muted("No calculations yet.")
		}
		for _, entry := range history {
			p.Line("  " + entry)
		}
		return nil
	case "clear":
		c.calculator.Clear()
		c.calculator.ClearHistory()
		p.OK("Calculator cleared")
		return nil
	}

	if err := needArgs(args, 3, calcUsage); err != nil {
		return err
	}
	calc, err := c.calculator.Run(args[0], args[1], args[2])
	if err != nil {
		return err
	}
	p.Line(calc.Expression + " = " + p.Tone(calc.Tone, calc.Display))
	return nil
}
