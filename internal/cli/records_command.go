package cli

import (
	"context"
	"fmt"
	"strings"

	"labkit/internal/services"
)

const recordsUsage = "records [json]"

// RecordsCommand prints the JSON serialization report
type RecordsCommand struct {
	app     *App
	records *services.Records
}

// NewRecordsCommand creates a new records command handler
func NewRecordsCommand(app *App) *RecordsCommand {
	return &RecordsCommand{app: app, records: app.session.Records}
}

// Execute runs the records command
func (c *RecordsCommand) Execute(ctx context.Context, args []string) error {
	action, _ := subcommand(args, "report")
	if action != "report" && action != "json" {
		return unknownAction(action, recordsUsage)
	}

	report, err := c.records.Report()
	if err != nil {
		return err
	}
	p := c.app.presenter
	if action == "json" {
		p.Line(report.Pretty)
		return nil
	}

	s := report.Stats
	p.Title(fmt.Sprintf("Records · %s · %d courses · avg age %s · %d bytes", s.RecordBadge, s.DistinctCourses, s.AverageAge, s.JSONSize))
	for _, card := range report.Cards {
		p.Panel([]string{
			fmt.Sprintf("[%s] %s, %s", card.Initial, card.Name, card.AgeText),
			fmt.Sprintf("Semester %d · %s", card.Semester, strings.Join(card.Courses, ", ")),
			p.Accent(card.JSON),
		})
	}
	return nil
}
