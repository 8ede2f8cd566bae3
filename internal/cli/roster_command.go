package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"labkit/internal/errors"
	"labkit/internal/services"
)

const studentsUsage = "students [list [query] | add <name> <semester> <courses> | edit <id> <name> <semester> <courses> | rm <id>]"

// StudentsCommand drives the student roster
type StudentsCommand struct {
	app    *App
	roster *services.Roster
}

// NewStudentsCommand creates a new students command handler
func NewStudentsCommand(app *App) *StudentsCommand {
	return &StudentsCommand{app: app, roster: app.session.Roster}
}

// Execute runs the students command
func (c *StudentsCommand) Execute(ctx context.Context, args []string) error {
	p := c.app.presenter
	action, rest := subcommand(args, "list")
	query := ""

	switch action {
	case "list", "ls", "search":
		query = strings.Join(rest, " ")
	case "add":
		if err := needArgs(rest, 3, studentsUsage); err != nil {
			return err
		}
		change, err := c.roster.Add(services.StudentInput{Name: rest[0], Semester: rest[1], Courses: rest[2]})
		if err != nil {
			return err
		}
		p.OK(fmt.Sprintf("%s: #%d %s", change.Notice, change.Record.ID, change.Record.Name))
	case "edit":
		if err := needArgs(rest, 4, studentsUsage); err != nil {
			return err
		}
		id, err := argID(rest[0])
		if err != nil {
			return err
		}
		change, err := c.roster.Update(id, services.StudentInput{Name: rest[1], Semester: rest[2], Courses: rest[3]})
		if err != nil {
			return err
		}
		p.OK(fmt.Sprintf("%s: #%d %s", change.Notice, change.Record.ID, change.Record.Name))
	case "rm":
		if err := needArgs(rest, 1, studentsUsage); err != nil {
			return err
		}
		id, err := argID(rest[0])
		if err != nil {
			return err
		}
		change, ok := c.roster.Remove(id)
		if !ok {
			return errors.NewNotFoundError("student", strconv.FormatInt(id, 10))
		}
		p.OK(change.Notice + ": " + change.Record.Name)
	default:
		return unknownAction(action, studentsUsage)
	}

	view := c.roster.View(query)
	s := view.Stats
	p.Title(fmt.Sprintf("Students · %s · %d courses · avg semester %s", s.CountBadge, s.DistinctCourses, s.AverageSemester))
	if view.Empty {
		p.Muted("No students match.")
		return nil
	}
	for _, row := range view.Rows {
		p.Line(fmt.Sprintf("%3d [%s] %-20s %-6s %s", row.ID, row.Initials, row.Name, row.Semester, strings.Join(row.Courses, ", ")))
	}
	return nil
}
