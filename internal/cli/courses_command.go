package cli

import (
	"context"
	"fmt"
	"strings"

	"labkit/internal/errors"
	"labkit/internal/services"
)

const coursesUsage = "courses [list [query] | add <name> [category] | rm <name>]"

// CoursesCommand drives the course registry
type CoursesCommand struct {
	app     *App
	courses *services.Courses
}

// NewCoursesCommand creates a new courses command handler
func NewCoursesCommand(app *App) *CoursesCommand {
	return &CoursesCommand{app: app, courses: app.session.Courses}
}

// Execute runs the courses command
func (c *CoursesCommand) Execute(ctx context.Context, args []string) error {
	p := c.app.presenter
	action, rest := subcommand(args, "list")
	query := ""

	switch action {
	case "list", "ls", "search":
		query = strings.Join(rest, " ")
	case "add":
		if err := needArgs(rest, 1, coursesUsage); err != nil {
			return err
		}
		category := ""
		if len(rest) > 1 {
			category = strings.Join(rest[1:], " ")
		}
		change, err := c.courses.Register(rest[0], category)
		if err != nil {
			return err
		}
		p.OK(change.Notice)
	case "rm":
		if err := needArgs(rest, 1, coursesUsage); err != nil {
			return err
		}
		name := strings.Join(rest, " ")
		change, ok := c.courses.Remove(name)
		if !ok {
			return errors.NewNotFoundError("course", name)
		}
		p.OK(change.Notice)
	default:
		return unknownAction(action, coursesUsage)
	}

	view := c.courses.View(query)
	title := fmt.Sprintf("Courses · %d total", view.Stats.Total)
	if view.Stats.RecentAction != "" {
		title += " · last: " + view.Stats.RecentAction
	}
	p.Title(title)
	if view.Empty {
		p.Muted("No courses match.")
		return nil
	}
	for _, row := range view.Rows {
		p.Line(fmt.Sprintf("  %-5s %-28s %s", row.IconClass, row.Name, p.Accent(row.Category)))
	}
	return nil
}
