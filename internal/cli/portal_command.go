package cli

import (
	"context"
	"fmt"
	"strings"

	"labkit/internal/errors"
	"labkit/internal/services"
)

const portalUsage = "portal [show | add <id> <name> <email> | rm <id> | course <name> | drop <name> | save | history | fail on|off]"

// PortalCommand drives the student portal and its simulated saves
type PortalCommand struct {
	app    *App
	portal *services.Portal
}

// NewPortalCommand creates a new portal command handler
func NewPortalCommand(app *App) *PortalCommand {
	return &PortalCommand{app: app, portal: app.session.Portal}
}

// Execute runs the portal command
func (c *PortalCommand) Execute(ctx context.Context, args []string) error {
	p := c.app.presenter
	action, rest := subcommand(args, "show")

	switch action {
	case "show":
	case "add":
		if err := needArgs(rest, 3, portalUsage); err != nil {
			return err
		}
		change, err := c.portal.AddStudent(services.EnrolleeInput{ID: rest[0], Name: rest[1], Email: rest[2]})
		if err != nil {
			return err
		}
		p.OK(change.Notice)
	case "rm":
		if err := needArgs(rest, 1, portalUsage); err != nil {
			return err
		}
		change, ok := c.portal.RemoveStudent(rest[0])
		if !ok {
			return errors.NewNotFoundError("student", rest[0])
		}
		p.OK(change.Notice)
	case "course":
		if err := needArgs(rest, 1, portalUsage); err != nil {
			return err
		}
		change, err := c.portal.RegisterCourse(strings.Join(rest, " "))
		if err != nil {
			return err
		}
		p.OK(change.Notice)
	case "drop":
		if err := needArgs(rest, 1, portalUsage); err != nil {
			return err
		}
		name := strings.Join(rest, " ")
		change, ok := c.portal.RemoveCourse(name)
		if !ok {
			return errors.NewNotFoundError("course", name)
		}
		p.OK(change.Notice)
	case "save":
		p.Pending("Saving…")
		receipt, err := c.portal.Save(ctx)
		if err != nil {
			return err
		}
		p.OK(receipt.Notice)
		p.Muted("snapshot " + receipt.SnapshotID)
		return nil
	case "history":
		return c.history(ctx)
	case "fail":
		if err := needArgs(rest, 1, portalUsage); err != nil {
			return err
		}
		on, err := argOnOff(rest[0])
		if err != nil {
			return err
		}
		c.portal.SetFailing(on)
		p.OK("Forced save failures " + onOffText(on))
		return nil
	default:
		return unknownAction(action, portalUsage)
	}

	c.show()
	return nil
}

func (c *PortalCommand) show() {
	p := c.app.presenter
	view := c.portal.View()
	p.Title(fmt.Sprintf("Portal · %d students · %d courses · %s", view.Students.Stats, view.Courses.Stats, p.Tone(statusTone(view.Status), string(view.Status))))
	if view.Students.Empty {
		p.Muted("No students enrolled.")
	}
	for _, row := range view.Students.Rows {
		p.Line(fmt.Sprintf("  [%s] %-20s %s", row.Initial, row.Name, p.Accent(row.Meta)))
	}
	if view.Courses.Empty {
		p.Muted("No courses registered.")
		return
	}
	p.Line("  courses: " + strings.Join(view.Courses.Rows, ", "))
}

func (c *PortalCommand) history(ctx context.Context) error {
	p := c.app.presenter
	snapshots, err := c.portal.History(ctx)
	if err != nil {
		return err
	}
	p.Title("Saved snapshots")
	if len(snapshots) == 0 {
		p.Muted("Nothing saved yet.")
		return nil
	}
	for _, s := range snapshots {
		p.Line(fmt.Sprintf("  %s  %s  %d students · %d courses",
			s.SavedAt.Local().Format("2006-01-02 15:04:05"), s.ID, len(s.Enrollees), len(s.Courses)))
	}
	return nil
}

func statusTone(s services.SaveStatus) string {
	switch s {
	case services.StatusSaved:
		return "positive"
	case services.StatusFailed:
		return "negative"
	}
	return "zero"
}

func onOffText(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
