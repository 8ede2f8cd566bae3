package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"labkit/internal/errors"
	"labkit/internal/services"
)

const colorsUsage = "colors [list | add <colour> | rm <id> | clear]"

// ColorsCommand drives the colour boxes
type ColorsCommand struct {
	app    *App
	colors *services.ColorBoxes
}

// NewColorsCommand creates a new colors command handler
func NewColorsCommand(app *App) *ColorsCommand {
	return &ColorsCommand{app: app, colors: app.session.Colors}
}

// Execute runs the colors command
func (c *ColorsCommand) Execute(ctx context.Context, args []string) error {
	p := c.app.presenter
	action, rest := subcommand(args, "list")

	switch action {
	case "list", "ls":
	case "add":
		if err := needArgs(rest, 1, colorsUsage); err != nil {
			return err
		}
		box, err := c.colors.Add(strings.Join(rest, " "))
		if err != nil {
			return err
		}
		p.OK(fmt.Sprintf("Added %s (%s)", box.Color, box.Hex))
	case "rm":
		if err := needArgs(rest, 1, colorsUsage); err != nil {
			return err
		}
		id, err := argID(rest[0])
		if err != nil {
			return err
		}
		if !c.colors.Remove(id) {
			return errors.NewNotFoundError("colour box", strconv.FormatInt(id, 10))
		}
		p.OK(fmt.Sprintf("Removed box #%d", id))
	case "clear":
		c.colors.Clear()
		p.OK("All boxes cleared")
	default:
		return unknownAction(action, colorsUsage)
	}

	view := c.colors.View()
	p.Title("Colour boxes · " + view.Stats.CountText)
	if view.Empty {
		p.Muted("No boxes yet.")
		return nil
	}
	for _, box := range view.Rows {
		p.Line(fmt.Sprintf("%3d %-20s %s  %s label", box.ID, box.Color, box.Hex, box.LabelTone))
	}
	return nil
}
