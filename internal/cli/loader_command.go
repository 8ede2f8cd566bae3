package cli

import (
	"context"
	"fmt"

	"labkit/internal/services"
)

const loaderUsage = "loader [load | retry | show | fail on|off]"

// LoaderCommand drives the simulated user fetch
type LoaderCommand struct {
	app    *App
	loader *services.Loader
}

// NewLoaderCommand creates a new loader command handler
func NewLoaderCommand(app *App) *LoaderCommand {
	return &LoaderCommand{app: app, loader: app.session.Loader}
}

// Execute runs the loader command
func (c *LoaderCommand) Execute(ctx context.Context, args []string) error {
	p := c.app.presenter
	action, rest := subcommand(args, "load")

	var (
		view services.LoaderView
		err  error
	)
	switch action {
	case "load":
		p.Pending("Loading users…")
		view, err = c.loader.Load(ctx)
	case "retry":
		p.Pending("Retrying…")
		view, err = c.loader.Retry(ctx)
	case "show":
		view = c.loader.View()
	case "fail":
		if err := needArgs(rest, 1, loaderUsage); err != nil {
			return err
		}
		on, err := argOnOff(rest[0])
		if err != nil {
			return err
		}
		c.loader.SetFailing(on)
		p.OK("Forced fetch failures " + onOffText(on))
		return nil
	default:
		return unknownAction(action, loaderUsage)
	}

	c.render(view)
	return err
}

func (c *LoaderCommand) render(view services.LoaderView) {
	p := c.app.presenter
	p.Title(fmt.Sprintf("Users · %s · %s", view.RecordBadge, view.FetchStatus))
	if view.State != services.StateSuccess {
		if view.CanRetry {
			p.Muted("Run \"loader retry\" to try again.")
		}
		return
	}
	for _, u := range view.Rows {
		tone := "positive"
		if u.Status != "active" {
			tone = "zero"
		}
		p.Line(fmt.Sprintf("  [%s] %-18s %-10s %-26s %s", u.Initials, u.Name, u.Role, u.Email, p.Tone(tone, u.StatusLabel)))
	}
	if view.Notice != "" {
		p.OK(view.Notice)
	}
}
