package cli

import (
	"context"

	"labkit/internal/services"
	"labkit/internal/validation"
)

const registerUsage = "register <name> <email> <age> <password>"

// RegisterCommand submits the registration form
type RegisterCommand struct {
	app          *App
	registration *services.Registration
}

// NewRegisterCommand creates a new register command handler
func NewRegisterCommand(app *App) *RegisterCommand {
	return &RegisterCommand{app: app, registration: app.session.Registration}
}

// Execute validates and submits one registration. Missing trailing
// arguments are submitted blank so every field reports its error.
func (c *RegisterCommand) Execute(ctx context.Context, args []string) error {
	fields := make([]string, 4)
	copy(fields, args)

	result, err := c.registration.Submit(validation.RegistrationInput{
		Name:     fields[0],
		Email:    fields[1],
		Age:      fields[2],
		Password: fields[3],
	})
	if err != nil {
		return err
	}
	p := c.app.presenter
	p.OK(result.Welcome)
	p.Muted(result.Summary)
	return nil
}
