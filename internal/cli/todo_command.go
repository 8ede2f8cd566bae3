package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"labkit/internal/errors"
	"labkit/internal/services"
)

const todoUsage = "todo [list | add <text> | toggle <id> | rm <id> | reset]"

// TodoCommand drives the to-do list
type TodoCommand struct {
	app   *App
	todos *services.TodoList
}

// NewTodoCommand creates a new todo command handler
func NewTodoCommand(app *App) *TodoCommand {
	return &TodoCommand{app: app, todos: app.session.Todos}
}

// Execute runs the todo command
func (c *TodoCommand) Execute(ctx context.Context, args []string) error {
	p := c.app.presenter
	action, rest := subcommand(args, "list")

	switch action {
	case "list", "ls":
	case "add":
		if err := needArgs(rest, 1, todoUsage); err != nil {
			return err
		}
		task, err := c.todos.Add(strings.Join(rest, " "))
		if err != nil {
			return err
		}
		p.OK(fmt.Sprintf("Added #%d %s", task.ID, task.Text))
	case "toggle", "done":
		if err := needArgs(rest, 1, todoUsage); err != nil {
			return err
		}
		id, err := argID(rest[0])
		if err != nil {
			return err
		}
		task, err := c.todos.Toggle(id)
		if err != nil {
			return err
		}
		state := "reopened"
		if task.Completed {
			state = "done"
		}
		p.OK(fmt.Sprintf("#%d %s", task.ID, state))
	case "rm":
		if err := needArgs(rest, 1, todoUsage); err != nil {
			return err
		}
		id, err := argID(rest[0])
		if err != nil {
			return err
		}
		if !c.todos.Remove(id) {
			return errors.NewNotFoundError("task", strconv.FormatInt(id, 10))
		}
		p.OK(fmt.Sprintf("Removed #%d", id))
	case "reset":
		c.todos.Reset()
		p.OK("List cleared")
	default:
		return unknownAction(action, todoUsage)
	}

	c.list()
	return nil
}

func (c *TodoCommand) list() {
	p := c.app.presenter
	view := c.todos.View()
	p.Title("To-do · " + view.Stats.CountText)
	if view.Empty {
		p.Muted("Nothing to do yet.")
		return
	}
	for _, task := range view.Rows {
		p.Line(fmt.Sprintf("%3d %s", task.ID, p.Check(task.Completed, task.Text)))
	}
	p.Muted(progressBar(view.Stats.Done, view.Stats.Total, 20))
}
