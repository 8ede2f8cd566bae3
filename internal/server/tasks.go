package server

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	apperrors "labkit/internal/errors"
	"labkit/internal/services"
)

type taskRequest struct {
	Text string `json:"text"`
}

type taskApi struct {
	todos *services.TodoList
}

func registerTaskAPI(g *echo.Group, todos *services.TodoList) {
	api := taskApi{todos: todos}

	tg := g.Group("/tasks")
	tg.GET("", api.query)
	tg.POST("", api.create)
	tg.PATCH("/:id/toggle", api.toggle)
	tg.DELETE("/:id", api.destroy)
}

func (api *taskApi) query(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.todos.View())
}

func (api *taskApi) create(ctx echo.Context) error {
	var data taskRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to taskRequest")
	}
	task, err := api.todos.Add(data.Text)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, task)
}

func (api *taskApi) toggle(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	task, err := api.todos.Toggle(id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, task)
}

func (api *taskApi) destroy(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	if !api.todos.Remove(id) {
		return apperrors.NewNotFoundError("task", strconv.FormatInt(id, 10))
	}
	return ctx.NoContent(http.StatusNoContent)
}
