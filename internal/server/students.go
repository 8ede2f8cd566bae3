package server

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	apperrors "labkit/internal/errors"
	"labkit/internal/services"
)

type studentApi struct {
	roster *services.Roster
}

func registerStudentAPI(g *echo.Group, roster *services.Roster) {
	api := studentApi{roster: roster}

	sg := g.Group("/students")
	sg.GET("", api.query)
	sg.POST("", api.create)
	sg.PUT("/:id", api.update)
	sg.DELETE("/:id", api.destroy)
}

func (api *studentApi) query(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.roster.View(ctx.QueryParam("q")))
}

func (api *studentApi) create(ctx echo.Context) error {
	var data services.StudentInput
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to StudentInput")
	}
	change, err := api.roster.Add(data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, change)
}

func (api *studentApi) update(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	var data services.StudentInput
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to StudentInput")
	}
	change, err := api.roster.Update(id, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, change)
}

func (api *studentApi) destroy(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	change, ok := api.roster.Remove(id)
	if !ok {
		return apperrors.NewNotFoundError("student", strconv.FormatInt(id, 10))
	}
	return ctx.JSON(http.StatusOK, change)
}
