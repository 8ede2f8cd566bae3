package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	apperrors "labkit/internal/errors"
	"labkit/internal/services"
)

type courseRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

type courseApi struct {
	courses *services.Courses
}

func registerCourseAPI(g *echo.Group, courses *services.Courses) {
	api := courseApi{courses: courses}

	cg := g.Group("/courses")
	cg.GET("", api.query)
	cg.POST("", api.create)
	cg.DELETE("/:name", api.destroy)
}

func (api *courseApi) query(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.courses.View(ctx.QueryParam("q")))
}

func (api *courseApi) create(ctx echo.Context) error {
	var data courseRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to courseRequest")
	}
	change, err := api.courses.Register(data.Name, data.Category)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, change)
}

func (api *courseApi) destroy(ctx echo.Context) error {
	name := ctx.Param("name")
	change, ok := api.courses.Remove(name)
	if !ok {
		return apperrors.NewNotFoundError("course", name)
	}
	return ctx.JSON(http.StatusOK, change)
}
