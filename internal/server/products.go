package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	apperrors "labkit/internal/errors"
	"labkit/internal/services"
)

type productApi struct {
	catalog *services.Catalog
}

func registerProductAPI(g *echo.Group, catalog *services.Catalog) {
	api := productApi{catalog: catalog}

	pg := g.Group("/products")
	pg.GET("", api.query)
	pg.POST("", api.create)
	pg.PUT("/:id", api.update)
	pg.DELETE("/:id", api.destroy)
}

func (api *productApi) query(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.catalog.View(ctx.QueryParam("q"), ctx.QueryParam("category")))
}

func (api *productApi) create(ctx echo.Context) error {
	var data services.ProductInput
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ProductInput")
	}
	change, err := api.catalog.Add(data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, change)
}

func (api *productApi) update(ctx echo.Context) error {
	var data services.ProductInput
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ProductInput")
	}
	change, err := api.catalog.Update(ctx.Param("id"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, change)
}

func (api *productApi) destroy(ctx echo.Context) error {
	id := ctx.Param("id")
	change, ok := api.catalog.Remove(id)
	if !ok {
		return apperrors.NewNotFoundError("product", id)
	}
	return ctx.JSON(http.StatusOK, change)
}
