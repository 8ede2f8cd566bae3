package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"labkit/internal/services"
)

type portalApi struct {
	portal *services.Portal
}

func registerPortalAPI(g *echo.Group, portal *services.Portal) {
	api := portalApi{portal: portal}

	pg := g.Group("/portal")
	pg.GET("", api.retrieve)
	pg.POST("/save", api.save)
	pg.GET("/saves", api.history)
}

func (api *portalApi) retrieve(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.portal.View())
}

func (api *portalApi) save(ctx echo.Context) error {
	receipt, err := api.portal.Save(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, receipt)
}

func (api *portalApi) history(ctx echo.Context) error {
	snapshots, err := api.portal.History(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, snapshots)
}
