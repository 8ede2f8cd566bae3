package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"labkit/internal/services"
)

type userApi struct {
	loader *services.Loader
}

func registerUserAPI(g *echo.Group, loader *services.Loader) {
	api := userApi{loader: loader}

	g.GET("/users", api.load)
}

// load blocks for the simulated latency. ?fail=true forces this and later
// loads to fail until a load without it.
func (api *userApi) load(ctx echo.Context) error {
	api.loader.SetFailing(queryFlag(ctx, "fail"))
	view, err := api.loader.Load(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, view)
}
