package server

import (
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "labkit/internal/errors"
)

// paramID reads the numeric :id path parameter.
func paramID(ctx echo.Context) (int64, error) {
	raw := ctx.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperrors.NewInvalidInputError("id", raw, "id must be a whole number")
	}
	return id, nil
}

// queryFlag reports whether a query parameter is set to a true value.
func queryFlag(ctx echo.Context, name string) bool {
	v, err := strconv.ParseBool(ctx.QueryParam(name))
	return err == nil && v
}
