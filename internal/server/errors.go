package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	apperrors "labkit/internal/errors"
	"labkit/internal/logging"
	"labkit/internal/validation"
)

var statusByType = map[apperrors.ErrorType]int{
	apperrors.ErrorTypeValidation:   http.StatusBadRequest,
	apperrors.ErrorTypeInvalidInput: http.StatusBadRequest,
	apperrors.ErrorTypeNotFound:     http.StatusNotFound,
	apperrors.ErrorTypeDuplicateKey: http.StatusConflict,
	apperrors.ErrorTypeTransport:    http.StatusServiceUnavailable,
	apperrors.ErrorTypeTimeout:      http.StatusGatewayTimeout,
	apperrors.ErrorTypeDatabase:     http.StatusInternalServerError,
}

// appHTTPErrorHandler is an echo.HTTPErrorHandler that knows how to render our errors.
// Validation failures carry their per-field messages.
func appHTTPErrorHandler(err error, ctx echo.Context) {
	var code int
	var message interface{}

	if herr, ok := errors.Cause(err).(*echo.HTTPError); ok {
		if herr.Internal != nil {
			if inner, ok := herr.Internal.(*echo.HTTPError); ok {
				herr = inner
			}
		}
		code = herr.Code
		message = herr.Message
	} else if appErr, ok := apperrors.AsAppError(err); ok {
		code = statusByType[appErr.Type]
		if code == 0 {
			code = http.StatusInternalServerError
		}
		message = apperrors.GetUserMessage(err)
		if ve, ok := validation.AsValidationError(err); ok {
			message = echo.Map{"error": message, "fields": ve.Fields()}
		}
		if code == http.StatusInternalServerError {
			ctx.Logger().Error(err)
		}
	} else { // any other error is a server error
		code = http.StatusInternalServerError
		message = http.StatusText(code)
		ctx.Logger().Error(err)
	}

	logging.Debugf("server: %s %s -> %d: %v\n", ctx.Request().Method, ctx.Request().URL.Path, code, err)

	if ctx.Echo().Debug {
		message = err.Error()
	}
	if m, ok := message.(string); ok {
		message = echo.Map{"error": m}
	}

	// Send response
	if !ctx.Response().Committed {
		if ctx.Request().Method == http.MethodHead {
			err = ctx.NoContent(code)
		} else {
			err = ctx.JSON(code, message)
		}
		if err != nil {
			ctx.Echo().Logger.Error(err)
		}
	}
}
