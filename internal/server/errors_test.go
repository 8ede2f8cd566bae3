package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "labkit/internal/errors"
)

func TestAppHTTPErrorHandler(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"echo error", echo.NewHTTPError(http.StatusMethodNotAllowed, "nope"), http.StatusMethodNotAllowed, "nope"},
		{"wrapped echo error", errors.Wrap(echo.NewHTTPError(http.StatusBadRequest, "bad json"), "binding"), http.StatusBadRequest, "bad json"},
		{"not found", apperrors.NewNotFoundError("task", "3"), http.StatusNotFound, "task not found: 3"},
		{"duplicate", apperrors.NewDuplicateKeyError("course", "Physics", "Course already registered"), http.StatusConflict, "Course already registered"},
		{"transport", apperrors.NewTransportError("save", "Server down"), http.StatusServiceUnavailable, "Server down"},
		{"timeout", apperrors.NewTimeoutError("save", "1s"), http.StatusGatewayTimeout, "The operation timed out. Please try again."},
		{"database", apperrors.NewDatabaseError("insert", stderrors.New("locked")), http.StatusInternalServerError, "A database error occurred. Please try again."},
		{"unknown", stderrors.New("boom"), http.StatusInternalServerError, "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()

			appHTTPErrorHandler(tt.err, e.NewContext(req, rec))

			assert.Equal(t, tt.wantCode, rec.Code)
			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantMsg, body["error"])
		})
	}
}

func TestAppHTTPErrorHandler_Head(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodHead, "/", nil)
	rec := httptest.NewRecorder()

	appHTTPErrorHandler(apperrors.NewNotFoundError("task", "1"), e.NewContext(req, rec))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Zero(t, rec.Body.Len())
}
