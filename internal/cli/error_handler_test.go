package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "labkit/internal/errors"
	"labkit/internal/logging"
	"labkit/internal/validation"
)

func twoFieldError() *validation.ValidationError {
	ve := validation.NewValidationError()
	ve.AddRequiredError("name", "Name is required.")
	ve.AddRequiredError("email", "Email is required.")
	return ve
}

func TestErrorHandler_Message(t *testing.T) {
	eh := NewErrorHandler()

	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"validation error", apperrors.NewValidationError("Please enter a task.", nil), "Please enter a task."},
		{"not found error", apperrors.NewNotFoundError("task", "7"), "task not found: 7"},
		{"database error", apperrors.NewDatabaseError("insert", errors.New("locked")), "A database error occurred. Please try again."},
		{"timeout error", apperrors.NewTimeoutError("save portal", nil), "The operation timed out. Please try again."},
		{"field errors", twoFieldError(), "Multiple validation errors occurred:\n- Name is required.\n- Email is required."},
		{"regular error", errors.New("regular error"), "regular error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, eh.Message(tt.err))
		})
	}
}

func TestErrorHandler_Handle(t *testing.T) {
	eh := NewErrorHandler()

	tests := []struct {
		name      string
		operation string
		err       error
		expected  string
	}{
		{"validation error", "add task", apperrors.NewValidationError("invalid input", nil), "failed to add task: invalid input"},
		{"not found error", "toggle task", apperrors.NewNotFoundError("task", "123"), "failed to toggle task: task not found: 123"},
		{"regular error", "process", errors.New("regular error"), "failed to process: regular error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.EqualError(t, eh.Handle(tt.operation, tt.err), tt.expected)
		})
	}
}

func TestErrorHandler_HandleSimple(t *testing.T) {
	eh := NewErrorHandler()

	plain := errors.New("regular error")
	assert.Same(t, plain, eh.HandleSimple(plain))
	assert.EqualError(t, eh.HandleSimple(apperrors.NewNotFoundError("user", "123")), "user not found: 123")
	assert.EqualError(t, eh.HandleSimple(apperrors.NewDatabaseError("insert", nil)), "A database error occurred. Please try again.")
}

func TestErrorHandler_Classification(t *testing.T) {
	eh := NewErrorHandler()

	tests := []struct {
		name       string
		err        error
		validation bool
		notFound   bool
		retryable  bool
		exitCode   int
	}{
		{"nil", nil, false, false, false, 0},
		{"app validation", apperrors.NewValidationError("bad", nil), true, false, false, 2},
		{"field validation", twoFieldError(), true, false, false, 2},
		{"invalid input", apperrors.NewInvalidInputError("id", "x", "id must be a whole number"), false, false, false, 2},
		{"not found", apperrors.NewNotFoundError("task", "1"), false, true, false, 1},
		{"transport", apperrors.NewTransportError("save portal", "Server timeout"), false, false, true, 1},
		{"timeout", apperrors.NewTimeoutError("fetch users", nil), false, false, true, 1},
		{"database", apperrors.NewDatabaseError("insert", nil), false, false, false, 1},
		{"regular", errors.New("boom"), false, false, false, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err != nil {
				assert.Equal(t, tt.validation, eh.IsValidationError(tt.err))
				assert.Equal(t, tt.notFound, eh.IsNotFoundError(tt.err))
				assert.Equal(t, tt.retryable, eh.IsRetryable(tt.err))
			}
			assert.Equal(t, tt.exitCode, eh.ExitCode(tt.err))
		})
	}
}

func TestErrorHandler_MessageTracesInternalErrors(t *testing.T) {
	var trace bytes.Buffer
	prev := logging.SetOutput(&trace)
	defer logging.SetOutput(prev)
	logging.SetVerbose(true)
	defer logging.SetVerbose(false)

	eh := NewErrorHandler()
	eh.Message(apperrors.NewNotFoundError("task", "9"))
	assert.Empty(t, trace.String())

	msg := eh.Message(apperrors.NewDatabaseError("insert snapshot", errors.New("disk full")))
	assert.Equal(t, "A database error occurred. Please try again.", msg)
	assert.Contains(t, trace.String(), "error [DATABASE_ERROR]: database: database operation failed: insert snapshot (caused by: disk full)")
}
