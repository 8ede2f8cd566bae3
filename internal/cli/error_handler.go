package cli

import (
	"fmt"

	"labkit/internal/errors"
	"labkit/internal/logging"
	"labkit/internal/validation"
)

// ErrorHandler turns service errors into the messages the CLI prints
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Message returns the text shown to the user for err
func (eh *ErrorHandler) Message(err error) string {
	if errors.ShouldLogError(err) {
		logging.Debugf("error [%s]: %v\n", errors.GetErrorCode(err), err)
	}
	if errors.IsAppError(err) {
		return errors.GetUserMessage(err)
	}
	if ve, ok := validation.AsValidationError(err); ok {
		return ve.GetUserFriendlyMessage()
	}
	return err.Error()
}

// Handle prefixes the user message with the failed operation
func (eh *ErrorHandler) Handle(operation string, err error) error {
	return fmt.Errorf("failed to %s: %s", operation, eh.Message(err))
}

// HandleSimple returns the user message without operation context
func (eh *ErrorHandler) HandleSimple(err error) error {
	if errors.IsAppError(err) || validation.IsValidationError(err) {
		return fmt.Errorf("%s", eh.Message(err))
	}
	return err
}

// IsValidationError checks if an error is a validation error
func (eh *ErrorHandler) IsValidationError(err error) bool {
	if validation.IsValidationError(err) {
		return true
	}
	return errors.IsErrorType(err, errors.ErrorTypeValidation)
}

// IsNotFoundError checks if an error is a not found error
func (eh *ErrorHandler) IsNotFoundError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeNotFound)
}

// IsRetryable reports whether repeating the call may succeed
func (eh *ErrorHandler) IsRetryable(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeTransport) || errors.IsErrorType(err, errors.ErrorTypeTimeout)
}

// ExitCode maps err to the process exit status: 2 for bad input, 1 otherwise
func (eh *ErrorHandler) ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case eh.IsValidationError(err), errors.IsErrorType(err, errors.ErrorTypeInvalidInput):
		return 2
	default:
		return 1
	}
}
