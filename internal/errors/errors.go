package errors

import (
	"errors"
	"fmt"
)

func newError(t ErrorType, code, message string, cause error, context map[string]interface{}) *AppError {
	if context == nil {
		context = map[string]interface{}{}
	}
	return &AppError{Type: t, Message: message, Code: code, Cause: cause, Context: context}
}

// NewValidationError wraps rejected input. cause is usually a
// *validation.ValidationError holding the per-field messages.
func NewValidationError(message string, cause error) *AppError {
	return newError(ErrorTypeValidation, "VALIDATION_FAILED", message, cause, nil)
}

// NewNotFoundError reports a missing record, e.g. "product not found: P009".
func NewNotFoundError(resource string, identifier string) *AppError {
	return newError(ErrorTypeNotFound, "NOT_FOUND",
		fmt.Sprintf("%s not found: %s", resource, identifier), nil,
		map[string]interface{}{"resource": resource, "identifier": identifier})
}

// NewDuplicateKeyError reports an insert whose key is already present.
// The message is shown to the user verbatim.
func NewDuplicateKeyError(resource string, identifier string, message string) *AppError {
	if message == "" {
		message = fmt.Sprintf("%s already exists: %s", resource, identifier)
	}
	return newError(ErrorTypeDuplicateKey, "DUPLICATE_KEY", message, nil,
		map[string]interface{}{"resource": resource, "identifier": identifier})
}

// NewDatabaseError wraps a failed snapshot store call.
func NewDatabaseError(operation string, cause error) *AppError {
	return newError(ErrorTypeDatabase, "DATABASE_ERROR", "database operation failed: "+operation, cause,
		map[string]interface{}{"operation": operation})
}

// NewInvalidInputError rejects a malformed argument; reason is the user message.
func NewInvalidInputError(field string, value interface{}, reason string) *AppError {
	return newError(ErrorTypeInvalidInput, "INVALID_INPUT", reason, nil,
		map[string]interface{}{"field": field, "value": value, "reason": reason})
}

func NewTimeoutError(operation string, timeout interface{}) *AppError {
	return newError(ErrorTypeTimeout, "TIMEOUT", "operation timed out: "+operation, nil,
		map[string]interface{}{"operation": operation, "timeout": timeout})
}

// NewTransportError reports a failed simulated remote call. The loader and
// the portal show message next to a retry hint.
func NewTransportError(operation string, message string) *AppError {
	return newError(ErrorTypeTransport, "TRANSPORT_FAILED", message, nil,
		map[string]interface{}{"operation": operation})
}

// WrapError classifies err; the code is the type name.
func WrapError(err error, errorType ErrorType, message string) *AppError {
	return newError(errorType, errorType.String(), message, err, nil)
}

func IsAppError(err error) bool {
	_, ok := AsAppError(err)
	return ok
}

// AsAppError finds the first AppError in err's chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func IsErrorType(err error, errorType ErrorType) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.IsType(errorType)
}

// Internal failures get a fixed text; everything else carries its own message.
var fixedMessages = map[ErrorType]string{
	ErrorTypeDatabase: "A database error occurred. Please try again.",
	ErrorTypeTimeout:  "The operation timed out. Please try again.",
}

// GetUserMessage is the text the CLI prints and the HTTP surface returns.
func GetUserMessage(err error) string {
	appErr, ok := AsAppError(err)
	if !ok {
		return err.Error()
	}
	if msg, fixed := fixedMessages[appErr.Type]; fixed {
		return msg
	}
	if !appErr.Type.known() {
		return "An unexpected error occurred. Please try again."
	}
	return appErr.Message
}

func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return "UNKNOWN_ERROR"
}

// ShouldLogError is false for mistakes the user can fix by changing input.
func ShouldLogError(err error) bool {
	appErr, ok := AsAppError(err)
	if !ok {
		return true
	}
	switch appErr.Type {
	case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeDuplicateKey, ErrorTypeInvalidInput:
		return false
	}
	return true
}
