package services

import (
	"labkit/internal/errors"
	"labkit/internal/validation"
)

// validationFailure wraps field errors in an AppError for the service boundary.
func validationFailure(err error) error {
	if err == nil {
		return nil
	}
	if ve, ok := validation.AsValidationError(err); ok {
		return errors.NewValidationError(ve.GetUserFriendlyMessage(), ve)
	}
	return err
}

// fieldFailure is a validation error scoped to one field.
func fieldFailure(field string, typ validation.ValidationErrorType, message string, value interface{}) error {
	ve := validation.NewValidationError()
	ve.AddError(field, typ, message, value)
	return errors.NewValidationError(message, ve)
}

// validateRecord runs struct tag validation on a record entering a store.
func validateRecord[V any](v V) error {
	return validationFailure(validation.Struct(v))
}

// Change is the outcome of a mutation: the affected record and the notice to show.
type Change[T any] struct {
	Record T      `json:"record"`
	Notice string `json:"notice"`
}
