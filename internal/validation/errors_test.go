package validation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError_Messages(t *testing.T) {
	ve := NewValidationError()
	assert.False(t, ve.HasErrors())
	assert.Nil(t, ve.OrNil())
	assert.Equal(t, "Input validation failed", ve.GetUserFriendlyMessage())

	ve.AddRequiredError("name", "Name is required.")
	assert.Equal(t, "Name is required.", ve.GetUserFriendlyMessage())
	assert.Equal(t, "validation error for field 'name': Name is required.", ve.Error())

	ve.AddInvalidValueError("age", "70", "Age must be between 18 and 60.")
	ve.AddInvalidValueError("age", "70", "second message")
	assert.Equal(t, "Multiple validation errors occurred:\n- Name is required.\n- Age must be between 18 and 60.\n- second message", ve.GetUserFriendlyMessage())
	assert.Len(t, ve.GetFieldErrors("age"), 2)
	assert.Equal(t, "Age must be between 18 and 60.", ve.Message("age"))
	assert.Equal(t, "", ve.Message("email"))
	assert.Equal(t, map[string]string{
		"name": "Name is required.",
		"age":  "Age must be between 18 and 60.",
	}, ve.Fields())
}

func TestValidationError_DefaultMessages(t *testing.T) {
	ve := NewValidationError()
	ve.AddRequiredError("title", "")
	ve.AddInvalidLengthError("title", "x", 2, 0)
	ve.AddInvalidLengthError("title", "x", 0, 5)
	ve.AddInvalidLengthError("title", "x", 2, 5)

	assert.Equal(t, "title is required", ve.Errors[0].Message)
	assert.Equal(t, "title must be at least 2 characters long", ve.Errors[1].Message)
	assert.Equal(t, "title must be at most 5 characters long", ve.Errors[2].Message)
	assert.Equal(t, "title must be between 2 and 5 characters long", ve.Errors[3].Message)
}

func TestAsValidationError(t *testing.T) {
	ve := NewValidationError()
	ve.AddRequiredError("name", "Name is required.")
	wrapped := fmt.Errorf("register: %w", ve)

	assert.True(t, IsValidationError(wrapped))
	got, ok := AsValidationError(wrapped)
	require.True(t, ok)
	assert.Same(t, ve, got)

	assert.False(t, IsValidationError(fmt.Errorf("plain")))
}
