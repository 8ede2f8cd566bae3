package validation

import (
	"fmt"
	"strings"
)

// RegistrationInput is the raw registration form as typed.
type RegistrationInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Age      string `json:"age"`
	Password string `json:"password"`
}

// MaxPasswordBytes is the longest password bcrypt will hash.
const MaxPasswordBytes = 72

// ValidateRegistration applies the registration rules field by field.
func ValidateRegistration(in RegistrationInput) error {
	return Check(
		Field{Name: "name", Value: in.Name, Rules: []Rule{
			Required("Name is required."),
			MinLength(2, "Name must be at least 2 characters."),
		}},
		Field{Name: "email", Value: in.Email, Rules: []Rule{
			Required("Email is required."),
			Contains("@", "Email must contain an @ symbol."),
		}},
		Field{Name: "age", Value: in.Age, Rules: []Rule{
			Required("Age is required."),
			WholeNumber("Age must be a whole number."),
			IntRange(18, 60, "Age must be between 18 and 60."),
		}},
		Field{Name: "password", Value: in.Password, Rules: []Rule{
			RequiredRaw("Password is required."),
			MinLengthRaw(6, "Password must be at least 6 characters."),
			MaxBytes(MaxPasswordBytes, "Password must be at most 72 bytes."),
		}},
	)
}

// ValidateTaskText checks a to-do entry.
func ValidateTaskText(text string) error {
	return Check(Field{Name: "text", Value: text, Rules: []Rule{
		Required("Please enter a task."),
	}})
}

// ValidateColorInput checks a colour box entry and returns the parsed colour.
func ValidateColorInput(input string) (Color, error) {
	if err := Check(Field{Name: "color", Value: input, Rules: []Rule{
		Required("Please enter a colour."),
	}}); err != nil {
		return Color{}, err
	}

	c, err := ParseColor(input)
	if err != nil {
		ve := NewValidationError()
		ve.AddError("color", ErrorTypeInvalidFormat, fmt.Sprintf("%q is not a valid CSS colour.", strings.TrimSpace(input)), input)
		return Color{}, ve
	}
	return c, nil
}
