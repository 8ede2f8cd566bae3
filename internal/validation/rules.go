package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Rule is one check applied to a raw field value.
type Rule struct {
	Type    ValidationErrorType
	Message string
	Check   func(value string) bool
}

// Field binds a raw input value to its rules. Rules run in order and the
// first failure is the only one reported for the field.
type Field struct {
	Name  string
	Value string
	Rules []Rule
}

// Check validates every field independently and returns a *ValidationError
// listing each failing field, or nil when all pass.
func Check(fields ...Field) error {
	ve := NewValidationError()
	for _, f := range fields {
		for _, rule := range f.Rules {
			if !rule.Check(f.Value) {
				ve.AddError(f.Name, rule.Type, rule.Message, f.Value)
				break
			}
		}
	}
	return ve.OrNil()
}

var shared = NewValidator()

// Required fails on empty or whitespace-only input.
func Required(message string) Rule {
	return Rule{Type: ErrorTypeRequired, Message: message, Check: shared.IsNonEmptyString}
}

// RequiredRaw fails only on the empty string; whitespace counts as content.
func RequiredRaw(message string) Rule {
	return Rule{Type: ErrorTypeRequired, Message: message, Check: func(s string) bool { return s != "" }}
}

// MinLength checks the trimmed rune count.
func MinLength(n int, message string) Rule {
	return Rule{Type: ErrorTypeInvalidLength, Message: message, Check: func(s string) bool {
		return shared.IsValidStringLength(s, n, 0)
	}}
}

// MinLengthRaw checks the untrimmed rune count.
func MinLengthRaw(n int, message string) Rule {
	return Rule{Type: ErrorTypeInvalidLength, Message: message, Check: func(s string) bool {
		return utf8.RuneCountInString(s) >= n
	}}
}

// MaxBytes caps the raw byte length.
func MaxBytes(n int, message string) Rule {
	return Rule{Type: ErrorTypeInvalidLength, Message: message, Check: func(s string) bool {
		return len(s) <= n
	}}
}

// Contains requires a substring.
func Contains(sub string, message string) Rule {
	return Rule{Type: ErrorTypeInvalidFormat, Message: message, Check: func(s string) bool {
		return strings.Contains(s, sub)
	}}
}

// Numeric requires a finite decimal number.
func Numeric(message string) Rule {
	return Rule{Type: ErrorTypeInvalidFormat, Message: message, Check: func(s string) bool {
		_, ok := shared.ParseNumber(s)
		return ok
	}}
}

// WholeNumber requires a base-10 integer.
func WholeNumber(message string) Rule {
	return Rule{Type: ErrorTypeInvalidFormat, Message: message, Check: func(s string) bool {
		_, ok := shared.ParseWholeNumber(s)
		return ok
	}}
}

// IntRange requires an integer within [min, max].
func IntRange(min, max int, message string) Rule {
	return Rule{Type: ErrorTypeInvalidRange, Message: message, Check: func(s string) bool {
		n, ok := shared.ParseWholeNumber(s)
		return ok && n >= min && n <= max
	}}
}

// NonZero requires a number other than zero.
func NonZero(message string) Rule {
	return Rule{Type: ErrorTypeInvalidValue, Message: message, Check: func(s string) bool {
		n, ok := shared.ParseNumber(s)
		return ok && n != 0
	}}
}

// Pattern requires a regular expression match.
func Pattern(re *regexp.Regexp, message string) Rule {
	return Rule{Type: ErrorTypeInvalidFormat, Message: message, Check: re.MatchString}
}

// OneOf requires the value to be one of the allowed options.
func OneOf(message string, options ...string) Rule {
	return Rule{Type: ErrorTypeInvalidValue, Message: message, Check: func(s string) bool {
		for _, o := range options {
			if s == o {
				return true
			}
		}
		return false
	}}
}
