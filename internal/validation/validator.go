package validation

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Validator provides common validation utilities
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidStringLength checks if a trimmed string's rune count is within range.
// A max of 0 means unbounded.
func (v *Validator) IsValidStringLength(s string, min, max int) bool {
	length := utf8.RuneCountInString(strings.TrimSpace(s))
	if max > 0 && length > max {
		return false
	}
	return length >= min
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}

// ParseNumber parses a decimal operand. NaN and infinities are rejected.
func (v *Validator) ParseNumber(s string) (float64, bool) {
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// ParseWholeNumber parses a number with no fractional part, so "20.0" is 20.
func (v *Validator) ParseWholeNumber(s string) (int, bool) {
	n, ok := v.ParseNumber(s)
	if !ok || n != math.Trunc(n) || math.Abs(n) > math.MaxInt32 {
		return 0, false
	}
	return int(n), true
}

// IsValidID checks if a sequence id is positive
func (v *Validator) IsValidID(id int64) bool {
	return id > 0
}

// SplitList splits a comma separated list, trimming items and dropping empties.
func (v *Validator) SplitList(s string) []string {
	items := make([]string, 0)
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}
