package services

import (
	"math"
	"testing"

	"labkit/internal/errors"
	"labkit/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculator_Run(t *testing.T) {
	tests := []struct {
		name       string
		a, b, op   string
		display    string
		expression string
		tone       string
	}{
		{"should add", "10", "5", "add", "15", "10 + 5", "positive"},
		{"should subtract to a negative", "3", "5", "subtract", "-2", "3 − 5", "negative"},
		{"should multiply to zero", "0", "7.5", "multiply", "0", "0 × 7.5", "zero"},
		{"should divide", "10", "4", "divide", "2.5", "10 ÷ 4", "positive"},
		{"should trim floating point noise", "0.1", "0.2", "add", "0.3", "0.1 + 0.2", "positive"},
		{"should accept symbols", "9", "3", "/", "3", "9 ÷ 3", "positive"},
		{"should accept padded input", " 2 ", " 3 ", "*", "6", "2 × 3", "positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := NewCalculator(10)

			result, err := calc.Run(tt.a, tt.b, tt.op)

			require.NoError(t, err)
			assert.Equal(t, tt.display, result.Display)
			assert.Equal(t, tt.expression, result.Expression)
			assert.Equal(t, tt.tone, result.Tone)
			assert.Equal(t, []string{tt.expression + " = " + tt.display}, calc.History())
		})
	}
}

func TestCalculator_RunErrors(t *testing.T) {
	tests := []struct {
		name      string
		a, b, op  string
		message   string
		errorType errors.ErrorType
	}{
		{"should require both numbers", "", "4", "add", "Please enter values for both numbers.", errors.ErrorTypeValidation},
		{"should reject blank numbers", "1", "   ", "add", "Please enter values for both numbers.", errors.ErrorTypeValidation},
		{"should reject non-numeric input", "abc", "4", "add", "Both inputs must be valid numbers.", errors.ErrorTypeValidation},
		{"should require an operation", "1", "4", "", "Please select an operation.", errors.ErrorTypeValidation},
		{"should reject unknown operations", "1", "4", "mod", "Unrecognised operation.", errors.ErrorTypeValidation},
		{"should reject division by zero", "10", "0", "divide", "Division by zero is not allowed.", errors.ErrorTypeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := NewCalculator(10)

			result, err := calc.Run(tt.a, tt.b, tt.op)

			assert.Nil(t, result)
			require.Error(t, err)
			assert.True(t, errors.IsErrorType(err, tt.errorType))
			assert.Equal(t, tt.message, errors.GetUserMessage(err))
			assert.Empty(t, calc.History())
		})
	}
}

func TestCalculator_NonNumericMarksOnlyBadOperand(t *testing.T) {
	calc := NewCalculator(10)

	_, err := calc.Run("12", "x", "add")

	ve, ok := validation.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, map[string]string{"b": "Both inputs must be valid numbers."}, ve.Fields())
}

func TestCalculator_ErrorClearsLastResult(t *testing.T) {
	calc := NewCalculator(10)

	_, err := calc.Run("8", "2", "divide")
	require.NoError(t, err)
	require.NotNil(t, calc.Last())

	_, err = calc.Run("10", "0", "divide")
	require.Error(t, err)

	assert.Nil(t, calc.Last())
	assert.Equal(t, []string{"8 ÷ 2 = 4"}, calc.History())
}

func TestCalculator_HistoryIsCappedNewestFirst(t *testing.T) {
	calc := NewCalculator(2)

	for _, b := range []string{"1", "2", "3"} {
		_, err := calc.Run("1", b, "add")
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"1 + 3 = 4", "1 + 2 = 3"}, calc.History())

	calc.Clear()
	assert.Nil(t, calc.Last())
	assert.Len(t, calc.History(), 2)

	calc.ClearHistory()
	assert.Empty(t, calc.History())
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		value    float64
		expected string
	}{
		{5, "5"},
		{-2.5, "-2.5"},
		{1.0 / 3.0, "0.33333333"},
		{2.0 / 3.0, "0.66666667"},
		{math.Copysign(0, -1), "0"},
		{1e-10, "0"},
		{123456789, "123456789"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatNumber(tt.value))
	}
}

func TestCalculate(t *testing.T) {
	v, err := Calculate(6, 3, OpDivide)
	require.NoError(t, err)
	assert.Equal(t, 2.0, v)

	_, err = Calculate(1, 0, OpDivide)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
	ve, ok := validation.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, map[string]string{"b": "Division by zero is not allowed."}, ve.Fields())

	_, err = Calculate(1, 1, Operation("pow"))
	assert.Error(t, err)

	assert.Equal(t, "?", Operation("pow").Symbol())
}
