package services

import (
	"math"
	"strconv"
	"strings"
	"sync"

	"labkit/internal/errors"
	"labkit/internal/logging"
	"labkit/internal/validation"
)

// Operation is an arithmetic operation of the calculator.
type Operation string

const (
	OpAdd      Operation = "add"
	OpSubtract Operation = "subtract"
	OpMultiply Operation = "multiply"
	OpDivide   Operation = "divide"
)

// Symbol is the display symbol of the operation.
func (op Operation) Symbol() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "−"
	case OpMultiply:
		return "×"
	case OpDivide:
		return "÷"
	default:
		return "?"
	}
}

var operationAliases = map[string]Operation{
	"add": OpAdd, "+": OpAdd, "plus": OpAdd,
	"subtract": OpSubtract, "-": OpSubtract, "−": OpSubtract, "minus": OpSubtract,
	"multiply": OpMultiply, "*": OpMultiply, "x": OpMultiply, "×": OpMultiply, "times": OpMultiply,
	"divide": OpDivide, "/": OpDivide, "÷": OpDivide,
}

// ParseOperation resolves an operation name or symbol.
func ParseOperation(s string) (Operation, bool) {
	op, ok := operationAliases[strings.ToLower(strings.TrimSpace(s))]
	return op, ok
}

// Calculate applies op to a and b.
func Calculate(a, b float64, op Operation) (float64, error) {
	switch op {
	case OpAdd:
		return a + b, nil
	case OpSubtract:
		return a - b, nil
	case OpMultiply:
		return a * b, nil
	case OpDivide:
		if b == 0 {
			return 0, fieldFailure("b", validation.ErrorTypeInvalidValue, "Division by zero is not allowed.", b)
		}
		return a / b, nil
	default:
		return 0, fieldFailure("operation", validation.ErrorTypeInvalidValue, "Unrecognised operation.", string(op))
	}
}

// FormatNumber prints integers as-is and other values rounded to at most
// eight decimals with trailing zeros removed.
func FormatNumber(v float64) string {
	if v == 0 {
		return "0"
	}
	if v == math.Trunc(v) && !math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 8, 64), 64)
	if err != nil {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	if rounded == 0 {
		return "0"
	}
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}

// Tone classifies a result for display.
func Tone(v float64) string {
	switch {
	case v > 0:
		return "positive"
	case v < 0:
		return "negative"
	default:
		return "zero"
	}
}

// Calculation is one successful calculator run.
type Calculation struct {
	A          float64   `json:"a"`
	B          float64   `json:"b"`
	Op         Operation `json:"op"`
	Value      float64   `json:"value"`
	Display    string    `json:"display"`
	Expression string    `json:"expression"`
	Tone       string    `json:"tone"`
}

// HistoryEntry is the "expression = result" line kept in history.
func (c Calculation) HistoryEntry() string {
	return c.Expression + " = " + c.Display
}

// Calculator validates raw operands, computes results and keeps a bounded history.
type Calculator struct {
	mu        sync.Mutex
	limit     int
	history   []string
	last      *Calculation
	validator *validation.Validator
}

// NewCalculator creates a calculator keeping at most historyLimit entries.
func NewCalculator(historyLimit int) *Calculator {
	if historyLimit < 1 {
		historyLimit = 1
	}
	return &Calculator{
		limit:     historyLimit,
		validator: validation.NewValidator(),
	}
}

// Run validates the raw inputs and computes the result. Any failure clears
// the last result and leaves the history untouched.
func (c *Calculator) Run(rawA, rawB, rawOp string) (*Calculation, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	calc, err := c.compute(rawA, rawB, rawOp)
	if err != nil {
		c.last = nil
		logging.Debugf("calculator: rejected %q %q %q: %v\n", rawA, rawB, rawOp, err)
		return nil, err
	}

	c.last = calc
	c.history = append([]string{calc.HistoryEntry()}, c.history...)
	if len(c.history) > c.limit {
		c.history = c.history[:c.limit]
	}
	result := *calc
	return &result, nil
}

func (c *Calculator) compute(rawA, rawB, rawOp string) (*Calculation, error) {
	if !c.validator.IsNonEmptyString(rawA) || !c.validator.IsNonEmptyString(rawB) {
		return nil, operandError("Please enter values for both numbers.", rawA, rawB, c.validator.IsNonEmptyString)
	}

	a, okA := c.validator.ParseNumber(rawA)
	b, okB := c.validator.ParseNumber(rawB)
	if !okA || !okB {
		return nil, operandError("Both inputs must be valid numbers.", rawA, rawB, func(s string) bool {
			_, ok := c.validator.ParseNumber(s)
			return ok
		})
	}

	if strings.TrimSpace(rawOp) == "" {
		return nil, fieldFailure("operation", validation.ErrorTypeRequired, "Please select an operation.", rawOp)
	}
	op, ok := ParseOperation(rawOp)
	if !ok {
		return nil, fieldFailure("operation", validation.ErrorTypeInvalidValue, "Unrecognised operation.", rawOp)
	}

	value, err := Calculate(a, b, op)
	if err != nil {
		return nil, err
	}

	return &Calculation{
		A:          a,
		B:          b,
		Op:         op,
		Value:      value,
		Display:    FormatNumber(value),
		Expression: FormatNumber(a) + " " + op.Symbol() + " " + FormatNumber(b),
		Tone:       Tone(value),
	}, nil
}

// operandError marks each operand failing ok with the shared message.
func operandError(message, rawA, rawB string, ok func(string) bool) error {
	ve := validation.NewValidationError()
	if !ok(rawA) {
		ve.AddError("a", validation.ErrorTypeInvalidFormat, message, rawA)
	}
	if !ok(rawB) {
		ve.AddError("b", validation.ErrorTypeInvalidFormat, message, rawB)
	}
	return errors.NewValidationError(message, ve)
}

// Last returns the most recent successful result, or nil.
func (c *Calculator) Last() *Calculation {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.last == nil {
		return nil
	}
	last := *c.last
	return &last
}

// History returns entries newest first.
func (c *Calculator) History() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]string, len(c.history))
	copy(out, c.history)
	return out
}

// Clear drops the current result; history is kept.
func (c *Calculator) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.last = nil
}

// ClearHistory empties the history.
func (c *Calculator) ClearHistory() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.history = nil
}
