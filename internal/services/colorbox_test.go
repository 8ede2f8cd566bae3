package services

import (
	"testing"

	"labkit/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorBoxes_Add(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		hex     string
		tone    string
		message string
	}{
		{name: "should accept named colours", input: "red", hex: "#ff0000", tone: "light"},
		{name: "should accept hex colours", input: " #FFF ", hex: "#ffffff", tone: "dark"},
		{name: "should accept rgb colours", input: "rgb(0, 0, 128)", hex: "#000080", tone: "light"},
		{name: "should reject blank input", input: "  ", message: "Please enter a colour."},
		{name: "should reject unknown colours", input: "blurple", message: `"blurple" is not a valid CSS colour.`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			boxes := NewColorBoxes()

			box, err := boxes.Add(tt.input)

			if tt.message != "" {
				require.Error(t, err)
				assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
				assert.Equal(t, tt.message, errors.GetUserMessage(err))
				assert.Equal(t, 0, boxes.View().Total)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.hex, box.Hex)
			assert.Equal(t, tt.tone, box.LabelTone)
		})
	}
}

func TestColorBoxes_CountAndClear(t *testing.T) {
	boxes := NewColorBoxes()

	_, err := boxes.Add("teal")
	require.NoError(t, err)
	assert.Equal(t, "1 box", boxes.View().Stats.CountText)

	second, err := boxes.Add("teal")
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.ID)
	assert.Equal(t, "2 boxes", boxes.View().Stats.CountText)

	assert.True(t, boxes.Remove(second.ID))
	boxes.Clear()
	view := boxes.View()
	assert.True(t, view.Empty)
	assert.Equal(t, "0 boxes", view.Stats.CountText)
}
