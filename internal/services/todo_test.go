package services

import (
	"testing"

	"labkit/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTodoList_Lifecycle(t *testing.T) {
	list := NewTodoList()

	task, err := list.Add("Buy milk")
	require.NoError(t, err)
	assert.Equal(t, int64(1), task.ID)

	view := list.View()
	assert.Equal(t, 1, view.Stats.Total)
	assert.Equal(t, 0, view.Stats.Done)
	assert.Equal(t, "1 task", view.Stats.CountText)
	assert.False(t, view.Empty)

	toggled, err := list.Toggle(task.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)
	view = list.View()
	assert.Equal(t, 1, view.Stats.Done)
	assert.Equal(t, "1 task · 1 done", view.Stats.CountText)

	assert.True(t, list.Remove(task.ID))
	view = list.View()
	assert.True(t, view.Empty)
	assert.Equal(t, "0 tasks", view.Stats.CountText)
}

func TestTodoList_Add(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
		wantErr  bool
	}{
		{name: "should trim text", text: "  Read book  ", expected: "Read book"},
		{name: "should reject empty text", text: "", wantErr: true},
		{name: "should reject whitespace text", text: " \t ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := NewTodoList()

			task, err := list.Add(tt.text)

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
				assert.Equal(t, "Please enter a task.", errors.GetUserMessage(err))
				assert.True(t, list.View().Empty)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, task.Text)
		})
	}
}

func TestTodoList_ToggleMissingLeavesListUnchanged(t *testing.T) {
	list := NewTodoList()
	_, err := list.Add("Walk dog")
	require.NoError(t, err)
	before := list.View()

	_, err = list.Toggle(42)

	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
	assert.Equal(t, before, list.View())
	assert.False(t, list.Remove(42))
}

func TestTodoList_ResetRestartsIDs(t *testing.T) {
	list := NewTodoList()
	for _, text := range []string{"a", "b", "c"} {
		_, err := list.Add(text)
		require.NoError(t, err)
	}
	list.Reset()

	task, err := list.Add("again")
	require.NoError(t, err)
	assert.Equal(t, int64(1), task.ID)
	assert.Equal(t, 1, list.View().Total)
}

func TestTodoCountText(t *testing.T) {
	assert.Equal(t, "2 tasks", TodoCountText(2, 0))
	assert.Equal(t, "3 tasks · 2 done", TodoCountText(3, 2))
}
