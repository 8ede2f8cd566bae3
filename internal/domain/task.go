package domain

import "strings"

// Task is one entry of the to-do list.
type Task struct {
	ID        int64  `json:"id"`
	Text      string `json:"text" validate:"notblank"`
	Completed bool   `json:"completed"`
}

// NewTask creates an open Task with trimmed text.
func NewTask(text string) Task {
	return Task{
		Text: strings.TrimSpace(text),
	}
}

// IsValid checks if the task has valid data.
func (t Task) IsValid() bool {
	return strings.TrimSpace(t.Text) != ""
}

// String returns the task text for display purposes.
func (t Task) String() string {
	return t.Text
}
