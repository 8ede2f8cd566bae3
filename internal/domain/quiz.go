package domain

import "strconv"

// Option is one lettered choice of a question.
type Option struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

// Question is a multiple-choice quiz item with its correct option key.
type Question struct {
	Number  int      `json:"number"`
	Prompt  string   `json:"prompt"`
	Options []Option `json:"options"`
	Answer  string   `json:"-"`
}

// Field is the form field name for the question ("q1", "q2", ...).
func (q Question) Field() string {
	return "q" + strconv.Itoa(q.Number)
}
