package domain

import "time"

// Enrollee is a portal student, keyed by a caller-chosen id such as "STU001".
type Enrollee struct {
	ID        string    `json:"id" validate:"notblank"`
	Name      string    `json:"name" validate:"notblank"`
	Email     string    `json:"email" validate:"notblank,contains=@"`
	CreatedAt time.Time `json:"createdAt"`
}

// Initial is the avatar letter.
func (e Enrollee) Initial() string {
	for _, r := range e.Name {
		return string(r)
	}
	return ""
}
