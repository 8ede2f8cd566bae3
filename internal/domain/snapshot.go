package domain

import "time"

// PortalSnapshot is the state of the university portal at save time.
type PortalSnapshot struct {
	ID        string     `json:"id"`
	SavedAt   time.Time  `json:"savedAt"`
	Enrollees []Enrollee `json:"enrollees"`
	Courses   []string   `json:"courses"`
}
