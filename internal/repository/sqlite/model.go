package sqlite

import "time"

// Snapshot is one saved state of the university portal.
// Payload holds the JSON-encoded enrollees and courses.
type Snapshot struct {
	ID           string
	SavedAt      time.Time
	StudentCount int
	CourseCount  int
	Payload      string
}
