package domain

// StudentRecord is the JSON shape used by the serialization exercise.
type StudentRecord struct {
	Name     string   `json:"name"`
	Age      int      `json:"age"`
	Semester int      `json:"semester"`
	Courses  []string `json:"courses"`
}
