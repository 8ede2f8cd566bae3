package domain

import "fmt"

// Student is a roster entry.
type Student struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name" validate:"notblank"`
	Semester int      `json:"semester" validate:"gte=1"`
	Courses  []string `json:"courses" validate:"min=1,dive,notblank"`
}

// NewStudent creates a Student; the id is assigned by the roster.
func NewStudent(name string, semester int, courses []string) Student {
	return Student{
		Name:     name,
		Semester: semester,
		Courses:  courses,
	}
}

// Initials returns the avatar letters.
func (s Student) Initials() string {
	return Initials(s.Name)
}

// Info is the one-line summary shown on hover.
func (s Student) Info() string {
	return fmt.Sprintf("%s — Semester %d — %d course(s)", s.Name, s.Semester, len(s.Courses))
}

// Clone copies the course slice so snapshots do not alias store state.
func (s Student) Clone() Student {
	courses := make([]string, len(s.Courses))
	copy(courses, s.Courses)
	s.Courses = courses
	return s
}
