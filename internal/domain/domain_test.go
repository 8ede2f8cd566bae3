package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitials(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"Ali Ahmed", "AA"},
		{"abdullah fawad khan", "AF"},
		{"Sara", "S"},
		{"  ", ""},
		{"élan vital", "ÉV"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Initials(tt.name))
		})
	}
}

func TestStudent(t *testing.T) {
	s := Student{ID: 1, Name: "Ali Ahmed", Semester: 5, Courses: []string{"Web Development", "OOP"}}

	assert.Equal(t, "AA", s.Initials())
	assert.Equal(t, "Ali Ahmed — Semester 5 — 2 course(s)", s.Info())

	clone := s.Clone()
	clone.Courses[0] = "Changed"
	assert.Equal(t, "Web Development", s.Courses[0])
}

func TestCourse(t *testing.T) {
	assert.Equal(t, Course{Name: "Physics", Category: "General"}, NewCourse("Physics", ""))
	assert.Equal(t, "cs", NewCourse("OOP", "Computer Science").IconClass())
	assert.Equal(t, "gen", NewCourse("Art", "Fine Arts").IconClass())
}

func TestProductPatch_Apply(t *testing.T) {
	p := Product{ID: "P001", Name: "Laptop Pro", Category: "Electronics", Price: 1299.99}
	name := "Laptop Air"
	price := 999.0

	got := ProductPatch{Name: &name, Price: &price}.Apply(p)
	assert.Equal(t, Product{ID: "P001", Name: "Laptop Air", Category: "Electronics", Price: 999}, got)
}

func TestCartLine_LineTotal(t *testing.T) {
	line := CartLine{CatalogItem: CatalogItem{ID: 1, Price: 29.99}, Qty: 3}
	assert.InDelta(t, 89.97, line.LineTotal(), 1e-9)
}

func TestEnrolleeAndUser(t *testing.T) {
	assert.Equal(t, "S", Enrollee{Name: "Sara Khan"}.Initial())
	assert.Equal(t, "", Enrollee{}.Initial())
	assert.Equal(t, "FN", User{Name: "Fatima Noor"}.Initials())
	assert.Equal(t, "q3", Question{Number: 3}.Field())
}
