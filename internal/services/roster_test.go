package services

import (
	"testing"

	"labkit/internal/errors"
	"labkit/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoster_Seeds(t *testing.T) {
	roster := NewRoster()

	view := roster.View("")

	assert.Equal(t, 4, view.Total)
	assert.Equal(t, int64(5), roster.NextID())
	assert.Equal(t, RosterStats{
		Students:        4,
		DistinctCourses: 12,
		AverageSemester: "5.3",
		CountBadge:      "4 records",
	}, view.Stats)

	first := view.Rows[0]
	assert.Equal(t, "AA", first.Initials)
	assert.Equal(t, "c1", first.AvatarClass)
	assert.Equal(t, "Sem 5", first.Semester)
	assert.Equal(t, "Ali Ahmed — Semester 5 — 3 course(s)", first.Info)
}

func TestRoster_SearchKeepsStats(t *testing.T) {
	tests := []struct {
		name  string
		query string
		names []string
	}{
		{"should match names case-insensitively", "SARA", []string{"Sara Khan"}},
		{"should match courses", "machine", []string{"Usman Tariq"}},
		{"should match nothing", "zzz", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roster := NewRoster()
			full := roster.View("")

			view := roster.View(tt.query)

			var names []string
			for _, row := range view.Rows {
				names = append(names, row.Name)
			}
			assert.Equal(t, tt.names, names)
			assert.Equal(t, full.Stats, view.Stats)
			assert.Equal(t, len(tt.names) == 0, view.Empty)
		})
	}
}

func TestRoster_Add(t *testing.T) {
	roster := NewRoster()

	change, err := roster.Add(StudentInput{Name: " Hina Raza ", Semester: "2", Courses: "Calculus, , Physics ,"})

	require.NoError(t, err)
	assert.Equal(t, "Student added", change.Notice)
	assert.Equal(t, int64(5), change.Record.ID)
	assert.Equal(t, "Hina Raza", change.Record.Name)
	assert.Equal(t, []string{"Calculus", "Physics"}, change.Record.Courses)
	assert.Equal(t, "5 records", roster.View("").Stats.CountBadge)
}

func TestRoster_AddValidation(t *testing.T) {
	tests := []struct {
		name     string
		input    StudentInput
		expected map[string]string
	}{
		{
			name:  "should require every field",
			input: StudentInput{},
			expected: map[string]string{
				"name":     "Name is required.",
				"semester": "Semester is required.",
				"courses":  "Enter at least one course.",
			},
		},
		{
			name:     "should reject semester zero",
			input:    StudentInput{Name: "X", Semester: "0", Courses: "A"},
			expected: map[string]string{"semester": "Semester must be at least 1."},
		},
		{
			name:     "should reject fractional semesters",
			input:    StudentInput{Name: "X", Semester: "2.5", Courses: "A"},
			expected: map[string]string{"semester": "Semester must be a whole number."},
		},
		{
			name:     "should reject course lists with only separators",
			input:    StudentInput{Name: "X", Semester: "1", Courses: " , ,"},
			expected: map[string]string{"courses": "Enter at least one course."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roster := NewRoster()

			_, err := roster.Add(tt.input)

			require.Error(t, err)
			ve, ok := validation.AsValidationError(err)
			require.True(t, ok)
			assert.Equal(t, tt.expected, ve.Fields())
			assert.Equal(t, 4, roster.View("").Total)
			assert.Equal(t, int64(5), roster.NextID())
		})
	}
}

func TestRoster_Update(t *testing.T) {
	roster := NewRoster()

	change, err := roster.Update(2, StudentInput{Name: "Sara K.", Semester: "4", Courses: "OOP"})
	require.NoError(t, err)
	assert.Equal(t, "Student updated", change.Notice)
	assert.Equal(t, int64(2), change.Record.ID)

	stored, ok := roster.Get(2)
	require.True(t, ok)
	assert.Equal(t, "Sara K.", stored.Name)
	assert.Equal(t, 4, stored.Semester)

	_, err = roster.Update(99, StudentInput{Name: "Ghost", Semester: "1", Courses: "A"})
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
	assert.Equal(t, 4, roster.View("").Total)
}

func TestRoster_Remove(t *testing.T) {
	roster := NewRoster()

	change, ok := roster.Remove(1)
	assert.True(t, ok)
	assert.Equal(t, "Student deleted", change.Notice)
	assert.Equal(t, "Ali Ahmed", change.Record.Name)

	_, ok = roster.Remove(1)
	assert.False(t, ok)
	assert.Equal(t, 3, roster.View("").Total)
}

func TestRoster_SnapshotsDoNotAliasStore(t *testing.T) {
	roster := NewRoster()

	student, ok := roster.Get(1)
	require.True(t, ok)
	student.Courses[0] = "Changed"

	again, _ := roster.Get(1)
	assert.Equal(t, "Web Development", again.Courses[0])
}

func TestRoster_EmptyAverage(t *testing.T) {
	roster := NewRoster()
	for id := int64(1); id <= 4; id++ {
		roster.Remove(id)
	}

	view := roster.View("")
	assert.True(t, view.Empty)
	assert.Equal(t, "0", view.Stats.AverageSemester)
	assert.Equal(t, "0 records", view.Stats.CountBadge)
}
