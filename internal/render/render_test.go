package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type course struct {
	Name     string
	Category string
	Tags     []string
}

var courses = []course{
	{Name: "Mathematics", Category: "Mathematics"},
	{Name: "Physics", Category: "Engineering", Tags: []string{"lab"}},
	{Name: "Data Structures", Category: "Computer Science"},
	{Name: "Web Development", Category: "Computer Science", Tags: []string{"Lab", "html"}},
}

type courseStats struct {
	Total      int
	Categories int
}

func stats(all []course) courseStats {
	var cats []string
	for _, c := range all {
		cats = append(cats, c.Category)
	}
	return courseStats{Total: len(all), Categories: len(Distinct(cats))}
}

func name(c course) string { return c.Name }

func TestMatchAny(t *testing.T) {
	tests := []struct {
		query    string
		expected []string
	}{
		{"", []string{"Mathematics", "Physics", "Data Structures", "Web Development"}},
		{"   ", []string{"Mathematics", "Physics", "Data Structures", "Web Development"}},
		{"MATH", []string{"Mathematics"}},
		{"computer", []string{"Data Structures", "Web Development"}},
		{"lab", []string{"Physics", "Web Development"}},
		{"chemistry", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			filter := MatchAny(tt.query,
				Text(name),
				Text(func(c course) string { return c.Category }),
				func(c course) []string { return c.Tags },
			)
			view := Project(courses, filter, name, stats)
			assert.Equal(t, tt.expected, view.Rows)
		})
	}
}

func TestProject_StatsIgnoreFilter(t *testing.T) {
	full := Project(courses, nil, name, stats)
	filtered := Project(courses, MatchAny("physics", Text(name)), name, stats)

	assert.Equal(t, full.Stats, filtered.Stats)
	assert.Equal(t, courseStats{Total: 4, Categories: 3}, filtered.Stats)
	assert.Equal(t, 4, filtered.Total)
	assert.Equal(t, 1, filtered.Shown)
	assert.False(t, filtered.Empty)
}

func TestProject_Empty(t *testing.T) {
	view := Project([]course{}, All[course](), name, stats)
	assert.True(t, view.Empty)
	assert.Empty(t, view.Rows)
	assert.NotNil(t, view.Rows)
}

func TestEqualsAndAnd(t *testing.T) {
	category := func(c course) string { return c.Category }

	view := Project[course, string, struct{}](courses, Equals("all", category), name, nil)
	assert.Len(t, view.Rows, 4)

	view = Project[course, string, struct{}](courses, And(Equals("Computer Science", category), MatchAny("web", Text(name))), name, nil)
	assert.Equal(t, []string{"Web Development"}, view.Rows)
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "1 task", Plural(1, "task", "tasks"))
	assert.Equal(t, "0 tasks", Plural(0, "task", "tasks"))
	assert.Equal(t, "$29.99", Money(29.99))
	assert.Equal(t, "$0.00", Money(0))
	assert.Equal(t, "$512", WholeMoney(511.792))
	assert.Equal(t, "5.3", Fixed(5.25, 1))
	assert.Equal(t, "0.0", Fixed(-0.01, 1))
	assert.Equal(t, "1.52s", Seconds(1523*time.Millisecond))
	assert.Equal(t, "c5", AvatarClass(5))
	assert.Equal(t, "c0", AvatarClass(6))
	assert.Equal(t, 0.0, Average(nil))
	assert.Equal(t, 2.0, Average([]float64{1, 3}))
	assert.Equal(t, []string{"a", "b"}, Distinct([]string{"a", "b", "a"}))
}
