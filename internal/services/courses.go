package services

import (
	"fmt"
	"strings"
	"sync"

	"labkit/internal/domain"
	"labkit/internal/render"
	"labkit/internal/store"
	"labkit/internal/validation"
)

// CourseRow is one rendered course.
type CourseRow struct {
	Name      string `json:"name"`
	Category  string `json:"category"`
	IconClass string `json:"iconClass"`
}

// CourseStats summarises the registry.
type CourseStats struct {
	Total        int    `json:"total"`
	RecentAction string `json:"recentAction,omitempty"`
}

// CourseView is the rendered course list.
type CourseView = render.View[CourseRow, CourseStats]

var courseSeed = []domain.Course{
	domain.NewCourse("Mathematics", "Mathematics"),
	domain.NewCourse("Physics", "Engineering"),
	domain.NewCourse("Data Structures", "Computer Science"),
	domain.NewCourse("Web Development", "Computer Science"),
	domain.NewCourse("Linear Algebra", "Mathematics"),
}

// Courses is the course registration exercise. Names are unique.
type Courses struct {
	courses *store.Store[string, domain.Course]

	mu     sync.Mutex
	recent string
}

// NewCourses creates the registry with its five seed courses.
func NewCourses() *Courses {
	c := &Courses{
		courses: store.New("course",
			func(c domain.Course) string { return c.Name },
			store.WithValidator[string](validateRecord[domain.Course]),
			store.WithDuplicateMessage[string, domain.Course]("Course already registered"),
		),
	}
	for _, course := range courseSeed {
		if _, err := c.courses.Add(course); err != nil {
			panic(fmt.Sprintf("course seed %q: %v", course.Name, err))
		}
	}
	return c
}

// Register adds a course. An empty category means "General".
func (c *Courses) Register(name, category string) (Change[domain.Course], error) {
	category = strings.TrimSpace(category)
	fields := []validation.Field{
		{Name: "name", Value: name, Rules: []validation.Rule{
			validation.Required("Please enter a course name."),
		}},
	}
	if category != "" {
		fields = append(fields, validation.Field{Name: "category", Value: category, Rules: []validation.Rule{
			validation.OneOf("Please choose a listed category.", domain.Categories...),
		}})
	}
	if err := validation.Check(fields...); err != nil {
		return Change[domain.Course]{}, validationFailure(err)
	}

	added, err := c.courses.Add(domain.NewCourse(strings.TrimSpace(name), category))
	if err != nil {
		return Change[domain.Course]{}, err
	}
	c.setRecent("Added")
	return Change[domain.Course]{
		Record: added,
		Notice: fmt.Sprintf("\"%s\" registered successfully", added.Name),
	}, nil
}

// Remove deletes the course called name.
func (c *Courses) Remove(name string) (Change[domain.Course], bool) {
	course, ok := c.courses.Get(name)
	if !ok || !c.courses.Remove(name) {
		return Change[domain.Course]{}, false
	}
	c.setRecent("Removed")
	return Change[domain.Course]{Record: course, Notice: fmt.Sprintf("\"%s\" removed", name)}, true
}

// Has reports whether name is registered.
func (c *Courses) Has(name string) bool {
	return c.courses.Has(name)
}

func (c *Courses) setRecent(action string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.recent = action
}

// RecentAction is "Added", "Removed" or "" before any change.
func (c *Courses) RecentAction() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.recent
}

// View renders courses whose name or category contains query.
func (c *Courses) View(query string) CourseView {
	filter := render.MatchAny(query,
		render.Text(func(c domain.Course) string { return c.Name }),
		render.Text(func(c domain.Course) string { return c.Category }),
	)
	recent := c.RecentAction()
	return render.Project(c.courses.All(), filter,
		func(course domain.Course) CourseRow {
			return CourseRow{Name: course.Name, Category: course.Category, IconClass: course.IconClass()}
		},
		func(all []domain.Course) CourseStats {
			return CourseStats{Total: len(all), RecentAction: recent}
		},
	)
}
