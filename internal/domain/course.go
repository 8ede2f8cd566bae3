package domain

// DefaultCategory is used when a course is registered without one.
const DefaultCategory = "General"

// Categories offered by the course registry, in menu order.
var Categories = []string{"Computer Science", "Mathematics", "Engineering", "Business", DefaultCategory}

var categoryClasses = map[string]string{
	"Computer Science": "cs",
	"Mathematics":      "math",
	"Engineering":      "eng",
	"Business":         "biz",
	DefaultCategory:    "gen",
}

// Course is keyed by its name.
type Course struct {
	Name     string `json:"name" validate:"notblank"`
	Category string `json:"category"`
}

// NewCourse creates a Course, defaulting the category.
func NewCourse(name, category string) Course {
	if category == "" {
		category = DefaultCategory
	}
	return Course{Name: name, Category: category}
}

// IconClass maps the category to its icon style; unknown categories use "gen".
func (c Course) IconClass() string {
	if cls, ok := categoryClasses[c.Category]; ok {
		return cls
	}
	return categoryClasses[DefaultCategory]
}
