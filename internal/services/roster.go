package services

import (
	"fmt"
	"math"
	"strings"

	"labkit/internal/domain"
	"labkit/internal/render"
	"labkit/internal/store"
	"labkit/internal/validation"
)

// StudentInput is the raw add/edit student form.
type StudentInput struct {
	Name     string `json:"name"`
	Semester string `json:"semester"`
	Courses  string `json:"courses"`
}

// StudentRow is one rendered roster line.
type StudentRow struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Initials    string   `json:"initials"`
	AvatarClass string   `json:"avatarClass"`
	Semester    string   `json:"semester"`
	Courses     []string `json:"courses"`
	Info        string   `json:"info"`
}

// RosterStats summarises every student, regardless of search.
type RosterStats struct {
	Students        int    `json:"students"`
	DistinctCourses int    `json:"distinctCourses"`
	AverageSemester string `json:"averageSemester"`
	CountBadge      string `json:"countBadge"`
}

// RosterView is the rendered student table.
type RosterView = render.View[StudentRow, RosterStats]

var rosterSeed = []domain.Student{
	domain.NewStudent("Ali Ahmed", 5, []string{"Web Development", "Database Systems", "Operating Systems"}),
	domain.NewStudent("Sara Khan", 3, []string{"Data Structures", "OOP", "Linear Algebra"}),
	domain.NewStudent("Usman Tariq", 7, []string{"Machine Learning", "Cloud Computing", "Software Engineering"}),
	domain.NewStudent("Abdullah Fawad", 6, []string{"Full-Stack Development", "AI & ML", "DevOps"}),
}

// Roster is the student management exercise.
type Roster struct {
	students  *store.Store[int64, domain.Student]
	validator *validation.Validator
}

// NewRoster creates a roster holding the four seed students (ids 1 to 4).
func NewRoster() *Roster {
	r := &Roster{
		students: store.New("student",
			func(s domain.Student) int64 { return s.ID },
			store.WithSequence[int64](func(s domain.Student, id int64) domain.Student {
				s.ID = id
				return s
			}),
			store.WithClone[int64](domain.Student.Clone),
			store.WithValidator[int64](validateRecord[domain.Student]),
		),
		validator: validation.NewValidator(),
	}
	for _, s := range rosterSeed {
		if _, err := r.students.Add(s); err != nil {
			panic(fmt.Sprintf("roster seed %q: %v", s.Name, err))
		}
	}
	return r
}

func (r *Roster) parse(in StudentInput) (domain.Student, error) {
	courses := r.validator.SplitList(in.Courses)
	err := validation.Check(
		validation.Field{Name: "name", Value: in.Name, Rules: []validation.Rule{
			validation.Required("Name is required."),
		}},
		validation.Field{Name: "semester", Value: in.Semester, Rules: []validation.Rule{
			validation.Required("Semester is required."),
			validation.WholeNumber("Semester must be a whole number."),
			validation.IntRange(1, math.MaxInt32, "Semester must be at least 1."),
		}},
		validation.Field{Name: "courses", Value: in.Courses, Rules: []validation.Rule{
			{Type: validation.ErrorTypeRequired, Message: "Enter at least one course.", Check: func(string) bool {
				return len(courses) > 0
			}},
		}},
	)
	if err != nil {
		return domain.Student{}, validationFailure(err)
	}

	semester, _ := r.validator.ParseWholeNumber(in.Semester)
	return domain.NewStudent(strings.TrimSpace(in.Name), semester, courses), nil
}

// Add validates the form and appends a student with the next id.
func (r *Roster) Add(in StudentInput) (Change[domain.Student], error) {
	student, err := r.parse(in)
	if err != nil {
		return Change[domain.Student]{}, err
	}
	added, err := r.students.Add(student)
	if err != nil {
		return Change[domain.Student]{}, err
	}
	return Change[domain.Student]{Record: added, Notice: "Student added"}, nil
}

// Update replaces the fields of student id, keeping the id.
func (r *Roster) Update(id int64, in StudentInput) (Change[domain.Student], error) {
	student, err := r.parse(in)
	if err != nil {
		return Change[domain.Student]{}, err
	}
	updated, err := r.students.Update(id, func(current domain.Student) (domain.Student, error) {
		student.ID = current.ID
		return student, nil
	})
	if err != nil {
		return Change[domain.Student]{}, err
	}
	return Change[domain.Student]{Record: updated, Notice: "Student updated"}, nil
}

// Remove deletes student id and reports whether it existed.
func (r *Roster) Remove(id int64) (Change[domain.Student], bool) {
	student, ok := r.students.Get(id)
	if !ok || !r.students.Remove(id) {
		return Change[domain.Student]{}, false
	}
	return Change[domain.Student]{Record: student, Notice: "Student deleted"}, true
}

// Get returns student id.
func (r *Roster) Get(id int64) (domain.Student, bool) {
	return r.students.Get(id)
}

// NextID is the id the next added student receives.
func (r *Roster) NextID() int64 {
	return r.students.NextID()
}

// View renders students whose name or any course contains query.
func (r *Roster) View(query string) RosterView {
	filter := render.MatchAny(query,
		render.Text(func(s domain.Student) string { return s.Name }),
		func(s domain.Student) []string { return s.Courses },
	)
	return render.Project(r.students.All(), filter, studentRow, rosterStats)
}

func studentRow(s domain.Student) StudentRow {
	return StudentRow{
		ID:          s.ID,
		Name:        s.Name,
		Initials:    s.Initials(),
		AvatarClass: render.AvatarClass(s.ID),
		Semester:    fmt.Sprintf("Sem %d", s.Semester),
		Courses:     s.Courses,
		Info:        s.Info(),
	}
}

func rosterStats(students []domain.Student) RosterStats {
	var courses []string
	semesters := make([]float64, 0, len(students))
	for _, s := range students {
		courses = append(courses, s.Courses...)
		semesters = append(semesters, float64(s.Semester))
	}

	avg := "0"
	if len(students) > 0 {
		avg = render.Fixed(render.Average(semesters), 1)
	}

	return RosterStats{
		Students:        len(students),
		DistinctCourses: len(render.Distinct(courses)),
		AverageSemester: avg,
		CountBadge:      render.Plural(len(students), "record", "records"),
	}
}
