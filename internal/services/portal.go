package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"labkit/internal/domain"
	"labkit/internal/errors"
	"labkit/internal/fetch"
	"labkit/internal/logging"
	"labkit/internal/render"
	"labkit/internal/repository/sqlite"
	"labkit/internal/store"
	"labkit/internal/validation"
)

// SaveStatus is the persistence state shown by the portal.
type SaveStatus string

const (
	StatusUnsaved SaveStatus = "Unsaved"
	StatusSaved   SaveStatus = "Saved"
	StatusFailed  SaveStatus = "Failed"
)

// Defaults of the simulated portal save.
const (
	DefaultSaveDelay       = 1800 * time.Millisecond
	DefaultSaveFailureRate = 0.1
	saveFailureMessage     = "Server timeout — please try again."
)

// EnrolleeInput is the raw add-student form of the portal.
type EnrolleeInput struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// EnrolleeRow is one rendered portal student.
type EnrolleeRow struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Initial   string `json:"initial"`
	Meta      string `json:"meta"`
	CreatedAt string `json:"createdAt"`
}

// PortalView is the rendered portal dashboard.
type PortalView struct {
	Students render.View[EnrolleeRow, int] `json:"students"`
	Courses  render.View[string, int]      `json:"courses"`
	Status   SaveStatus                    `json:"status"`
}

// SaveReceipt describes a successful save.
type SaveReceipt struct {
	SnapshotID string    `json:"snapshotId"`
	Students   int       `json:"students"`
	Courses    int       `json:"courses"`
	SavedAt    time.Time `json:"savedAt"`
	Notice     string    `json:"notice"`
}

var (
	enrolleeSeed = []EnrolleeInput{
		{ID: "STU001", Name: "Abdullah Fawad", Email: "abdullahfawad.dev@gmail.com"},
		{ID: "STU002", Name: "Ali Ahmed", Email: "ali@university.edu"},
		{ID: "STU003", Name: "Sara Khan", Email: "sara@university.edu"},
	}
	portalCourseSeed = []string{"Web Development", "Data Structures", "Machine Learning", "Operating Systems"}
)

// Portal is the mini university portal: students by id, a course set, and a
// simulated save that writes snapshots to the repository.
type Portal struct {
	enrollees *store.Store[string, domain.Enrollee]
	courses   *store.Store[string, string]
	saver     *fetch.Simulator[domain.PortalSnapshot]
	repo      sqlite.Repository
	mapper    *domain.SnapshotMapper

	mu     sync.Mutex
	status SaveStatus
}

// NewPortal creates a seeded portal. repo may be nil, in which case saves are
// simulated but not persisted. opts tune the save latency and failure rate.
func NewPortal(repo sqlite.Repository, opts ...fetch.Option) *Portal {
	p := &Portal{
		enrollees: store.New("student",
			func(e domain.Enrollee) string { return e.ID },
			store.WithValidator[string](validateRecord[domain.Enrollee]),
			store.WithDuplicateMessage[string, domain.Enrollee]("Student ID already exists"),
		),
		courses: store.New("course",
			func(name string) string { return name },
			store.WithDuplicateMessage[string, string]("Course already registered"),
		),
		repo:   repo,
		mapper: domain.NewSnapshotMapper(),
		status: StatusUnsaved,
	}

	defaults := []fetch.Option{
		fetch.WithDelay(DefaultSaveDelay, DefaultSaveDelay),
		fetch.WithFailureRate(DefaultSaveFailureRate),
	}
	p.saver = fetch.NewSimulator("save portal", p.snapshot, saveFailureMessage, append(defaults, opts...)...)

	now := p.saver.Clock().Now()
	for _, in := range enrolleeSeed {
		if _, err := p.enrollees.Add(domain.Enrollee{ID: in.ID, Name: in.Name, Email: in.Email, CreatedAt: now}); err != nil {
			panic(fmt.Sprintf("portal seed %s: %v", in.ID, err))
		}
	}
	for _, name := range portalCourseSeed {
		if _, err := p.courses.Add(name); err != nil {
			panic(fmt.Sprintf("portal seed %q: %v", name, err))
		}
	}
	return p
}

func (p *Portal) markUnsaved() {
	p.setStatus(StatusUnsaved)
}

func (p *Portal) setStatus(s SaveStatus) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.status = s
}

// Status returns the current save status.
func (p *Portal) Status() SaveStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

// AddStudent validates and enrolls a student under a unique id.
func (p *Portal) AddStudent(in EnrolleeInput) (Change[domain.Enrollee], error) {
	err := validation.Check(
		validation.Field{Name: "id", Value: in.ID, Rules: []validation.Rule{
			validation.Required("Student ID is required."),
		}},
		validation.Field{Name: "name", Value: in.Name, Rules: []validation.Rule{
			validation.Required("Name is required."),
		}},
		validation.Field{Name: "email", Value: in.Email, Rules: []validation.Rule{
			validation.Required("Email is required."),
			validation.Contains("@", "Email must contain an @ symbol."),
		}},
	)
	if err != nil {
		return Change[domain.Enrollee]{}, validationFailure(err)
	}

	added, err := p.enrollees.Add(domain.Enrollee{
		ID:        strings.TrimSpace(in.ID),
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.TrimSpace(in.Email),
		CreatedAt: p.saver.Clock().Now(),
	})
	if err != nil {
		return Change[domain.Enrollee]{}, err
	}
	p.markUnsaved()
	return Change[domain.Enrollee]{Record: added, Notice: added.Name + " added successfully"}, nil
}

// RemoveStudent drops student id.
func (p *Portal) RemoveStudent(id string) (Change[domain.Enrollee], bool) {
	e, ok := p.enrollees.Get(id)
	if !ok || !p.enrollees.Remove(id) {
		return Change[domain.Enrollee]{}, false
	}
	p.markUnsaved()
	return Change[domain.Enrollee]{Record: e, Notice: e.Name + " removed"}, true
}

// RegisterCourse adds a course name to the set.
func (p *Portal) RegisterCourse(name string) (Change[string], error) {
	if err := validation.Check(validation.Field{Name: "course", Value: name, Rules: []validation.Rule{
		validation.Required("Please enter a course name."),
	}}); err != nil {
		return Change[string]{}, validationFailure(err)
	}
	added, err := p.courses.Add(strings.TrimSpace(name))
	if err != nil {
		return Change[string]{}, err
	}
	p.markUnsaved()
	return Change[string]{Record: added, Notice: fmt.Sprintf("\"%s\" registered", added)}, nil
}

// RemoveCourse drops a course name.
func (p *Portal) RemoveCourse(name string) (Change[string], bool) {
	if !p.courses.Remove(name) {
		return Change[string]{}, false
	}
	p.markUnsaved()
	return Change[string]{Record: name, Notice: fmt.Sprintf("\"%s\" removed", name)}, true
}

// SetFailing forces subsequent saves to fail.
func (p *Portal) SetFailing(fail bool) {
	p.saver.SetFailing(fail)
}

// snapshot captures the portal as it is when the simulated save completes.
func (p *Portal) snapshot() domain.PortalSnapshot {
	return domain.PortalSnapshot{
		ID:        uuid.NewString(),
		SavedAt:   p.saver.Clock().Now(),
		Enrollees: p.enrollees.All(),
		Courses:   p.courses.All(),
	}
}

// Save runs the simulated save and, when it succeeds, stores the snapshot.
// The status ends as Saved or Failed.
func (p *Portal) Save(ctx context.Context) (*SaveReceipt, error) {
	snap, err := p.saver.Fetch(ctx).Await(ctx)
	if err == nil {
		err = p.persist(ctx, snap)
	}
	if err != nil {
		p.setStatus(StatusFailed)
		logging.Debugf("portal: save failed: %v\n", err)
		return nil, err
	}

	p.setStatus(StatusSaved)
	return &SaveReceipt{
		SnapshotID: snap.ID,
		Students:   len(snap.Enrollees),
		Courses:    len(snap.Courses),
		SavedAt:    snap.SavedAt,
		Notice:     fmt.Sprintf("Saved %d students & %d courses", len(snap.Enrollees), len(snap.Courses)),
	}, nil
}

func (p *Portal) persist(ctx context.Context, snap domain.PortalSnapshot) error {
	if p.repo == nil {
		return nil
	}
	row, err := p.mapper.ToDatabase(snap)
	if err != nil {
		return errors.WrapError(err, errors.ErrorTypeInvalidInput, "failed to encode snapshot")
	}
	return p.repo.CreateSnapshot(ctx, &row)
}

// History lists persisted snapshots, oldest first.
func (p *Portal) History(ctx context.Context) ([]domain.PortalSnapshot, error) {
	if p.repo == nil {
		return nil, nil
	}
	rows, err := p.repo.ListSnapshots(ctx)
	if err != nil {
		return nil, err
	}
	return p.mapper.FromDatabaseSlice(rows)
}

// View renders both lists and the save status.
func (p *Portal) View() PortalView {
	return PortalView{
		Students: render.Project(p.enrollees.All(), render.All[domain.Enrollee](),
			func(e domain.Enrollee) EnrolleeRow {
				return EnrolleeRow{
					ID:        e.ID,
					Name:      e.Name,
					Email:     e.Email,
					Initial:   e.Initial(),
					Meta:      e.ID + " · " + e.Email,
					CreatedAt: e.CreatedAt.Local().Format(time.DateTime),
				}
			},
			func(all []domain.Enrollee) int { return len(all) },
		),
		Courses: render.Project(p.courses.All(), render.All[string](),
			func(name string) string { return name },
			func(all []string) int { return len(all) },
		),
		Status: p.Status(),
	}
}
