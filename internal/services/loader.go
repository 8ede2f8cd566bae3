package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"labkit/internal/domain"
	"labkit/internal/errors"
	"labkit/internal/fetch"
	"labkit/internal/render"
)

// LoadState is the state of the user directory fetch.
type LoadState string

const (
	StateIdle    LoadState = "idle"
	StateLoading LoadState = "loading"
	StateSuccess LoadState = "success"
	StateFailed  LoadState = "failed"
)

// Default latency bounds of the user directory fetch.
const (
	DefaultFetchMinDelay = 1500 * time.Millisecond
	DefaultFetchMaxDelay = 3000 * time.Millisecond
	fetchFailureMessage  = "Network Error: Unable to reach the server. Please check your connection and try again."
)

var directoryUsers = []domain.User{
	{ID: 1, Name: "Ahmed Hassan", Role: "Administrator", Email: "ahmed@university.edu", Status: "active"},
	{ID: 2, Name: "Fatima Noor", Role: "Editor", Email: "fatima@university.edu", Status: "active"},
	{ID: 3, Name: "Bilal Iqbal", Role: "Moderator", Email: "bilal@university.edu", Status: "pending"},
	{ID: 4, Name: "Zainab Malik", Role: "Contributor", Email: "zainab@university.edu", Status: "active"},
	{ID: 5, Name: "Omar Farooq", Role: "Viewer", Email: "omar@university.edu", Status: "inactive"},
	{ID: 6, Name: "Abdullah Fawad", Role: "Developer", Email: "abdullahfawad.dev@gmail.com", Status: "active"},
	{ID: 7, Name: "Hira Siddiqui", Role: "Designer", Email: "hira@university.edu", Status: "active"},
	{ID: 8, Name: "Kamran Ali", Role: "Analyst", Email: "kamran@university.edu", Status: "pending"},
}

// UserRow is one rendered directory entry.
type UserRow struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Initials    string `json:"initials"`
	AvatarClass string `json:"avatarClass"`
	Role        string `json:"role"`
	Email       string `json:"email"`
	Status      string `json:"status"`
	StatusLabel string `json:"statusLabel"`
}

// LoaderView is the rendered state of the loader.
type LoaderView struct {
	State       LoadState `json:"state"`
	Rows        []UserRow `json:"rows"`
	UserCount   int       `json:"userCount"`
	RecordBadge string    `json:"recordBadge"`
	FetchStatus string    `json:"fetchStatus"`
	Elapsed     string    `json:"elapsed,omitempty"`
	Error       string    `json:"error,omitempty"`
	Notice      string    `json:"notice,omitempty"`
	CanRetry    bool      `json:"canRetry"`
}

// Loader fetches the user directory through a simulated slow call.
// Overlapping loads are not cancelled; whichever finishes last sets the view.
type Loader struct {
	sim *fetch.Simulator[[]domain.User]

	mu       sync.Mutex
	state    LoadState
	users    []domain.User
	err      error
	elapsed  time.Duration
	observer func(LoaderView)
}

// NewLoader creates an idle loader. Latency defaults to [1.5s, 3s].
func NewLoader(opts ...fetch.Option) *Loader {
	defaults := []fetch.Option{fetch.WithDelay(DefaultFetchMinDelay, DefaultFetchMaxDelay)}
	return &Loader{
		sim: fetch.NewSimulator("fetch users", func() []domain.User {
			users := make([]domain.User, len(directoryUsers))
			copy(users, directoryUsers)
			return users
		}, fetchFailureMessage, append(defaults, opts...)...),
		state: StateIdle,
	}
}

// SetObserver registers fn to receive every state transition.
func (l *Loader) SetObserver(fn func(LoaderView)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.observer = fn
}

// SetFailing forces subsequent fetches to fail.
func (l *Loader) SetFailing(fail bool) {
	l.sim.SetFailing(fail)
}

// Failing reports whether fetches are forced to fail.
func (l *Loader) Failing() bool {
	return l.sim.Failing()
}

// Load runs one fetch and blocks until it settles. Elapsed time is measured
// for both outcomes.
func (l *Loader) Load(ctx context.Context) (LoaderView, error) {
	clock := l.sim.Clock()
	l.transition(func() {
		l.state = StateLoading
		l.err = nil
	})

	start := clock.Now()
	users, err := l.sim.Fetch(ctx).Await(ctx)
	elapsed := clock.Now().Sub(start)

	view := l.transition(func() {
		l.elapsed = elapsed
		if err != nil {
			l.state = StateFailed
			l.users = nil
			l.err = err
			return
		}
		l.state = StateSuccess
		l.users = users
	})
	return view, err
}

// Start runs Load in the background.
func (l *Loader) Start(ctx context.Context) *fetch.Future[LoaderView] {
	return fetch.Go(ctx, l.Load)
}

// Retry clears the failure flag and loads again from scratch.
func (l *Loader) Retry(ctx context.Context) (LoaderView, error) {
	l.SetFailing(false)
	return l.Load(ctx)
}

// View renders the current state.
func (l *Loader) View() LoaderView {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.viewLocked()
}

func (l *Loader) transition(apply func()) LoaderView {
	l.mu.Lock()
	apply()
	view := l.viewLocked()
	observer := l.observer
	l.mu.Unlock()

	if observer != nil {
		observer(view)
	}
	return view
}

func (l *Loader) viewLocked() LoaderView {
	view := LoaderView{State: l.state}
	switch l.state {
	case StateIdle:
		view.FetchStatus = "Idle"
	case StateLoading:
		view.FetchStatus = "Loading..."
		view.RecordBadge = "Loading..."
	case StateSuccess:
		view.FetchStatus = "Success"
		view.Elapsed = render.Seconds(l.elapsed)
		view.UserCount = len(l.users)
		view.RecordBadge = render.Plural(len(l.users), "record", "records")
		view.Notice = fmt.Sprintf("Loaded %d users in %s", len(l.users), view.Elapsed)
		for _, u := range l.users {
			view.Rows = append(view.Rows, UserRow{
				ID:          u.ID,
				Name:        u.Name,
				Initials:    u.Initials(),
				AvatarClass: render.AvatarClass(u.ID),
				Role:        u.Role,
				Email:       u.Email,
				Status:      u.Status,
				StatusLabel: capitalize(u.Status),
			})
		}
	case StateFailed:
		view.FetchStatus = "Failed"
		view.Elapsed = render.Seconds(l.elapsed)
		view.RecordBadge = "Error"
		view.Error = errors.GetUserMessage(l.err)
		view.Notice = "Failed to load data"
		view.CanRetry = true
	}
	return view
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
