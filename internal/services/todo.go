package services

import (
	"strconv"

	"labkit/internal/domain"
	"labkit/internal/render"
	"labkit/internal/store"
	"labkit/internal/validation"
)

// TodoStats summarises the whole list.
type TodoStats struct {
	Total     int    `json:"total"`
	Done      int    `json:"done"`
	CountText string `json:"countText"`
}

// TodoView is the rendered to-do list.
type TodoView = render.View[domain.Task, TodoStats]

// TodoList is the to-do exercise.
type TodoList struct {
	tasks *store.Store[int64, domain.Task]
}

// NewTodoList creates an empty list.
func NewTodoList() *TodoList {
	return &TodoList{
		tasks: store.New("task",
			func(t domain.Task) int64 { return t.ID },
			store.WithSequence[int64](func(t domain.Task, id int64) domain.Task {
				t.ID = id
				return t
			}),
			store.WithValidator[int64](validateRecord[domain.Task]),
		),
	}
}

// Add appends an open task. Blank text is rejected.
func (l *TodoList) Add(text string) (domain.Task, error) {
	if err := validation.ValidateTaskText(text); err != nil {
		return domain.Task{}, validationFailure(err)
	}
	return l.tasks.Add(domain.NewTask(text))
}

// Toggle flips the completed flag of task id.
func (l *TodoList) Toggle(id int64) (domain.Task, error) {
	return l.tasks.Toggle(id, func(t domain.Task) domain.Task {
		t.Completed = !t.Completed
		return t
	})
}

// Remove deletes task id; removing a missing task does nothing.
func (l *TodoList) Remove(id int64) bool {
	return l.tasks.Remove(id)
}

// Reset empties the list and restarts ids at 1.
func (l *TodoList) Reset() {
	l.tasks.Reset()
}

// View renders every task.
func (l *TodoList) View() TodoView {
	return render.Project(l.tasks.All(), render.All[domain.Task](),
		func(t domain.Task) domain.Task { return t },
		todoStats,
	)
}

func todoStats(tasks []domain.Task) TodoStats {
	done := 0
	for _, t := range tasks {
		if t.Completed {
			done++
		}
	}
	return TodoStats{
		Total:     len(tasks),
		Done:      done,
		CountText: TodoCountText(len(tasks), done),
	}
}

// TodoCountText is "N task(s)" followed by " · M done" when anything is done.
func TodoCountText(total, done int) string {
	text := render.Plural(total, "task", "tasks")
	if done > 0 {
		text += " · " + strconv.Itoa(done) + " done"
	}
	return text
}
