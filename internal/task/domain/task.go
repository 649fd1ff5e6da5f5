package domain

import (
	"time"

	"github.com/google/uuid"

	sorting "github.com/davicafu/sortlab/internal/sorting/domain"
)

type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskCompleted TaskStatus = "completed"
	TaskFailed    TaskStatus = "failed"
)

// ParseTaskStatus valida un estado recibido desde fuera.
func ParseTaskStatus(raw string) (TaskStatus, bool) {
	switch s := TaskStatus(raw); s {
	case TaskPending, TaskCompleted, TaskFailed:
		return s, true
	}
	return "", false
}

type Task struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	Assignee    *User      `json:"assignee,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// AssigneeID devuelve el id del responsable o uuid.Nil.
func (t *Task) AssigneeID() uuid.UUID {
	if t.Assignee == nil {
		return uuid.Nil
	}
	return t.Assignee.ID
}

// --- Métodos de dominio ---
func (t *Task) Complete() {
	t.Status = TaskCompleted
	t.UpdatedAt = time.Now()
}

func (t *Task) Fail() {
	t.Status = TaskFailed
	t.UpdatedAt = time.Now()
}

func (t *Task) Update(title, description string) {
	t.Title = title
	t.Description = description
	t.UpdatedAt = time.Now()
}

// Member expone la tarea al resolver de paths ("assignee__nombre").
// complete y fail alteran datos: el resolver nunca los invoca.
func (t *Task) Member(name string) (sorting.Member, bool) {
	switch name {
	case "id":
		return sorting.Field(t.ID), true
	case "title":
		return sorting.Field(t.Title), true
	case "description":
		return sorting.Field(t.Description), true
	case "status":
		return sorting.Field(string(t.Status)), true
	case "assignee":
		if t.Assignee == nil {
			return sorting.Field(nil), true
		}
		return sorting.Field(t.Assignee), true
	case "created_at":
		return sorting.Field(t.CreatedAt), true
	case "updated_at":
		return sorting.Field(t.UpdatedAt), true
	case "complete":
		return sorting.MutatingMethod(t.Complete), true
	case "fail":
		return sorting.MutatingMethod(t.Fail), true
	}
	return sorting.Member{}, false
}

var _ sorting.MemberAccessor = (*Task)(nil)
