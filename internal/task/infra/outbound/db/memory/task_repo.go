package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/davicafu/sortlab/internal/shared/infra/platform/query"
	sorting "github.com/davicafu/sortlab/internal/sorting/domain"
	"github.com/davicafu/sortlab/internal/task/domain"
)

// TaskRepoMemory guarda tareas en un mapa. No sabe ordenar: cualquier orden
// pedido devuelve sorting.ErrOrderingUnsupported y el orquestador ordena en
// memoria.
type TaskRepoMemory struct {
	mu    sync.RWMutex
	tasks map[uuid.UUID]*domain.Task
	users map[uuid.UUID]*domain.User
	order []uuid.UUID // orden de inserción
}

var _ domain.TaskRepository = (*TaskRepoMemory)(nil)

func NewTaskRepoMemory() *TaskRepoMemory {
	return &TaskRepoMemory{
		tasks: make(map[uuid.UUID]*domain.Task),
		users: make(map[uuid.UUID]*domain.User),
	}
}

// Las copias evitan que un llamador modifique el estado guardado.
func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

func (r *TaskRepoMemory) cloneTask(t *domain.Task) *domain.Task {
	c := *t
	if t.Assignee != nil {
		if u, ok := r.users[t.Assignee.ID]; ok {
			c.Assignee = cloneUser(u)
		} else {
			c.Assignee = cloneUser(t.Assignee)
		}
	}
	return &c
}

func (r *TaskRepoMemory) SaveUser(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = cloneUser(u)
	return nil
}

func (r *TaskRepoMemory) GetUser(_ context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *TaskRepoMemory) Create(_ context.Context, t *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[t.ID]; ok {
		return domain.ErrInvalidTask
	}
	r.tasks[t.ID] = r.cloneTask(t)
	r.order = append(r.order, t.ID)
	return nil
}

func (r *TaskRepoMemory) Update(_ context.Context, t *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[t.ID]; !ok {
		return domain.ErrTaskNotFound
	}
	r.tasks[t.ID] = r.cloneTask(t)
	return nil
}

func (r *TaskRepoMemory) GetByID(_ context.Context, id uuid.UUID) (*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return r.cloneTask(t), nil
}

// List devuelve las tareas en orden de inserción.
func (r *TaskRepoMemory) List(_ context.Context, f domain.TaskFilter, s query.Sort) ([]*domain.Task, error) {
	if !s.IsZero() {
		return nil, sorting.ErrOrderingUnsupported
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Task, 0, len(r.order))
	for _, id := range r.order {
		t := r.tasks[id]
		if f.Matches(t) {
			out = append(out, r.cloneTask(t))
		}
	}
	return out, nil
}
