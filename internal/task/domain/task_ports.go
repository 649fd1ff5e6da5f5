package domain

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/davicafu/sortlab/internal/shared/infra/platform/query"
)

var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidTask        = errors.New("invalid task")
	ErrTaskCannotComplete = errors.New("task cannot be marked as completed")
)

// --- Repositorio de Tasks ---

// TaskRepository persiste tareas y sus responsables.
//
// List devuelve sorting.ErrInvalidField si el campo de orden no existe o está
// mal formado, y sorting.ErrOrderingUnsupported si el almacén no sabe
// ordenar. Sin orden, las tareas salen por fecha de creación.
type TaskRepository interface {
	SaveUser(ctx context.Context, u *User) error
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
	Create(ctx context.Context, t *Task) error
	Update(ctx context.Context, t *Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*Task, error)
	List(ctx context.Context, f TaskFilter, sort query.Sort) ([]*Task, error)
}

// ---------- Helpers comunes (cache keys, etc.) ----------

func TaskCacheKeyByID(id uuid.UUID) string {
	return fmt.Sprintf("task:id:%s", id.String())
}
