package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davicafu/sortlab/internal/shared/infra/platform/query"
	sorting "github.com/davicafu/sortlab/internal/sorting/domain"
	taskDomain "github.com/davicafu/sortlab/internal/task/domain"
)

func newStorage(t *testing.T) (*JSONTaskStorage, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.json")
	return NewJSONTaskStorage(path), path
}

func TestJSONTaskStorage_EmptyFile(t *testing.T) {
	s, path := newStorage(t)
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	tasks, err := s.List(context.Background(), taskDomain.TaskFilter{}, query.Sort{})
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestJSONTaskStorage_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	s, path := newStorage(t)

	ana := &taskDomain.User{ID: uuid.New(), Nombre: "Ana", BirthDate: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, s.SaveUser(ctx, ana))

	first := &taskDomain.Task{ID: uuid.New(), Title: "b", Status: taskDomain.TaskPending, Assignee: ana}
	second := &taskDomain.Task{ID: uuid.New(), Title: "a", Status: taskDomain.TaskCompleted}
	require.NoError(t, s.Create(ctx, first))
	require.NoError(t, s.Create(ctx, second))
	assert.ErrorIs(t, s.Create(ctx, first), taskDomain.ErrInvalidTask)

	// El responsable renombrado se refleja en las tareas al releer.
	ana.Nombre = "Ana María"
	require.NoError(t, s.SaveUser(ctx, ana))

	reopened := NewJSONTaskStorage(path)
	got, err := reopened.GetByID(ctx, first.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Assignee)
	assert.Equal(t, "Ana María", got.Assignee.Nombre)

	tasks, err := reopened.List(ctx, taskDomain.TaskFilter{}, query.Sort{})
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "b", tasks[0].Title)
	assert.Equal(t, "a", tasks[1].Title)

	done, err := reopened.List(ctx, taskDomain.TaskFilter{Status: taskDomain.TaskCompleted}, query.Sort{})
	require.NoError(t, err)
	require.Len(t, done, 1)
	assert.Equal(t, second.ID, done[0].ID)
}

func TestJSONTaskStorage_UpdateAndNotFound(t *testing.T) {
	ctx := context.Background()
	s, _ := newStorage(t)

	task := &taskDomain.Task{ID: uuid.New(), Title: "x", Status: taskDomain.TaskPending}
	assert.ErrorIs(t, s.Update(ctx, task), taskDomain.ErrTaskNotFound)

	require.NoError(t, s.Create(ctx, task))
	task.Complete()
	require.NoError(t, s.Update(ctx, task))

	got, err := s.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, taskDomain.TaskCompleted, got.Status)

	_, err = s.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, taskDomain.ErrTaskNotFound)
	_, err = s.GetUser(ctx, uuid.New())
	assert.ErrorIs(t, err, taskDomain.ErrUserNotFound)
}

func TestJSONTaskStorage_SortIsUnsupported(t *testing.T) {
	s, _ := newStorage(t)
	_, err := s.List(context.Background(), taskDomain.TaskFilter{}, query.Sort{Field: "title", Desc: true})
	assert.ErrorIs(t, err, sorting.ErrOrderingUnsupported)
}
