package sqlite

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davicafu/sortlab/internal/shared/infra/platform/query"
	sorting "github.com/davicafu/sortlab/internal/sorting/domain"
	"github.com/davicafu/sortlab/internal/task/domain"
)

func setupRepo(t *testing.T) *TaskRepoSQLite {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// cada conexión a :memory: es una base distinta
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, InitSQLite(db))
	return NewTaskRepoSQLite(db)
}

// seed crea tres tareas: "b" de Carla (1980), "c" sin responsable y "a" de
// Ana (2000), en ese orden de creación.
func seed(t *testing.T, repo *TaskRepoSQLite) map[string]*domain.Task {
	t.Helper()
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	ana := &domain.User{ID: uuid.New(), Email: "ana@example.com", Nombre: "Ana", BirthDate: time.Date(2000, 5, 1, 0, 0, 0, 0, time.UTC), CreatedAt: base}
	carla := &domain.User{ID: uuid.New(), Email: "carla@example.com", Nombre: "Carla", BirthDate: time.Date(1980, 5, 1, 0, 0, 0, 0, time.UTC), CreatedAt: base}
	require.NoError(t, repo.SaveUser(ctx, ana))
	require.NoError(t, repo.SaveUser(ctx, carla))

	tasks := map[string]*domain.Task{
		"b": {ID: uuid.New(), Title: "b", Status: domain.TaskPending, Assignee: carla, CreatedAt: base, UpdatedAt: base},
		"c": {ID: uuid.New(), Title: "c", Status: domain.TaskCompleted, CreatedAt: base.Add(time.Minute), UpdatedAt: base},
		"a": {ID: uuid.New(), Title: "a", Status: domain.TaskPending, Assignee: ana, CreatedAt: base.Add(2 * time.Minute), UpdatedAt: base},
	}
	for _, k := range []string{"b", "c", "a"} {
		require.NoError(t, repo.Create(ctx, tasks[k]))
	}
	return tasks
}

func titles(tasks []*domain.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Title)
	}
	return out
}

func TestTaskRepoSQLite_List(t *testing.T) {
	repo := setupRepo(t)
	seed(t, repo)

	tests := []struct {
		spec string
		want []string
	}{
		{"", []string{"b", "c", "a"}},
		{"title", []string{"a", "b", "c"}},
		{"-title", []string{"c", "b", "a"}},
		{"assignee__nombre", []string{"c", "a", "b"}},
		{"-assignee__nombre", []string{"b", "a", "c"}},
		{"assignee__age", []string{"c", "a", "b"}},
		{"-created_at", []string{"a", "c", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			tasks, err := repo.List(context.Background(), domain.TaskFilter{}, query.ParseSortSpec(tt.spec))
			require.NoError(t, err)
			assert.Equal(t, tt.want, titles(tasks))
		})
	}
}

func TestTaskRepoSQLite_ListRejectsUnknownField(t *testing.T) {
	repo := setupRepo(t)
	seed(t, repo)

	for _, field := range []string{"password", "title;DROP TABLE tasks", "complete"} {
		_, err := repo.List(context.Background(), domain.TaskFilter{}, query.Sort{Field: field})
		assert.ErrorIs(t, err, sorting.ErrInvalidField, field)
	}
}

func TestTaskRepoSQLite_ListFiltersByStatus(t *testing.T) {
	repo := setupRepo(t)
	seed(t, repo)

	tasks, err := repo.List(context.Background(), domain.TaskFilter{Status: domain.TaskPending}, query.Sort{Field: "title"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, titles(tasks))
}

func TestTaskRepoSQLite_GetAndUpdate(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)
	tasks := seed(t, repo)

	got, err := repo.GetByID(ctx, tasks["a"].ID)
	require.NoError(t, err)
	assert.Equal(t, "a", got.Title)
	require.NotNil(t, got.Assignee)
	assert.Equal(t, "Ana", got.Assignee.Nombre)
	assert.True(t, tasks["a"].CreatedAt.Equal(got.CreatedAt))

	orphan, err := repo.GetByID(ctx, tasks["c"].ID)
	require.NoError(t, err)
	assert.Nil(t, orphan.Assignee)

	got.Complete()
	require.NoError(t, repo.Update(ctx, got))
	again, err := repo.GetByID(ctx, got.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskCompleted, again.Status)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	assert.ErrorIs(t, repo.Update(ctx, &domain.Task{ID: uuid.New()}), domain.ErrTaskNotFound)
}

func TestTaskRepoSQLite_SaveUserUpserts(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)

	u := &domain.User{ID: uuid.New(), Email: "x@example.com", Nombre: "X", BirthDate: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, repo.SaveUser(ctx, u))

	u.Nombre = "Y"
	require.NoError(t, repo.SaveUser(ctx, u))

	got, err := repo.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Y", got.Nombre)

	_, err = repo.GetUser(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
