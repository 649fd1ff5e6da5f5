package application

import (
	"context"

	"github.com/samber/lo"

	"github.com/davicafu/sortlab/internal/shared/infra/platform/query"
	sorting "github.com/davicafu/sortlab/internal/sorting/domain"
	taskDomain "github.com/davicafu/sortlab/internal/task/domain"
)

// TaskQuery es un listado de tareas que sabe pedirse ordenado al
// repositorio. Es inmutable: OrderBy devuelve otra TaskQuery.
type TaskQuery struct {
	repo   taskDomain.TaskRepository
	filter taskDomain.TaskFilter
	sort   query.Sort
	tasks  []*taskDomain.Task
}

var (
	_ sorting.Collection = (*TaskQuery)(nil)
	_ sorting.Orderer    = (*TaskQuery)(nil)
)

func (q *TaskQuery) Elements() []any {
	return lo.Map(q.tasks, func(t *taskDomain.Task, _ int) any { return t })
}

// OrderBy relanza la consulta con el orden de spec. Los errores del
// repositorio (campo inválido, orden no soportado) se devuelven tal cual.
func (q *TaskQuery) OrderBy(ctx context.Context, spec string) (sorting.Collection, error) {
	s := query.ParseSortSpec(spec)
	tasks, err := q.repo.List(ctx, q.filter, s)
	if err != nil {
		return nil, err
	}
	return &TaskQuery{repo: q.repo, filter: q.filter, sort: s, tasks: tasks}, nil
}

func (q *TaskQuery) Tasks() []*taskDomain.Task {
	return q.tasks
}

// Sort es el orden aplicado por el repositorio; vacío si no hubo.
func (q *TaskQuery) Sort() query.Sort {
	return q.sort
}

// TasksOf extrae las tareas de cualquier colección devuelta por el
// orquestador, ordenada en base de datos o en memoria.
func TasksOf(c sorting.Collection) []*taskDomain.Task {
	if c == nil {
		return nil
	}
	if q, ok := c.(*TaskQuery); ok {
		return q.tasks
	}
	return lo.FilterMap(c.Elements(), func(e any, _ int) (*taskDomain.Task, bool) {
		t, ok := e.(*taskDomain.Task)
		return t, ok
	})
}
