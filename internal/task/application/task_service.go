package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	sharedCache "github.com/davicafu/sortlab/internal/shared/infra/platform/cache"
	"github.com/davicafu/sortlab/internal/shared/infra/platform/query"
	sharedUtils "github.com/davicafu/sortlab/internal/shared/infra/utils"
	taskDomain "github.com/davicafu/sortlab/internal/task/domain"
)

const cacheTTLSecs = 120

// TaskService define los casos de uso relacionados con Task.
type TaskService struct {
	repo  taskDomain.TaskRepository
	cache sharedCache.Cache
	log   *zap.Logger
}

// NewTaskService es el constructor para el servicio de tareas. cache puede
// ser nil.
func NewTaskService(repo taskDomain.TaskRepository, cache sharedCache.Cache, log *zap.Logger) *TaskService {
	if log == nil {
		log = zap.NewNop()
	}
	return &TaskService{repo: repo, cache: cache, log: log}
}

// ---------- Comandos ----------

// CreateTask crea una tarea pendiente. Con assigneeID distinto de uuid.Nil
// el usuario debe existir.
func (s *TaskService) CreateTask(ctx context.Context, title, description string, assigneeID uuid.UUID) (*taskDomain.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", taskDomain.ErrInvalidTask)
	}

	now := time.Now().UTC()
	task := &taskDomain.Task{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Status:      taskDomain.TaskPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if assigneeID != uuid.Nil {
		u, err := s.repo.GetUser(ctx, assigneeID)
		if err != nil {
			return nil, err
		}
		task.Assignee = u
	}

	if err := s.repo.Create(ctx, task); err != nil {
		s.log.Error("Failed to create task", zap.Error(err))
		return nil, err
	}

	sharedCache.AsyncCacheSet(ctx, s.cache, taskDomain.TaskCacheKeyByID(task.ID), task, cacheTTLSecs, s.log)
	return task, nil
}

// CompleteTask marca la tarea como completada. Una tarea fallida no puede
// completarse.
func (s *TaskService) CompleteTask(ctx context.Context, id uuid.UUID) (*taskDomain.Task, error) {
	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.Status == taskDomain.TaskFailed {
		return nil, taskDomain.ErrTaskCannotComplete
	}

	task.Complete()
	if err := s.repo.Update(ctx, task); err != nil {
		s.log.Error("Failed to complete task", zap.String("task_id", id.String()), zap.Error(err))
		return nil, err
	}

	sharedCache.AsyncCacheSet(ctx, s.cache, taskDomain.TaskCacheKeyByID(task.ID), task, cacheTTLSecs, s.log)
	return task, nil
}

// RegisterUser da de alta (o actualiza) un posible responsable.
func (s *TaskService) RegisterUser(ctx context.Context, u *taskDomain.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	return s.repo.SaveUser(ctx, u)
}

// ---------- Consultas ----------

// GetTask obtiene una tarea, usando el patrón cache-aside con reintentos.
func (s *TaskService) GetTask(ctx context.Context, id uuid.UUID) (*taskDomain.Task, error) {
	// 1. Intentar obtener de la caché
	if s.cache != nil {
		var t taskDomain.Task
		if hit, _ := s.cache.Get(ctx, taskDomain.TaskCacheKeyByID(id), &t); hit {
			return &t, nil
		}
	}

	// 2. Si es 'miss', ir al repositorio con reintentos
	var task *taskDomain.Task
	err := sharedUtils.Retry(ctx, 3, 100*time.Millisecond, func() error {
		var errRetry error
		task, errRetry = s.repo.GetByID(ctx, id)
		return errRetry
	}, taskDomain.ErrTaskNotFound)

	if err != nil {
		if errors.Is(err, taskDomain.ErrTaskNotFound) {
			s.log.Warn("Task not found", zap.String("task_id", id.String()))
		} else {
			s.log.Error("Failed to fetch task", zap.String("task_id", id.String()), zap.Error(err))
		}
		return nil, err
	}

	// 3. Actualizar caché en segundo plano para la próxima vez
	sharedCache.AsyncCacheSet(ctx, s.cache, taskDomain.TaskCacheKeyByID(task.ID), task, cacheTTLSecs, s.log)
	return task, nil
}

// ListTasks carga las tareas sin ordenar y devuelve una colección que el
// orquestador de orden puede reordenar, en la base de datos si el almacén
// lo soporta.
func (s *TaskService) ListTasks(ctx context.Context, f taskDomain.TaskFilter) (*TaskQuery, error) {
	tasks, err := s.repo.List(ctx, f, query.Sort{})
	if err != nil {
		s.log.Error("Failed to list tasks", zap.Error(err))
		return nil, err
	}
	return &TaskQuery{repo: s.repo, filter: f, tasks: tasks}, nil
}
