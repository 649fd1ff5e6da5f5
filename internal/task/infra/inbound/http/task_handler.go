package http

import (
	"embed"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	sharedUtils "github.com/davicafu/sortlab/internal/shared/infra/utils"
	sortingApp "github.com/davicafu/sortlab/internal/sorting/application"
	sorting "github.com/davicafu/sortlab/internal/sorting/domain"
	sortingHTTP "github.com/davicafu/sortlab/internal/sorting/infra/inbound/http"
	"github.com/davicafu/sortlab/internal/task/application"
	taskDomain "github.com/davicafu/sortlab/internal/task/domain"
	response "github.com/davicafu/sortlab/pkg/utils"
)

//go:embed templates/*.html
var templatesFS embed.FS

// TaskHandler encapsula los endpoints HTTP relacionados con Task.
type TaskHandler struct {
	service *application.TaskService
	sorter  *sortingApp.Sorter
	board   *sortingHTTP.Page
	log     *zap.Logger
}

// NewTaskHandler compila la plantilla del tablero; un error aquí es un
// error de la plantilla, no de la petición.
func NewTaskHandler(service *application.TaskService, sorter *sortingApp.Sorter, engine *sortingHTTP.Engine, log *zap.Logger) (*TaskHandler, error) {
	if log == nil {
		log = zap.NewNop()
	}
	board, err := engine.CompileFS(templatesFS, "templates/tasks.html")
	if err != nil {
		return nil, err
	}
	return &TaskHandler{service: service, sorter: sorter, board: board, log: log}, nil
}

// sortResponse describe el orden aplicado a un listado JSON.
type sortResponse struct {
	Field string               `json:"field"`
	Dir   sorting.Direction    `json:"dir"`
	State sortingApp.SortState `json:"state"`
}

// writeError traduce errores de dominio a respuestas HTTP.
func (h *TaskHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, taskDomain.ErrTaskNotFound):
		response.SendNotFound(c, "task not found")
	case errors.Is(err, taskDomain.ErrUserNotFound):
		response.SendNotFound(c, "user not found")
	case errors.Is(err, sorting.ErrNotFound):
		response.SendNotFound(c, "invalid field sorting")
	case errors.Is(err, taskDomain.ErrInvalidTask):
		response.SendBadRequest(c, err.Error())
	case errors.Is(err, taskDomain.ErrTaskCannotComplete):
		response.SendConflict(c, err.Error())
	default:
		h.log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		response.SendInternalServerError(c, "internal error")
	}
}

// filterFrom lee ?status; un valor desconocido es un error del cliente.
func filterFrom(c *gin.Context) (taskDomain.TaskFilter, bool) {
	raw := c.Query("status")
	if raw == "" {
		return taskDomain.TaskFilter{}, true
	}
	status, ok := taskDomain.ParseTaskStatus(raw)
	return taskDomain.TaskFilter{Status: status}, ok
}

// --- Tablero HTML ---

// Board endpoint GET /tasks
func (h *TaskHandler) Board(c *gin.Context) {
	f, ok := filterFrom(c)
	if !ok {
		response.SendText(c, http.StatusBadRequest, "unknown status")
		return
	}

	tasks, err := h.service.ListTasks(c.Request.Context(), f)
	if err != nil {
		h.log.Error("board listing failed", zap.Error(err))
		response.SendText(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	sortingHTTP.HTML(c, http.StatusOK, h.board, map[string]any{
		"tasks":    tasks,
		"statuses": []taskDomain.TaskStatus{taskDomain.TaskPending, taskDomain.TaskCompleted, taskDomain.TaskFailed},
	})
}

// --- API JSON ---

// ListTasks endpoint GET /api/tasks?sort=...&dir=...&status=...
func (h *TaskHandler) ListTasks(c *gin.Context) {
	f, ok := filterFrom(c)
	if !ok {
		response.SendBadRequest(c, "unknown status")
		return
	}

	tasks, err := h.service.ListTasks(c.Request.Context(), f)
	if err != nil {
		h.writeError(c, err)
		return
	}

	cfg := h.sorter.Config()
	state := sortingHTTP.StateFrom(c)
	sorted, sortState, err := h.sorter.Apply(c.Request.Context(), tasks, state.FieldSpec(cfg.DefaultDirection))
	if err != nil {
		h.writeError(c, err)
		return
	}

	list := application.TasksOf(sorted)
	response.SendSuccess(c, http.StatusOK, gin.H{
		"tasks":   sharedUtils.Ternary(list == nil, []*taskDomain.Task{}, list),
		"columns": sortingHTTP.Links(c, cfg, taskDomain.SortableColumns),
		"sort":    sortResponse{Field: state.Field, Dir: state.Dir, State: sortState},
	})
}

// GetTask endpoint GET /api/tasks/:id
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.SendBadRequest(c, "invalid task id")
		return
	}

	task, err := h.service.GetTask(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, task)
}

// CreateTask endpoint POST /api/tasks
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req struct {
		Title       string    `json:"title" binding:"required"`
		Description string    `json:"description"`
		AssigneeID  uuid.UUID `json:"assignee_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendBadRequest(c, err.Error())
		return
	}

	task, err := h.service.CreateTask(c.Request.Context(), req.Title, req.Description, req.AssigneeID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, task)
}

// CompleteTask endpoint POST /api/tasks/:id/complete
func (h *TaskHandler) CompleteTask(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.SendBadRequest(c, "invalid task id")
		return
	}

	task, err := h.service.CompleteTask(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, task)
}

// RegisterUser endpoint POST /api/users
func (h *TaskHandler) RegisterUser(c *gin.Context) {
	var req struct {
		Email     string `json:"email" binding:"required"`
		Nombre    string `json:"nombre" binding:"required"`
		BirthDate string `json:"birth_date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendBadRequest(c, err.Error())
		return
	}

	birth, err := time.Parse(time.DateOnly, req.BirthDate)
	if err != nil {
		response.SendBadRequest(c, "birth_date must be YYYY-MM-DD")
		return
	}

	u := &taskDomain.User{Email: req.Email, Nombre: req.Nombre, BirthDate: birth}
	if err := h.service.RegisterUser(c.Request.Context(), u); err != nil {
		h.writeError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, u)
}
