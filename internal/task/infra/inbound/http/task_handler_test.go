package http

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	sortingApp "github.com/davicafu/sortlab/internal/sorting/application"
	sorting "github.com/davicafu/sortlab/internal/sorting/domain"
	sortingHTTP "github.com/davicafu/sortlab/internal/sorting/infra/inbound/http"
	"github.com/davicafu/sortlab/internal/task/application"
	taskDomain "github.com/davicafu/sortlab/internal/task/domain"
	"github.com/davicafu/sortlab/internal/task/infra/outbound/db/memory"
	"github.com/davicafu/sortlab/internal/task/infra/outbound/db/sqlite"
)

type listBody struct {
	Data struct {
		Tasks []struct {
			Title string `json:"title"`
		} `json:"tasks"`
		Columns []sorting.SortLink `json:"columns"`
		Sort    struct {
			Field string `json:"field"`
			Dir   string `json:"dir"`
			State string `json:"state"`
		} `json:"sort"`
	} `json:"data"`
}

func setupRouter(t *testing.T, repo taskDomain.TaskRepository, cfg sorting.Config) (*gin.Engine, *application.TaskService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := zap.NewNop()
	service := application.NewTaskService(repo, nil, log)
	sorter := sortingApp.NewSorter(cfg, log, nil)
	handler, err := NewTaskHandler(service, sorter, sortingHTTP.NewEngine(sorter, log), log)
	require.NoError(t, err)

	r := gin.New()
	r.Use(sortingHTTP.Sorting(log))
	RegisterTaskRoutes(r, handler)
	return r, service
}

func seedTitles(t *testing.T, s *application.TaskService, titles ...string) []*taskDomain.Task {
	t.Helper()
	var out []*taskDomain.Task
	for _, title := range titles {
		tk, err := s.CreateTask(context.Background(), title, "", uuid.Nil)
		require.NoError(t, err)
		out = append(out, tk)
		time.Sleep(2 * time.Millisecond)
	}
	return out
}

func do(r *gin.Engine, method, target string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) listBody {
	t.Helper()
	var body listBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func taskTitles(b listBody) []string {
	var out []string
	for _, tk := range b.Data.Tasks {
		out = append(out, tk.Title)
	}
	return out
}

func TestListTasks_MemoryStoreSortsInMemory(t *testing.T) {
	r, service := setupRouter(t, memory.NewTaskRepoMemory(), sorting.DefaultConfig())
	seedTitles(t, service, "b", "c", "a")

	w := do(r, http.MethodGet, "/api/tasks?page=2&sort=title&dir=asc", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeList(t, w)
	assert.Equal(t, []string{"a", "b", "c"}, taskTitles(body))
	assert.Equal(t, "title", body.Data.Sort.Field)
	assert.Equal(t, "asc", body.Data.Sort.Dir)
	assert.Equal(t, string(sortingApp.StateFallbackOrdered), body.Data.Sort.State)

	require.Len(t, body.Data.Columns, len(taskDomain.SortableColumns))
	title := body.Data.Columns[0]
	assert.Equal(t, "/api/tasks?sort=title&page=2&dir=desc", title.URL)
	assert.Equal(t, "&uarr;", title.Icon)
	assert.Equal(t, "Título &uarr;", title.Label)

	status := body.Data.Columns[1]
	assert.Equal(t, "/api/tasks?sort=status&page=2", status.URL)
	assert.Empty(t, status.Icon)
}

func TestListTasks_DefaultDirectionIsDescending(t *testing.T) {
	r, service := setupRouter(t, memory.NewTaskRepoMemory(), sorting.DefaultConfig())
	seedTitles(t, service, "b", "c", "a")

	body := decodeList(t, do(r, http.MethodGet, "/api/tasks?sort=title", nil))
	assert.Equal(t, []string{"c", "b", "a"}, taskTitles(body))

	body = decodeList(t, do(r, http.MethodGet, "/api/tasks", nil))
	assert.Equal(t, []string{"b", "c", "a"}, taskTitles(body))
	assert.Equal(t, string(sortingApp.StateUnsorted), body.Data.Sort.State)
}

func sqliteRepo(t *testing.T) *sqlite.TaskRepoSQLite {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, sqlite.InitSQLite(db))
	return sqlite.NewTaskRepoSQLite(db)
}

func TestListTasks_SQLiteNativeAndInvalidField(t *testing.T) {
	cfg := sorting.DefaultConfig()
	cfg.InvalidFieldRaises404 = true
	r, service := setupRouter(t, sqliteRepo(t), cfg)
	seedTitles(t, service, "b", "c", "a")

	body := decodeList(t, do(r, http.MethodGet, "/api/tasks?sort=title&dir=desc", nil))
	assert.Equal(t, []string{"c", "b", "a"}, taskTitles(body))
	assert.Equal(t, string(sortingApp.StateNativeOrdered), body.Data.Sort.State)

	w := do(r, http.MethodGet, "/api/tasks?sort=password&dir=asc", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListTasks_InvalidFieldIgnoredByDefault(t *testing.T) {
	r, service := setupRouter(t, sqliteRepo(t), sorting.DefaultConfig())
	seedTitles(t, service, "b", "c", "a")

	w := do(r, http.MethodGet, "/api/tasks?sort=password&dir=asc", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"b", "c", "a"}, taskTitles(decodeList(t, w)))
}

func TestListTasks_UnknownStatus(t *testing.T) {
	r, _ := setupRouter(t, memory.NewTaskRepoMemory(), sorting.DefaultConfig())

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/api/tasks?status=archived", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/tasks?status=archived", nil).Code)
}

func TestBoard_RendersSortedTableWithAnchors(t *testing.T) {
	r, service := setupRouter(t, memory.NewTaskRepoMemory(), sorting.DefaultConfig())
	seedTitles(t, service, "tarea-b", "tarea-c", "tarea-a")

	w := do(r, http.MethodGet, "/tasks?status=pending&sort=title&dir=asc", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")

	html := w.Body.String()
	assert.Contains(t, html, `href="/tasks?sort=title&amp;status=pending&amp;dir=desc"`)
	assert.Contains(t, html, `Título &uarr;</a>`)
	assert.Contains(t, html, `class="sort-date" rel="nofollow"`)

	ia, ib, ic := strings.Index(html, "tarea-a"), strings.Index(html, "tarea-b"), strings.Index(html, "tarea-c")
	require.True(t, ia > 0 && ib > 0 && ic > 0)
	assert.True(t, ia < ib && ib < ic, "las filas deberían estar ordenadas por título")
}

func TestBoard_InvalidFieldWith404Policy(t *testing.T) {
	cfg := sorting.DefaultConfig()
	cfg.InvalidFieldRaises404 = true
	r, service := setupRouter(t, sqliteRepo(t), cfg)
	seedTitles(t, service, "x")

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/tasks?sort=nope", nil).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/tasks?sort=title", nil).Code)
}

func TestTaskLifecycle(t *testing.T) {
	r, _ := setupRouter(t, memory.NewTaskRepoMemory(), sorting.DefaultConfig())

	w := do(r, http.MethodPost, "/api/users", map[string]string{
		"email": "ana@example.com", "nombre": "Ana", "birth_date": "1990-04-01",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var user struct {
		Data taskDomain.User `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	require.NotEqual(t, uuid.Nil, user.Data.ID)

	w = do(r, http.MethodPost, "/api/tasks", map[string]any{
		"title": "Revisar PR", "assignee_id": user.Data.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Data taskDomain.Task `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotNil(t, created.Data.Assignee)
	assert.Equal(t, "Ana", created.Data.Assignee.Nombre)

	w = do(r, http.MethodPost, "/api/tasks/"+created.Data.ID.String()+"/complete", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/api/tasks/"+created.Data.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got struct {
		Data taskDomain.Task `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, taskDomain.TaskCompleted, got.Data.Status)
}

func TestTaskErrors(t *testing.T) {
	r, _ := setupRouter(t, memory.NewTaskRepoMemory(), sorting.DefaultConfig())

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/api/tasks/not-a-uuid", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/api/tasks/"+uuid.NewString(), nil).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodPost, "/api/tasks/"+uuid.NewString()+"/complete", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/api/tasks", map[string]string{}).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodPost, "/api/tasks", map[string]any{
		"title": "x", "assignee_id": uuid.New(),
	}).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/api/users", map[string]string{
		"email": "a@b.c", "nombre": "A", "birth_date": "01/02/1990",
	}).Code)
}
