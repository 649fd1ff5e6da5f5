package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/davicafu/sortlab/internal/shared/infra/platform/db/sqlorder"
	"github.com/davicafu/sortlab/internal/shared/infra/platform/query"
	"github.com/davicafu/sortlab/internal/task/domain"
)

// Las fechas se guardan como texto de ancho fijo en UTC para que el orden
// lexicográfico coincida con el cronológico.
const tsLayout = "2006-01-02T15:04:05.000000000Z"

// sortColumns son los únicos campos que este almacén sabe ordenar.
var sortColumns = sqlorder.Columns{
	"title":                "t.title",
	"description":          "t.description",
	"status":               "t.status",
	"created_at":           "t.created_at",
	"updated_at":           "t.updated_at",
	"assignee__nombre":     "u.nombre",
	"assignee__email":      "u.email",
	"assignee__birth_date": "u.birth_date",
	"assignee__age":        "(julianday('now') - julianday(u.birth_date))",
}

const defaultOrder = "t.created_at ASC, t.rowid ASC"

const selectTasks = `SELECT t.id, t.title, t.description, t.status, t.created_at, t.updated_at,
	u.id, u.email, u.nombre, u.birth_date, u.created_at
	FROM tasks t LEFT JOIN users u ON u.id = t.assignee_id`

type TaskRepoSQLite struct {
	db *sql.DB
}

var _ domain.TaskRepository = (*TaskRepoSQLite)(nil)

func NewTaskRepoSQLite(db *sql.DB) *TaskRepoSQLite {
	return &TaskRepoSQLite{db: db}
}

// ------------------ Conversión ------------------

func formatTime(t time.Time) string {
	return t.UTC().Format(tsLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(tsLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp in DB %q: %w", s, err)
	}
	return t, nil
}

func assigneeID(t *domain.Task) any {
	if t.Assignee == nil {
		return nil
	}
	return t.Assignee.ID.String()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (*domain.Task, error) {
	var (
		t                           domain.Task
		idStr, status, created, upd string
		uID, uEmail, uNombre        sql.NullString
		uBirth, uCreated            sql.NullString
	)
	if err := s.Scan(&idStr, &t.Title, &t.Description, &status, &created, &upd,
		&uID, &uEmail, &uNombre, &uBirth, &uCreated); err != nil {
		return nil, err
	}

	var err error
	if t.ID, err = uuid.Parse(idStr); err != nil {
		return nil, fmt.Errorf("invalid UUID in DB: %w", err)
	}
	t.Status = domain.TaskStatus(status)
	if t.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	if t.UpdatedAt, err = parseTime(upd); err != nil {
		return nil, err
	}

	if uID.Valid {
		u := &domain.User{Email: uEmail.String, Nombre: uNombre.String}
		if u.ID, err = uuid.Parse(uID.String); err != nil {
			return nil, fmt.Errorf("invalid UUID in DB: %w", err)
		}
		if u.BirthDate, err = parseTime(uBirth.String); err != nil {
			return nil, err
		}
		if u.CreatedAt, err = parseTime(uCreated.String); err != nil {
			return nil, err
		}
		t.Assignee = u
	}
	return &t, nil
}

// ------------------ Métodos ------------------

// SaveUser inserta o actualiza el usuario.
func (r *TaskRepoSQLite) SaveUser(ctx context.Context, u *domain.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, email, nombre, birth_date, created_at) VALUES (?,?,?,?,?)
		 ON CONFLICT(id) DO UPDATE SET email=excluded.email, nombre=excluded.nombre, birth_date=excluded.birth_date`,
		u.ID.String(), u.Email, u.Nombre, formatTime(u.BirthDate), formatTime(u.CreatedAt),
	)
	return err
}

func (r *TaskRepoSQLite) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT email, nombre, birth_date, created_at FROM users WHERE id = ?`, id.String())

	u := domain.User{ID: id}
	var birth, created string
	if err := row.Scan(&u.Email, &u.Nombre, &birth, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	var err error
	if u.BirthDate, err = parseTime(birth); err != nil {
		return nil, err
	}
	if u.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *TaskRepoSQLite) Create(ctx context.Context, t *domain.Task) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (id, title, description, status, assignee_id, created_at, updated_at)
		 VALUES (?,?,?,?,?,?,?)`,
		t.ID.String(), t.Title, t.Description, string(t.Status), assigneeID(t),
		formatTime(t.CreatedAt), formatTime(t.UpdatedAt),
	)
	return err
}

func (r *TaskRepoSQLite) Update(ctx context.Context, t *domain.Task) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET title=?, description=?, status=?, assignee_id=?, updated_at=? WHERE id=?`,
		t.Title, t.Description, string(t.Status), assigneeID(t), formatTime(t.UpdatedAt), t.ID.String(),
	)
	if err != nil {
		return err
	}

	rows, _ := res.RowsAffected()
	if rows == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepoSQLite) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	row := r.db.QueryRowContext(ctx, selectTasks+` WHERE t.id = ?`, id.String())
	t, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	return t, nil
}

// List ordena en la base de datos. Un campo fuera de sortColumns devuelve
// sorting.ErrInvalidField sin llegar a ejecutar la consulta.
func (r *TaskRepoSQLite) List(ctx context.Context, f domain.TaskFilter, s query.Sort) ([]*domain.Task, error) {
	orderBy, err := sortColumns.OrderBy(s, defaultOrder)
	if err != nil {
		return nil, err
	}

	q := selectTasks
	var args []any
	if f.Status != "" {
		q += ` WHERE t.status = ?`
		args = append(args, string(f.Status))
	}
	q += ` ORDER BY ` + orderBy

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// ------------------ Inicialización de DB ------------------

// InitSQLite crea las tablas si no existen.
func InitSQLite(db *sql.DB) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS users (
            id TEXT PRIMARY KEY,
            email TEXT NOT NULL,
            nombre TEXT NOT NULL,
            birth_date TEXT NOT NULL,
            created_at TEXT NOT NULL
        )
    `)
	if err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}

	_, err = db.Exec(`
        CREATE TABLE IF NOT EXISTS tasks (
            id TEXT PRIMARY KEY,
            title TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            status TEXT NOT NULL,
            assignee_id TEXT REFERENCES users(id),
            created_at TEXT NOT NULL,
            updated_at TEXT NOT NULL
        )
    `)
	if err != nil {
		return fmt.Errorf("failed to create tasks table: %w", err)
	}
	return nil
}
