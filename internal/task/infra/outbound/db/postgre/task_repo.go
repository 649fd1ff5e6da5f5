package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib" // Driver de PostgreSQL

	"github.com/davicafu/sortlab/internal/shared/infra/platform/db/sqlorder"
	"github.com/davicafu/sortlab/internal/shared/infra/platform/query"
	"github.com/davicafu/sortlab/internal/task/domain"
)

var sortColumns = sqlorder.Columns{
	"title":                "t.title",
	"description":          "t.description",
	"status":               "t.status",
	"created_at":           "t.created_at",
	"updated_at":           "t.updated_at",
	"assignee__nombre":     "u.nombre",
	"assignee__email":      "u.email",
	"assignee__birth_date": "u.birth_date",
	"assignee__age":        "age(u.birth_date)",
}

const defaultOrder = "t.created_at ASC, t.id ASC"

const selectTasks = `SELECT t.id, t.title, t.description, t.status, t.created_at, t.updated_at,
	u.id, u.email, u.nombre, u.birth_date, u.created_at
	FROM tasks t LEFT JOIN users u ON u.id = t.assignee_id`

// TaskRepoPostgres implementa TaskRepository sobre PostgreSQL (pgx).
type TaskRepoPostgres struct {
	db *sql.DB
}

var _ domain.TaskRepository = (*TaskRepoPostgres)(nil)

func NewTaskRepoPostgres(db *sql.DB) *TaskRepoPostgres {
	return &TaskRepoPostgres{db: db}
}

func assigneeID(t *domain.Task) uuid.NullUUID {
	if t.Assignee == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: t.Assignee.ID, Valid: true}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (*domain.Task, error) {
	var (
		t               domain.Task
		status          string
		uID             uuid.NullUUID
		uEmail, uNombre sql.NullString
		uBirth, uCreat  sql.NullTime
	)
	if err := s.Scan(&t.ID, &t.Title, &t.Description, &status, &t.CreatedAt, &t.UpdatedAt,
		&uID, &uEmail, &uNombre, &uBirth, &uCreat); err != nil {
		return nil, err
	}
	t.Status = domain.TaskStatus(status)

	if uID.Valid {
		t.Assignee = &domain.User{
			ID:        uID.UUID,
			Email:     uEmail.String,
			Nombre:    uNombre.String,
			BirthDate: uBirth.Time,
			CreatedAt: uCreat.Time,
		}
	}
	return &t, nil
}

// ------------------ Escritura ------------------

func (r *TaskRepoPostgres) SaveUser(ctx context.Context, u *domain.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, email, nombre, birth_date, created_at) VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO UPDATE SET email = EXCLUDED.email, nombre = EXCLUDED.nombre, birth_date = EXCLUDED.birth_date`,
		u.ID, u.Email, u.Nombre, u.BirthDate, u.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *TaskRepoPostgres) Create(ctx context.Context, t *domain.Task) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (id, title, description, status, assignee_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		t.ID, t.Title, t.Description, string(t.Status), assigneeID(t), t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *TaskRepoPostgres) Update(ctx context.Context, t *domain.Task) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET title=$1, description=$2, status=$3, assignee_id=$4, updated_at=$5 WHERE id=$6`,
		t.Title, t.Description, string(t.Status), assigneeID(t), t.UpdatedAt, t.ID,
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	rows, _ := res.RowsAffected()
	if rows == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// ------------------ Lectura ------------------

func (r *TaskRepoPostgres) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	u := domain.User{ID: id}
	err := r.db.QueryRowContext(ctx,
		`SELECT email, nombre, birth_date, created_at FROM users WHERE id = $1`, id,
	).Scan(&u.Email, &u.Nombre, &u.BirthDate, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("db scan error: %w", err)
	}
	return &u, nil
}

func (r *TaskRepoPostgres) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	t, err := scanTask(r.db.QueryRowContext(ctx, selectTasks+` WHERE t.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("db scan error: %w", err)
	}
	return t, nil
}

// List ordena en la base de datos con las columnas de sortColumns.
func (r *TaskRepoPostgres) List(ctx context.Context, f domain.TaskFilter, s query.Sort) ([]*domain.Task, error) {
	orderBy, err := sortColumns.OrderBy(s, defaultOrder)
	if err != nil {
		return nil, err
	}

	q := selectTasks
	var args []any
	if f.Status != "" {
		q += ` WHERE t.status = $1`
		args = append(args, string(f.Status))
	}
	q += ` ORDER BY ` + orderBy

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
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

// ------------------ Inicialización del Esquema ------------------

// InitPostgresTaskSchema crea las tablas 'users' y 'tasks' si no existen.
func InitPostgresTaskSchema(db *sql.DB) error {
	_, err := db.Exec(`
    CREATE TABLE IF NOT EXISTS users (
        id UUID PRIMARY KEY,
        email TEXT NOT NULL,
        nombre TEXT NOT NULL,
        birth_date DATE NOT NULL,
        created_at TIMESTAMP WITH TIME ZONE NOT NULL
    )`)
	if err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}

	_, err = db.Exec(`
    CREATE TABLE IF NOT EXISTS tasks (
        id UUID PRIMARY KEY,
        title TEXT NOT NULL,
        description TEXT NOT NULL DEFAULT '',
        status TEXT NOT NULL,
        assignee_id UUID REFERENCES users(id),
        created_at TIMESTAMP WITH TIME ZONE NOT NULL,
        updated_at TIMESTAMP WITH TIME ZONE NOT NULL
    )`)
	if err != nil {
		return fmt.Errorf("failed to create tasks table: %w", err)
	}
	return nil
}
