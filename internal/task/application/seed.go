package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	taskDomain "github.com/davicafu/sortlab/internal/task/domain"
)

type demoTask struct {
	title       string
	description string
	assignee    int // índice en demoUsers, -1 sin responsable
	status      taskDomain.TaskStatus
}

var demoUsers = []taskDomain.User{
	{ID: uuid.MustParse("6f1c5a2e-3b7d-4c11-9a51-2d4e8f0b1a01"), Nombre: "Ana", Email: "ana@example.com", BirthDate: time.Date(1994, 3, 12, 0, 0, 0, 0, time.UTC)},
	{ID: uuid.MustParse("6f1c5a2e-3b7d-4c11-9a51-2d4e8f0b1a02"), Nombre: "Bruno", Email: "bruno@example.com", BirthDate: time.Date(1987, 11, 2, 0, 0, 0, 0, time.UTC)},
	{ID: uuid.MustParse("6f1c5a2e-3b7d-4c11-9a51-2d4e8f0b1a03"), Nombre: "Carla", Email: "carla@example.com", BirthDate: time.Date(2001, 6, 25, 0, 0, 0, 0, time.UTC)},
}

var demoTasks = []demoTask{
	{"Revisar contrato", "Cláusulas de renovación", 1, taskDomain.TaskPending},
	{"Actualizar dependencias", "", 0, taskDomain.TaskCompleted},
	{"Migrar base de datos", "De sqlite a postgres", 2, taskDomain.TaskFailed},
	{"Preparar demo", "", -1, taskDomain.TaskPending},
	{"Escribir documentación", "Guía de columnas ordenables", 0, taskDomain.TaskPending},
}

// SeedDemo registra usuarios y tareas de ejemplo si el tablero está vacío.
// Devuelve cuántas tareas ha creado.
func (s *TaskService) SeedDemo(ctx context.Context) (int, error) {
	existing, err := s.ListTasks(ctx, taskDomain.TaskFilter{})
	if err != nil {
		return 0, err
	}
	if len(existing.Tasks()) > 0 {
		s.log.Info("Board already has tasks, skipping demo data", zap.Int("tasks", len(existing.Tasks())))
		return 0, nil
	}

	for i := range demoUsers {
		u := demoUsers[i]
		if err := s.RegisterUser(ctx, &u); err != nil {
			return 0, err
		}
	}

	created := 0
	for _, d := range demoTasks {
		assignee := uuid.Nil
		if d.assignee >= 0 {
			assignee = demoUsers[d.assignee].ID
		}
		t, err := s.CreateTask(ctx, d.title, d.description, assignee)
		if err != nil {
			return created, err
		}
		created++

		switch d.status {
		case taskDomain.TaskCompleted:
			t.Complete()
		case taskDomain.TaskFailed:
			t.Fail()
		default:
			continue
		}
		if err := s.repo.Update(ctx, t); err != nil {
			return created, err
		}
	}

	s.log.Info("Demo data seeded", zap.Int("users", len(demoUsers)), zap.Int("tasks", created))
	return created, nil
}
