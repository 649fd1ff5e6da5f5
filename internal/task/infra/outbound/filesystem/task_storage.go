package filesystem

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/davicafu/sortlab/internal/shared/infra/platform/query"
	sorting "github.com/davicafu/sortlab/internal/sorting/domain"
	taskDomain "github.com/davicafu/sortlab/internal/task/domain"
)

// JSONTaskStorage es un adaptador outbound que guarda tareas y usuarios en un
// fichero JSON. Como el repositorio en memoria, no ordena: cualquier orden
// pedido devuelve sorting.ErrOrderingUnsupported.
type JSONTaskStorage struct {
	filePath string
	mu       sync.Mutex // serializa lectura-modificación-escritura del fichero
}

var _ taskDomain.TaskRepository = (*JSONTaskStorage)(nil)

// snapshot es el contenido completo del fichero.
type snapshot struct {
	Users []*taskDomain.User `json:"users"`
	Tasks []*taskDomain.Task `json:"tasks"`
}

// NewJSONTaskStorage es el constructor.
func NewJSONTaskStorage(filePath string) *JSONTaskStorage {
	return &JSONTaskStorage{filePath: filePath}
}

func (s *JSONTaskStorage) SaveUser(_ context.Context, u *taskDomain.User) error {
	return s.modify(func(snap *snapshot) error {
		for i, existing := range snap.Users {
			if existing.ID == u.ID {
				snap.Users[i] = u
				return nil
			}
		}
		snap.Users = append(snap.Users, u)
		return nil
	})
}

func (s *JSONTaskStorage) GetUser(_ context.Context, id uuid.UUID) (*taskDomain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.read()
	if err != nil {
		return nil, err
	}
	for _, u := range snap.Users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, taskDomain.ErrUserNotFound
}

// Create añade una tarea al final del fichero.
func (s *JSONTaskStorage) Create(_ context.Context, t *taskDomain.Task) error {
	return s.modify(func(snap *snapshot) error {
		for _, existing := range snap.Tasks {
			if existing.ID == t.ID {
				return taskDomain.ErrInvalidTask
			}
		}
		snap.Tasks = append(snap.Tasks, t)
		return nil
	})
}

func (s *JSONTaskStorage) Update(_ context.Context, t *taskDomain.Task) error {
	return s.modify(func(snap *snapshot) error {
		for i, existing := range snap.Tasks {
			if existing.ID == t.ID {
				snap.Tasks[i] = t
				return nil
			}
		}
		return taskDomain.ErrTaskNotFound
	})
}

func (s *JSONTaskStorage) GetByID(_ context.Context, id uuid.UUID) (*taskDomain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.read()
	if err != nil {
		return nil, err
	}
	for _, t := range snap.Tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, taskDomain.ErrTaskNotFound // Reutilizamos el error de dominio
}

// List devuelve las tareas en el orden del fichero.
func (s *JSONTaskStorage) List(_ context.Context, f taskDomain.TaskFilter, srt query.Sort) ([]*taskDomain.Task, error) {
	if !srt.IsZero() {
		return nil, sorting.ErrOrderingUnsupported
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.read()
	if err != nil {
		return nil, err
	}
	out := make([]*taskDomain.Task, 0, len(snap.Tasks))
	for _, t := range snap.Tasks {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	return out, nil
}

// ---- Helpers internos (no concurrentes) ----

func (s *JSONTaskStorage) modify(fn func(*snapshot) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.read()
	if err != nil {
		return err
	}
	if err := fn(snap); err != nil {
		return err
	}
	return s.write(snap)
}

// read carga el fichero. Si no existe o está vacío devuelve un snapshot vacío.
// El responsable embebido en cada tarea se refresca con la copia de users.
func (s *JSONTaskStorage) read() (*snapshot, error) {
	snap := &snapshot{}
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return snap, nil
		}
		return nil, err
	}
	if len(data) == 0 {
		return snap, nil
	}
	if err := json.Unmarshal(data, snap); err != nil {
		return nil, err
	}

	users := make(map[uuid.UUID]*taskDomain.User, len(snap.Users))
	for _, u := range snap.Users {
		users[u.ID] = u
	}
	for _, t := range snap.Tasks {
		if t.Assignee == nil {
			continue
		}
		if u, ok := users[t.Assignee.ID]; ok {
			t.Assignee = u
		}
	}
	return snap, nil
}

// write sobrescribe el fichero completo a través de un temporal y rename.
func (s *JSONTaskStorage) write(snap *snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.filePath), ".tasks-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.filePath)
}
