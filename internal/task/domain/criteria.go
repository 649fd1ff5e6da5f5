package domain

// TaskFilter restringe el listado. Los campos vacíos no filtran.
type TaskFilter struct {
	Status TaskStatus
}

// Matches aplica el filtro en memoria.
func (f TaskFilter) Matches(t *Task) bool {
	return f.Status == "" || t.Status == f.Status
}
