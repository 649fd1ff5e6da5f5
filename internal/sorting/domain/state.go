package domain

import "github.com/davicafu/sortlab/internal/shared/infra/platform/query"

// Parámetros de la query string que gobiernan el orden.
const (
	SortParam = "sort"
	DirParam  = "dir"
)

// Request es la vista mínima de la petición que necesita el codec.
type Request struct {
	Path  string
	Query query.Params
}

// SortRequestState es el estado de orden derivado de la URL actual.
type SortRequestState struct {
	Field string
	Dir   Direction
}

// StateFromParams lee "sort" y "dir" sin modificar params.
func StateFromParams(params query.Params) SortRequestState {
	field, _ := params.Get(SortParam)
	dir, _ := params.Get(DirParam)
	return SortRequestState{Field: field, Dir: ParseDirection(dir)}
}

// Active indica si field es la columna ordenada actualmente.
func (s SortRequestState) Active(field string) bool {
	return s.Field != "" && s.Field == field
}

// FieldSpec construye el field spec para el orquestador: "-campo" si la
// dirección efectiva es descendente. Sin "sort" y con def=desc devuelve "-",
// que el orquestador trata como "sin orden".
func (s SortRequestState) FieldSpec(def Direction) string {
	dir := s.Dir
	if dir == DirNone {
		dir = def
	}
	if dir == DirDesc {
		return "-" + s.Field
	}
	return s.Field
}
