package query

import "strings"

// ---------- Ordenamiento a nivel de repositorio ----------

// DescPrefix marca un field spec descendente ("-title").
const DescPrefix = "-"

// Sort indica campo y dirección.
type Sort struct {
	Field string // ej. "created_at", "title", "assignee__nombre"
	Desc  bool
}

// IsZero indica que no se pidió ningún orden.
func (s Sort) IsZero() bool {
	return s.Field == ""
}

// Spec devuelve el field spec equivalente, con "-" si es descendente.
func (s Sort) Spec() string {
	if s.Desc {
		return DescPrefix + s.Field
	}
	return s.Field
}

// ParseSortSpec convierte "-assignee__nombre" en Sort{Field: "assignee__nombre", Desc: true}.
func ParseSortSpec(spec string) Sort {
	if strings.HasPrefix(spec, DescPrefix) {
		return Sort{Field: spec[len(DescPrefix):], Desc: true}
	}
	return Sort{Field: spec}
}
