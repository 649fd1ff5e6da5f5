package domain

import (
	"slices"
	"strings"
)

// PathSeparator separa los segmentos de un field spec ("assignee__nombre").
const PathSeparator = "__"

// AttributePath es la secuencia inmutable de segmentos de un field spec.
type AttributePath struct {
	segments []string
}

// ParsePath divide spec en segmentos.
func ParsePath(spec string) AttributePath {
	return AttributePath{segments: strings.Split(spec, PathSeparator)}
}

// Segments devuelve una copia de los segmentos.
func (p AttributePath) Segments() []string {
	return slices.Clone(p.segments)
}

func (p AttributePath) String() string {
	return strings.Join(p.segments, PathSeparator)
}

// Resolve recorre obj segmento a segmento: primero acceso por clave, después
// miembros. Un método que altera datos no se llama y deja el valor actual.
// Un segmento irresoluble corta el recorrido y devuelve el último valor.
func (p AttributePath) Resolve(obj any) any {
	current := obj
	for _, seg := range p.segments {
		if c, ok := keyed(current); ok {
			if v, found := c.Lookup(seg); found {
				current = v
				continue
			}
		}

		if a, ok := current.(MemberAccessor); ok {
			if m, found := a.Member(seg); found {
				switch {
				case !m.IsCallable():
					current = m.Value
				case !m.AltersData:
					current = m.Call()
				}
				continue
			}
		}

		break
	}
	return current
}

// KeyFunc devuelve el cierre ligado a este path, reutilizable para todos los
// elementos de una colección.
func (p AttributePath) KeyFunc() func(any) any {
	return p.Resolve
}

// SortBy devuelve una copia de items ordenada de forma estable por la clave
// que resuelve path. Con reverse el orden es descendente y los empates
// conservan su orden original.
func SortBy[T any](items []T, path string, reverse bool) []T {
	key := ParsePath(path).KeyFunc()

	keys := make([]any, len(items))
	idx := make([]int, len(items))
	for i, it := range items {
		idx[i] = i
		keys[i] = key(it)
	}

	slices.SortStableFunc(idx, func(a, b int) int {
		c := Compare(keys[a], keys[b])
		if reverse {
			return -c
		}
		return c
	})

	out := make([]T, len(items))
	for i, j := range idx {
		out[i] = items[j]
	}
	return out
}
