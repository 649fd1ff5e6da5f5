package domain

import (
	"context"

	"github.com/samber/lo"
)

// Collection es la secuencia que se muestra y se reordena.
type Collection interface {
	Elements() []any
}

// Orderer es la capacidad de orden nativo: la colección se reordena a sí
// misma a partir de un field spec ("-assignee__nombre"). Devuelve
// ErrOrderingUnsupported si no puede hacerlo y ErrInvalidField si rechaza
// el campo.
type Orderer interface {
	OrderBy(ctx context.Context, spec string) (Collection, error)
}

// List es una colección en memoria sin orden nativo.
type List []any

// Elements implementa Collection.
func (l List) Elements() []any {
	return l
}

// ListOf copia items en una List.
func ListOf[T any](items []T) List {
	return lo.Map(items, func(item T, _ int) any {
		return item
	})
}
