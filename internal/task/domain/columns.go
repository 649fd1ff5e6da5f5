package domain

import sorting "github.com/davicafu/sortlab/internal/sorting/domain"

// SortableColumns son las cabeceras del tablero, en orden de aparición.
var SortableColumns = []sorting.Column{
	{Field: "title", Title: "Título"},
	{Field: "status", Title: "Estado"},
	{Field: "assignee__nombre", Title: "Responsable"},
	{Field: "assignee__age", Title: "Edad"},
	{Field: "created_at", Title: "Creada"},
}
