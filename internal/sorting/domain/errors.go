package domain

import "errors"

var (
	// ErrDirectiveSyntax: directiva mal formada; se detecta al compilar la plantilla.
	ErrDirectiveSyntax = errors.New("sorting: invalid directive syntax")

	// ErrInvalidField: la colección soporta orden nativo pero rechaza el campo.
	ErrInvalidField = errors.New("sorting: invalid sort field")

	// ErrOrderingUnsupported: la colección no sabe ordenarse; se usa el resolver.
	ErrOrderingUnsupported = errors.New("sorting: native ordering unsupported")

	// ErrNotFound es el fallo visible para el cliente con la política 404.
	ErrNotFound = errors.New("sorting: not found")
)
