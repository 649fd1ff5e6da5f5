package domain

import (
	_ "embed"
	"html"
	"html/template"
	"strings"
)

//go:embed templates/anchor.html
var anchorSource string

// anchorTemplate es el único renderizador del <a> de ordenación; lo usan
// Anchor y la directiva {% anchor %}.
var anchorTemplate = template.Must(template.New("anchor").Parse(anchorSource))

// SortLink describe un enlace de ordenación ya calculado. Se crea por cada
// render y no se modifica después.
type SortLink struct {
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Label       string    `json:"label"`
	Icon        string    `json:"icon"`
	InverseIcon string    `json:"inverse_icon"`
	Class       string    `json:"class,omitempty"`
	Rel         string    `json:"rel,omitempty"`
	QuerySuffix string    `json:"query_suffix"`
	CurrentDir  Direction `json:"current_dir"`
}

// Column es una cabecera ordenable. Sin Title se usa el campo capitalizado.
type Column struct {
	Field string `json:"field"`
	Title string `json:"title"`
}

// Active indica si el enlace corresponde a la columna ordenada.
func (l SortLink) Active() bool {
	return l.Icon != ""
}

// LabelHTML devuelve la etiqueta con el icono sin escapar. Los iconos vienen
// de la configuración, nunca de la petición.
func (l SortLink) LabelHTML() template.HTML {
	if l.Icon == "" {
		return template.HTML(html.EscapeString(l.Title))
	}
	return template.HTML(html.EscapeString(l.Title) + " " + l.Icon)
}

// Anchor genera el <a> completo a partir de templates/anchor.html.
func (l SortLink) Anchor() (template.HTML, error) {
	var sb strings.Builder
	if err := anchorTemplate.Execute(&sb, l); err != nil {
		return "", err
	}
	return template.HTML(sb.String()), nil
}
