package application

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/davicafu/sortlab/internal/sorting/domain"
)

// AnchorDirective es una invocación ya validada de {% anchor ... %}.
type AnchorDirective struct {
	Field string
	Title string
	Class string
	Rel   string
}

// Link calcula el descriptor de la directiva para la petición actual.
func (d AnchorDirective) Link(cfg domain.Config, req domain.Request) domain.SortLink {
	return BuildLink(cfg, req, d.Field, d.Title, d.Class, d.Rel)
}

// AutosortDirective es una invocación ya validada de {% autosort ... %}.
type AutosortDirective struct {
	Variable string
}

// ParseAnchor valida los argumentos de una directiva anchor:
//
//	field
//	field title
//	field title class rel
//
// class y rel solo se aceptan juntos.
func ParseAnchor(args string) (AnchorDirective, error) {
	bits := splitContents(args)

	switch len(bits) {
	case 0:
		return AnchorDirective{}, fmt.Errorf("%w: anchor takes at least 1 argument", domain.ErrDirectiveSyntax)
	case 3:
		return AnchorDirective{}, fmt.Errorf("%w: anchor class and rel must be given together", domain.ErrDirectiveSyntax)
	case 1, 2, 4:
	default:
		return AnchorDirective{}, fmt.Errorf("%w: anchor takes at most 4 arguments, got %d", domain.ErrDirectiveSyntax, len(bits))
	}

	d := AnchorDirective{Field: strings.TrimSpace(bits[0])}
	if d.Field == "" {
		return AnchorDirective{}, fmt.Errorf("%w: anchor field is empty", domain.ErrDirectiveSyntax)
	}

	if len(bits) >= 2 {
		d.Title = strings.TrimSpace(bits[1])
	} else {
		d.Title = Capitalize(d.Field)
	}

	if len(bits) == 4 {
		d.Class = strings.TrimSpace(bits[2])
		d.Rel = strings.TrimSpace(bits[3])
	}

	return d, nil
}

// ParseAutosort valida {% autosort variable %}.
func ParseAutosort(args string) (AutosortDirective, error) {
	bits := splitContents(args)
	if len(bits) != 1 || bits[0] == "" {
		return AutosortDirective{}, fmt.Errorf("%w: autosort takes exactly one argument", domain.ErrDirectiveSyntax)
	}
	return AutosortDirective{Variable: bits[0]}, nil
}

// Capitalize pone en mayúscula la primera letra y en minúscula el resto.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return cases.Upper(language.Und).String(string(r)) + cases.Lower(language.Und).String(s[size:])
}

// splitContents separa por espacios respetando los grupos entre comillas
// simples o dobles. Las comillas exteriores se eliminan.
func splitContents(s string) []string {
	var (
		bits    []string
		cur     strings.Builder
		quote   rune
		inToken bool
	)

	flush := func() {
		if inToken {
			bits = append(bits, cur.String())
			cur.Reset()
			inToken = false
		}
	}

	for _, r := range s {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
				continue
			}
			cur.WriteRune(r)
		case r == '"' || r == '\'':
			quote = r
			inToken = true
		case r == ' ' || r == '\t' || r == '\n':
			flush()
		default:
			cur.WriteRune(r)
			inToken = true
		}
	}
	flush()

	return bits
}
