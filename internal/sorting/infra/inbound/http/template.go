package http

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"maps"
	"path"
	"regexp"

	"go.uber.org/zap"

	"github.com/davicafu/sortlab/internal/sorting/application"
	"github.com/davicafu/sortlab/internal/sorting/domain"
)

// RequestVar es la clave reservada con la que Render expone la petición a la
// plantilla; las anclas la leen desde la raíz ($).
const RequestVar = "sortRequest"

var directiveTag = regexp.MustCompile(`\{%\s*(\w+)\b(.*?)%\}`)

// ---------- Motor ----------

// Engine compila plantillas html/template que contienen directivas
// {% anchor ... %} y {% autosort ... %}.
type Engine struct {
	sorter *application.Sorter
	log    *zap.Logger
}

func NewEngine(sorter *application.Sorter, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{sorter: sorter, log: log}
}

// Compile traduce las directivas y parsea el resultado. Los errores de
// sintaxis de una directiva envuelven domain.ErrDirectiveSyntax.
func (e *Engine) Compile(name, src string) (*Page, error) {
	p := &Page{name: name, engine: e}

	var directiveErr error
	rewritten := directiveTag.ReplaceAllStringFunc(src, func(tag string) string {
		if directiveErr != nil {
			return tag
		}
		m := directiveTag.FindStringSubmatch(tag)
		switch m[1] {
		case "anchor":
			d, err := application.ParseAnchor(m[2])
			if err != nil {
				directiveErr = err
				return tag
			}
			p.anchors = append(p.anchors, d)
			return fmt.Sprintf("{{ sortAnchor $.%s %d }}", RequestVar, len(p.anchors)-1)
		case "autosort":
			d, err := application.ParseAutosort(m[2])
			if err != nil {
				directiveErr = err
				return tag
			}
			p.autosorts = append(p.autosorts, d)
			return ""
		default:
			directiveErr = fmt.Errorf("%w: unknown directive %q", domain.ErrDirectiveSyntax, m[1])
			return tag
		}
	})
	if directiveErr != nil {
		return nil, fmt.Errorf("template %s: %w", name, directiveErr)
	}

	tmpl, err := template.New(name).
		Funcs(template.FuncMap{"sortAnchor": p.anchor}).
		Parse(rewritten)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", name, err)
	}
	p.tmpl = tmpl

	e.log.Debug("template compiled",
		zap.String("name", name),
		zap.Int("anchors", len(p.anchors)),
		zap.Int("autosorts", len(p.autosorts)))
	return p, nil
}

// CompileFS compila un fichero de fsys usando su nombre base como nombre.
func (e *Engine) CompileFS(fsys fs.FS, file string) (*Page, error) {
	src, err := fs.ReadFile(fsys, file)
	if err != nil {
		return nil, fmt.Errorf("read template %s: %w", file, err)
	}
	return e.Compile(path.Base(file), string(src))
}

// ---------- Página ----------

// Page es una plantilla compilada junto con sus directivas.
type Page struct {
	name      string
	engine    *Engine
	tmpl      *template.Template
	anchors   []application.AnchorDirective
	autosorts []application.AutosortDirective
}

func (p *Page) Name() string { return p.name }

// Anchors devuelve las directivas anchor en orden de aparición.
func (p *Page) Anchors() []application.AnchorDirective {
	return append([]application.AnchorDirective(nil), p.anchors...)
}

// Autosorts devuelve las directivas autosort en orden de aparición.
func (p *Page) Autosorts() []application.AutosortDirective {
	return append([]application.AutosortDirective(nil), p.autosorts...)
}

// Render aplica primero las directivas autosort, sustituyendo cada variable
// por la colección ordenada, y después ejecuta la plantilla. data no se
// modifica. Nada se escribe en w si hay error.
func (p *Page) Render(ctx context.Context, w io.Writer, req domain.Request, state domain.SortRequestState, data map[string]any) error {
	vars := make(map[string]any, len(data)+1)
	maps.Copy(vars, data)

	if len(p.autosorts) > 0 {
		sorter := p.engine.sorter
		spec := state.FieldSpec(sorter.Config().DefaultDirection)
		for _, d := range p.autosorts {
			coll, ok := vars[d.Variable].(domain.Collection)
			if !ok {
				p.engine.log.Warn("autosort variable is not a collection",
					zap.String("template", p.name), zap.String("variable", d.Variable))
				continue
			}
			sorted, _, err := sorter.Apply(ctx, coll, spec)
			if err != nil {
				return err
			}
			vars[d.Variable] = sorted
		}
	}

	vars[RequestVar] = req

	var buf bytes.Buffer
	if err := p.tmpl.Execute(&buf, vars); err != nil {
		return fmt.Errorf("render %s: %w", p.name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

func (p *Page) anchor(req domain.Request, i int) (template.HTML, error) {
	if i < 0 || i >= len(p.anchors) {
		return "", fmt.Errorf("anchor %d out of range", i)
	}
	return p.anchors[i].Link(p.engine.sorter.Config(), req).Anchor()
}
