package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/davicafu/sortlab/internal/shared/infra/platform/query"
	"github.com/davicafu/sortlab/internal/sorting/domain"
)

// SortState es el resultado de una pasada del orquestador.
type SortState string

const (
	StateUnsorted        SortState = "unsorted"
	StateNativeOrdered   SortState = "native"
	StateFallbackOrdered SortState = "fallback"
	StateRejected        SortState = "rejected"
)

// Recorder recibe cada resultado; lo implementa la capa de métricas.
type Recorder interface {
	Observe(state SortState)
}

type nopRecorder struct{}

func (nopRecorder) Observe(SortState) {}

// Sorter decide cómo reordenar una colección: orden nativo primero y, si la
// colección no lo soporta, el resolver de paths.
type Sorter struct {
	cfg domain.Config
	log *zap.Logger
	rec Recorder
}

// NewSorter crea el orquestador. rec puede ser nil.
func NewSorter(cfg domain.Config, log *zap.Logger, rec Recorder) *Sorter {
	if log == nil {
		log = zap.NewNop()
	}
	if rec == nil {
		rec = nopRecorder{}
	}
	return &Sorter{cfg: cfg, log: log, rec: rec}
}

// Config devuelve la configuración con la que se creó el orquestador.
func (s *Sorter) Config() domain.Config {
	return s.cfg
}

// Apply reordena coll según spec y devuelve la colección con la que el
// llamador debe sustituir la original. coll nunca se modifica.
//
// Un campo rechazado por el orden nativo devuelve coll intacta; con la
// política 404 además devuelve un error que envuelve domain.ErrNotFound.
func (s *Sorter) Apply(ctx context.Context, coll domain.Collection, spec string) (domain.Collection, SortState, error) {
	if len(spec) <= 1 || coll == nil {
		return s.done(coll, StateUnsorted, spec)
	}

	if o, ok := coll.(domain.Orderer); ok {
		sorted, err := o.OrderBy(ctx, spec)
		switch {
		case err == nil:
			return s.done(sorted, StateNativeOrdered, spec)
		case errors.Is(err, domain.ErrOrderingUnsupported):
			// sigue por el resolver
		default:
			return s.reject(coll, spec, err)
		}
	}

	sort := query.ParseSortSpec(spec)
	sorted := domain.List(domain.SortBy(coll.Elements(), sort.Field, sort.Desc))
	return s.done(sorted, StateFallbackOrdered, spec)
}

func (s *Sorter) done(coll domain.Collection, state SortState, spec string) (domain.Collection, SortState, error) {
	s.rec.Observe(state)
	if state != StateUnsorted {
		s.log.Debug("collection sorted", zap.String("spec", spec), zap.String("state", string(state)))
	}
	return coll, state, nil
}

func (s *Sorter) reject(coll domain.Collection, spec string, cause error) (domain.Collection, SortState, error) {
	s.rec.Observe(StateRejected)

	if !errors.Is(cause, domain.ErrInvalidField) {
		s.log.Error("native ordering failed", zap.String("spec", spec), zap.Error(cause))
	}

	if s.cfg.InvalidFieldRaises404 {
		s.log.Warn("invalid sort field", zap.String("spec", strings.TrimPrefix(spec, query.DescPrefix)), zap.Error(cause))
		return coll, StateRejected, fmt.Errorf("%w: invalid field sorting %q: %w", domain.ErrNotFound, spec, cause)
	}

	s.log.Info("invalid sort field ignored", zap.String("spec", spec))
	return coll, StateUnsorted, nil
}
