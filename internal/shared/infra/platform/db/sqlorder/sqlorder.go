package sqlorder

import (
	"fmt"
	"regexp"

	"github.com/davicafu/sortlab/internal/shared/infra/platform/query"
	sorting "github.com/davicafu/sortlab/internal/sorting/domain"
)

// fieldSyntax es la forma aceptada de un campo de orden: segmentos en
// minúscula unidos por "__".
var fieldSyntax = regexp.MustCompile(`^[a-z_]+(__[a-z_]+)*$`)

// Columns traduce campos de orden a expresiones SQL. Solo las expresiones de
// este mapa llegan al ORDER BY; el campo del usuario nunca se interpola.
type Columns map[string]string

// OrderBy construye la cláusula ORDER BY (sin la palabra clave). Sin campo
// devuelve tiebreak, que también se añade tras el campo pedido para que el
// orden sea determinista. Los NULL van primero en ascendente.
func (c Columns) OrderBy(s query.Sort, tiebreak string) (string, error) {
	if s.IsZero() {
		return tiebreak, nil
	}
	if !fieldSyntax.MatchString(s.Field) {
		return "", fmt.Errorf("%w: malformed field %q", sorting.ErrInvalidField, s.Field)
	}
	expr, ok := c[s.Field]
	if !ok {
		return "", fmt.Errorf("%w: unknown field %q", sorting.ErrInvalidField, s.Field)
	}

	dir := "ASC NULLS FIRST"
	if s.Desc {
		dir = "DESC NULLS LAST"
	}
	if tiebreak == "" {
		return fmt.Sprintf("%s %s", expr, dir), nil
	}
	return fmt.Sprintf("%s %s, %s", expr, dir, tiebreak), nil
}
