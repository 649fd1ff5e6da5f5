package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/davicafu/sortlab/internal/shared/infra/platform/query"
	"github.com/davicafu/sortlab/internal/sorting/domain"
)

const (
	requestKey = "sorting.request"
	stateKey   = "sorting.state"
)

// Sorting deja en el contexto de gin la vista de la petición y el estado de
// orden que leen los handlers y las plantillas.
func Sorting(log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *gin.Context) {
		params, err := query.ParseParams(c.Request.URL.RawQuery)
		if err != nil {
			// Una query string corrupta se trata como vacía.
			log.Warn("unparsable query string", zap.String("path", c.Request.URL.Path), zap.Error(err))
			params = nil
		}

		c.Set(requestKey, domain.Request{Path: c.Request.URL.Path, Query: params})
		c.Set(stateKey, domain.StateFromParams(params))
		c.Next()
	}
}

// RequestFrom devuelve la petición registrada por Sorting. Sin el middleware
// se reconstruye a partir de la URL.
func RequestFrom(c *gin.Context) domain.Request {
	if v, ok := c.Get(requestKey); ok {
		if req, ok := v.(domain.Request); ok {
			return req
		}
	}
	params, _ := query.ParseParams(c.Request.URL.RawQuery)
	return domain.Request{Path: c.Request.URL.Path, Query: params}
}

// StateFrom devuelve el estado de orden de la petición.
func StateFrom(c *gin.Context) domain.SortRequestState {
	if v, ok := c.Get(stateKey); ok {
		if s, ok := v.(domain.SortRequestState); ok {
			return s
		}
	}
	return domain.StateFromParams(RequestFrom(c).Query)
}
