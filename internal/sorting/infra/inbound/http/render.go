package http

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/davicafu/sortlab/internal/sorting/application"
	"github.com/davicafu/sortlab/internal/sorting/domain"
	response "github.com/davicafu/sortlab/pkg/utils"
)

// HTML renderiza page con la petición actual. Un rechazo con la política 404
// responde Not Found sin cuerpo parcial.
func HTML(c *gin.Context, status int, page *Page, data map[string]any) {
	var buf bytes.Buffer
	err := page.Render(c.Request.Context(), &buf, RequestFrom(c), StateFrom(c), data)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		response.SendText(c, http.StatusNotFound, "Invalid field sorting.")
		return
	case err != nil:
		_ = c.Error(err)
		response.SendText(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	response.SendHTML(c, status, buf.Bytes())
}

// Links calcula los descriptores de columns para la petición actual.
func Links(c *gin.Context, cfg domain.Config, columns []domain.Column) []domain.SortLink {
	return application.BuildLinks(cfg, RequestFrom(c), columns)
}
