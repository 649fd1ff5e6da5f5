package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse define la estructura estándar para las respuestas de error.
type ErrorResponse struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// SendSuccess envía una respuesta exitosa con un payload de datos.
func SendSuccess(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{"data": data})
}

// SendError envía una respuesta de error con un formato estandarizado.
func SendError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"error": ErrorResponse{Message: message, Status: statusCode},
	})
}

// --- Helpers específicos para errores comunes ---

func SendBadRequest(c *gin.Context, message string) {
	SendError(c, http.StatusBadRequest, message)
}

func SendNotFound(c *gin.Context, message string) {
	SendError(c, http.StatusNotFound, message)
}

func SendConflict(c *gin.Context, message string) {
	SendError(c, http.StatusConflict, message)
}

func SendInternalServerError(c *gin.Context, message string) {
	SendError(c, http.StatusInternalServerError, message)
}

// --- Respuestas HTML (tablero) ---

const htmlContentType = "text/html; charset=utf-8"

// SendHTML envía un documento HTML ya renderizado.
func SendHTML(c *gin.Context, statusCode int, body []byte) {
	c.Data(statusCode, htmlContentType, body)
}

// SendText envía un mensaje de error en texto plano, para rutas que no
// hablan JSON.
func SendText(c *gin.Context, statusCode int, message string) {
	c.String(statusCode, message)
}
