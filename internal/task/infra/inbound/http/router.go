package http

import "github.com/gin-gonic/gin"

// RegisterTaskRoutes registra el tablero HTML y la API JSON de tareas.
// Las rutas esperan el middleware sortingHTTP.Sorting en el engine.
func RegisterTaskRoutes(r gin.IRouter, handler *TaskHandler) {
	r.GET("/tasks", handler.Board)

	api := r.Group("/api")
	{
		api.GET("/tasks", handler.ListTasks)
		api.POST("/tasks", handler.CreateTask)
		api.GET("/tasks/:id", handler.GetTask)
		api.POST("/tasks/:id/complete", handler.CompleteTask)
		api.POST("/users", handler.RegisterUser)
	}
}
