package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Fuku-x/connect-app/internal/handlers"
	"github.com/Fuku-x/connect-app/internal/middleware"
)

func RegisterTaskRoutes(r gin.IRouter) {
	tasks := r.Group("/tasks")
	tasks.Use(middleware.AuthMiddleware())
	{
		tasks.GET("", handlers.ListTasks)
		tasks.POST("", handlers.CreateTask)
		tasks.GET("/:id", handlers.GetTask)
		tasks.PUT("/:id", handlers.UpdateTask)
		tasks.PATCH("/:id/status", handlers.UpdateTaskStatus)
		tasks.DELETE("/:id", handlers.DeleteTask)
	}
}
