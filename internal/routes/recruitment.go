package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Fuku-x/connect-app/internal/handlers"
	"github.com/Fuku-x/connect-app/internal/middleware"
)

func RegisterRecruitmentRoutes(r gin.IRouter) {
	recruitments := r.Group("/recruitments")
	recruitments.Use(middleware.AuthMiddleware())
	{
		recruitments.GET("", handlers.ListRecruitments)
		recruitments.GET("/:id", handlers.GetRecruitment)
		recruitments.POST("", handlers.CreateRecruitment)
		recruitments.PUT("/:id", handlers.UpdateRecruitment)
		recruitments.DELETE("/:id", handlers.DeleteRecruitment)
	}
}
