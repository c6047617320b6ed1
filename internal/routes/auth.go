package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Fuku-x/connect-app/internal/handlers"
	"github.com/Fuku-x/connect-app/internal/middleware"
)

func RegisterAuthRoutes(r gin.IRouter) {
	r.POST("/register", handlers.Register)
	r.POST("/login", handlers.Login)
	r.POST("/logout", middleware.AuthMiddleware(), handlers.Logout)
	r.POST("/refresh", middleware.AuthMiddleware(), handlers.Refresh)

	r.POST("/forgot-password", handlers.ForgotPassword)
	r.POST("/reset-password", handlers.ResetPassword)
}
