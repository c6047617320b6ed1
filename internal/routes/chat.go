package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Fuku-x/connect-app/internal/handlers"
	"github.com/Fuku-x/connect-app/internal/middleware"
)

func RegisterChatRoutes(r gin.IRouter) {
	chat := r.Group("/chat")
	chat.Use(middleware.AuthMiddleware())
	{
		chat.GET("/conversations", handlers.GetConversations)
		chat.GET("/conversations/:id", handlers.GetConversation)
		chat.POST("/conversations", handlers.StartConversation)
		chat.POST("/messages", middleware.ChatRateLimit(), handlers.SendMessage)
		chat.GET("/unread-count", handlers.GetUnreadCount)
	}
}
