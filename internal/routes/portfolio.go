package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Fuku-x/connect-app/internal/handlers"
	"github.com/Fuku-x/connect-app/internal/middleware"
)

func RegisterPortfolioRoutes(r gin.IRouter) {
	// Owner CRUD
	portfolios := r.Group("/portfolios")
	portfolios.Use(middleware.AuthMiddleware())
	{
		portfolios.GET("", handlers.ListMyPortfolios)
		portfolios.POST("", handlers.CreatePortfolio)
		portfolios.PUT("/:id", handlers.UpdatePortfolio)
		portfolios.DELETE("/:id", handlers.DeletePortfolio)

		portfolios.POST("/thumbnail", handlers.UploadPortfolioThumbnail)
		portfolios.POST("/gallery", handlers.UploadPortfolioGallery)
	}

	// Public showcase, no auth
	r.GET("/public/portfolios", handlers.ListPublicPortfolios)
	r.GET("/public/portfolios/:id", handlers.GetPublicPortfolio)
}
