package product

import (
	"github.com/gin-gonic/gin"

	"github.com/sanketpawarr68-jpg/gavran-magic/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	products := r.Group("/products")
	products.Use(middleware.RateLimitByIP(20, 40))
	{
		products.GET("", handler.List)
		products.GET("/:productId", handler.Get)
	}
}
