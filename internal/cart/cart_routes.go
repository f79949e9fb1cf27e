package cart

import (
	"github.com/gin-gonic/gin"

	"github.com/sanketpawarr68-jpg/gavran-magic/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	carts := r.Group("/cart")
	// guests keep carts too, keyed under the guest sentinel
	carts.Use(middleware.OptionalAuthMiddleware())
	carts.Use(middleware.RateLimitByUser(5, 10))
	{
		carts.GET("", handler.Detail)
		carts.DELETE("", handler.Clear)

		carts.POST("/items", handler.AddItem)

		items := carts.Group("/items/:productId")
		{
			items.PATCH("", handler.UpdateQty)
			items.DELETE("", handler.RemoveItem)
		}
	}
}
