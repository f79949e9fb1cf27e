package tracking

import (
	"github.com/gin-gonic/gin"

	"github.com/sanketpawarr68-jpg/gavran-magic/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	tracking := r.Group("/tracking")
	tracking.Use(middleware.RateLimitByIP(10, 20))
	{
		tracking.GET("/orders/:orderId", handler.TrackOrder)
		tracking.POST("/orders/:orderId/cancel", handler.CancelOrder)
		tracking.GET("/orders", middleware.AuthMiddleware(), handler.RecentOrders)
		tracking.POST("/route", handler.Route)
		tracking.GET("/location", handler.Location)
	}
}
