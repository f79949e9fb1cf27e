package checkout

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/sanketpawarr68-jpg/gavran-magic/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	// tight limit, double orders hurt more than a slow shopper
	r.POST("/checkout",
		middleware.OptionalAuthMiddleware(),
		middleware.RateLimitByUser(0.5, 2),
		middleware.Idempotency(rdb),
		handler.Checkout,
	)
}
