package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/sanketpawarr68-jpg/gavran-magic/internal/pkg/response"
)

const idempotencyLockTTL = 30 * time.Second

// Idempotency guards checkout against accidental double submission. A client
// sending an Idempotency-Key header gets at most one in-flight request per
// key; a replay of a finished request is served from the cached response.
// Handlers release the lock and fill the cache via the keys placed in the
// context.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("Idempotency-Key")
		if key == "" {
			c.Next()
			return
		}

		userID := UserID(c)
		cacheKey := "idem:resp:" + userID + ":" + key
		lockKey := "idem:lock:" + userID + ":" + key

		ctx := c.Request.Context()

		if cached, err := rdb.Get(ctx, cacheKey).Result(); err == nil {
			c.Data(http.StatusOK, "application/json", []byte(cached))
			c.Abort()
			return
		}

		ok, err := rdb.SetNX(ctx, lockKey, "1", idempotencyLockTTL).Result()
		if err != nil {
			// Redis down must not block checkout, proceed without the guard.
			c.Next()
			return
		}
		if !ok {
			response.Error(c, http.StatusConflict, "DUPLICATE_REQUEST", "A request with this idempotency key is already in progress", nil)
			c.Abort()
			return
		}

		c.Set("idempotency_lock_key", lockKey)
		c.Set("idempotency_cache_key", cacheKey)
		c.Next()
	}
}
