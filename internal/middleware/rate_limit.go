package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/sanketpawarr68-jpg/gavran-magic/internal/pkg/response"
)

type limiterPool struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
}

func (p *limiterPool) get(key string) *rate.Limiter {
	p.mu.Lock()
	defer p.mu.Unlock()

	if l, ok := p.limiters[key]; ok {
		return l
	}
	l := rate.NewLimiter(p.rps, p.burst)
	p.limiters[key] = l
	return l
}

func rateLimit(pool *limiterPool, keyFn func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !pool.get(keyFn(c)).Allow() {
			response.Error(c, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests, slow down", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RateLimitByUser throttles per authenticated user (guests share one bucket).
func RateLimitByUser(rps float64, burst int) gin.HandlerFunc {
	pool := &limiterPool{
		limiters: make(map[string]*rate.Limiter),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
	return rateLimit(pool, UserID)
}

// RateLimitByIP throttles per client address.
func RateLimitByIP(rps float64, burst int) gin.HandlerFunc {
	pool := &limiterPool{
		limiters: make(map[string]*rate.Limiter),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
	return rateLimit(pool, func(c *gin.Context) string { return c.ClientIP() })
}
