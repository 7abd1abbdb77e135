package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"image-calendar-generator/pkg/response"
)

// RateLimit throttles requests per client IP with a token bucket. The
// pipeline spends real money per request, so bursts from one client
// must not starve everyone else.
func (mw Middleware) RateLimit() gin.HandlerFunc {
	if mw.rl.PerMinute <= 0 {
		// Limiting disabled by config.
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !mw.limiterFor(ip).Allow() {
			mw.l.Warnf(c.Request.Context(), "rate limit exceeded for %s", ip)
			response.Error(c, http.StatusTooManyRequests, "too many requests, slow down")
			c.Abort()
			return
		}
		c.Next()
	}
}

// limiterFor returns the limiter for an IP, creating it on first
// sight. PeekOrAdd keeps concurrent first requests on one limiter.
func (mw Middleware) limiterFor(ip string) *rate.Limiter {
	limiter := rate.NewLimiter(rate.Limit(float64(mw.rl.PerMinute)/60.0), mw.burst())
	if previous, ok, _ := mw.limiters.PeekOrAdd(ip, limiter); ok {
		return previous
	}
	return limiter
}

func (mw Middleware) burst() int {
	if mw.rl.Burst > 0 {
		return mw.rl.Burst
	}
	return 1
}
