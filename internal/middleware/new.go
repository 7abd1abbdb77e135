package middleware

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"

	"image-calendar-generator/config"
	"image-calendar-generator/pkg/log"
)

// rateLimiterCacheSize bounds how many client IPs keep a live limiter.
// Least recently seen clients are evicted first.
const rateLimiterCacheSize = 4096

type Middleware struct {
	l        log.Logger
	cors     config.CORSConfig
	rl       config.RateLimitConfig
	limiters *lru.Cache[string, *rate.Limiter]
}

func New(l log.Logger, corsCfg config.CORSConfig, rlCfg config.RateLimitConfig) Middleware {
	limiters, err := lru.New[string, *rate.Limiter](rateLimiterCacheSize)
	if err != nil {
		// Only reachable with a non-positive size constant.
		panic(err)
	}
	return Middleware{
		l:        l,
		cors:     corsCfg,
		rl:       rlCfg,
		limiters: limiters,
	}
}
