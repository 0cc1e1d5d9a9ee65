package middleware

import (
	echomw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"storefront/config"
)

// NewAuthRateLimiter builds a per-client-IP token bucket limiter for the
// auth endpoints, bounding credential-guessing attempts. The router applies
// it only when rate limiting is enabled in configuration.
func NewAuthRateLimiter(cfg *config.Config) echomw.RateLimiterConfig {
	rps := rate.Limit(5)
	burst := 10
	if cfg.RateLimit != nil {
		if cfg.RateLimit.RPS > 0 {
			rps = rate.Limit(cfg.RateLimit.RPS)
		}
		if cfg.RateLimit.Burst > 0 {
			burst = cfg.RateLimit.Burst
		}
	}

	return echomw.RateLimiterConfig{
		Store: echomw.NewRateLimiterMemoryStoreWithConfig(echomw.RateLimiterMemoryStoreConfig{
			Rate:  rps,
			Burst: burst,
		}),
	}
}
