package middleware

import (
	"net/http"

	"golang.org/x/time/rate"

	"blocknode/go-node/internal/config"
)

// RateLimit throttles requests to a single token bucket shared across all
// callers. The protocol's own retry loops (publish/register/proof) already
// create request bursts from a handful of peers; this exists to cap total
// load, not to police any one peer individually.
func RateLimit(cfg config.RateLimitConfig) Middleware {
	limiter := rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
