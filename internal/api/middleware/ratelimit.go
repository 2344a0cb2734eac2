package middleware

import (
	"net/http"

	"github.com/textlens/text-analysis-platform/internal/auth/ratelimit"
)

// RateLimit returns middleware that enforces per-key rate limits using the
// key's configured rate_limit value. Requests without key info pass
// through; the Auth middleware is responsible for rejecting them.
func RateLimit(limiter *ratelimit.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limiter == nil || exemptPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			info := GetKeyInfo(r.Context())
			if info == nil {
				next.ServeHTTP(w, r)
				return
			}

			if !limiter.Allow(info.ID, info.RateLimit) {
				w.Header().Set("Retry-After", "60")
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
