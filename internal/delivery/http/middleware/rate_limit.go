package middleware

import (
	"net/http"

	"craftsmatch-backend/internal/infrastructure/ratelimit"
	"craftsmatch-backend/pkg/logger"
	"craftsmatch-backend/pkg/utils"
)

// RateLimit rejects clients over their budget with 429. A limiter backend
// failure lets the request through.
func RateLimit(limiter ratelimit.Limiter) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, err := limiter.Allow(r.Context(), getClientIP(r))
			if err != nil {
				logger.WithContext(r.Context()).Warn().Err(err).Msg("rate limiter unavailable")
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				w.Header().Set("Retry-After", "1")
				utils.WriteError(w, http.StatusTooManyRequests, "Too Many Requests")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
