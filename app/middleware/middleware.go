package appMiddleware

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"

	"github.com/FACorreiaa/tripmate-api/internal/api"
)

// RateLimit allows perMinute requests per client IP. Zero or less disables it.
// RealIP should run first so proxied clients are told apart.
func RateLimit(perMinute int) func(next http.Handler) http.Handler {
	if perMinute <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(
		perMinute,
		time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByRealIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			api.ErrorResponse(w, r, http.StatusTooManyRequests, "rate_limited")
		}),
	)
}
