// Package ratelimit throttles clients by IP using httprate.
package ratelimit

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"

	"github.com/ayush/starwars-blog-api/internal/httpx"
	"github.com/ayush/starwars-blog-api/internal/logging"
	"github.com/ayush/starwars-blog-api/internal/metrics"
)

// Middleware limits each client IP to requests per window. A nil counter
// uses httprate's in-process counter. requests <= 0 disables limiting.
func Middleware(requests int, window time.Duration, counter httprate.LimitCounter) func(http.Handler) http.Handler {
	if requests <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	opts := []httprate.Option{
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(limitExceeded),
	}
	if counter != nil {
		opts = append(opts, httprate.WithLimitCounter(counter))
	}
	return httprate.Limit(requests, window, opts...)
}

func limitExceeded(w http.ResponseWriter, r *http.Request) {
	metrics.APIRateLimitHits.Inc()
	logging.Ctx(r.Context()).Warn().Str("remote", r.RemoteAddr).Msg("rate limit exceeded")
	httpx.WriteJSON(w, http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
}
