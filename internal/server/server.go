// Package server assembles the HTTP router.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/ayush/starwars-blog-api/internal/characters"
	"github.com/ayush/starwars-blog-api/internal/config"
	"github.com/ayush/starwars-blog-api/internal/favorites"
	"github.com/ayush/starwars-blog-api/internal/logging"
	"github.com/ayush/starwars-blog-api/internal/metrics"
	"github.com/ayush/starwars-blog-api/internal/planets"
	"github.com/ayush/starwars-blog-api/internal/ratelimit"
	"github.com/ayush/starwars-blog-api/internal/site"
	"github.com/ayush/starwars-blog-api/internal/store"
	"github.com/ayush/starwars-blog-api/internal/users"
	"github.com/ayush/starwars-blog-api/internal/vehicles"
)

// Options carries what the router needs beyond the store.
type Options struct {
	AllowedOrigins []string
	RateLimit      config.RateLimitConfig
	// LimitCounter shares rate limit state across replicas. Nil keeps it in process.
	LimitCounter httprate.LimitCounter
}

// NewRouter wires every handler onto a chi router.
func NewRouter(s store.Store, opts Options) http.Handler {
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(logging.RequestID)
	r.Use(chimw.RealIP)
	r.Use(logging.RequestLogger)
	r.Use(metrics.Middleware)
	r.Use(chimw.Recoverer)
	r.Use(chimw.StripSlashes)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", logging.RequestIDHeader},
		ExposedHeaders: []string{logging.RequestIDHeader},
		MaxAge:         300,
	}))
	r.Use(ratelimit.Middleware(opts.RateLimit.Requests, opts.RateLimit.Window, opts.LimitCounter))

	r.Handle("/metrics", metrics.Handler())
	site.NewHandler(s).RegisterRoutes(r)
	users.NewHandler(s).RegisterRoutes(r)
	characters.NewHandler(s).RegisterRoutes(r)
	planets.NewHandler(s).RegisterRoutes(r)
	vehicles.NewHandler(s).RegisterRoutes(r)
	favorites.NewHandler(s).RegisterRoutes(r)

	return r
}
