package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/httprate"

	"github.com/ayush/starwars-blog-api/internal/config"
	"github.com/ayush/starwars-blog-api/internal/logging"
	"github.com/ayush/starwars-blog-api/internal/ratelimit"
	"github.com/ayush/starwars-blog-api/internal/server"
	"github.com/ayush/starwars-blog-api/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.L().Fatal().Err(err).Msg("load config")
	}
	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	log := logging.L()
	ctx := context.Background()

	// ── Store ────────────────────────────────────────────────
	var st store.Store
	if cfg.UseMemoryStore() {
		log.Warn().Msg("DATABASE_URL not set, using in-memory store")
		st = store.NewMemoryStore()
	} else {
		pool, err := store.Connect(ctx, cfg.Database.URL, cfg.Database.MaxConns)
		if err != nil {
			log.Fatal().Err(err).Msg("postgres connect")
		}
		defer pool.Close()
		pg := store.NewPostgresStore(pool)
		if err := pg.Migrate(ctx); err != nil {
			log.Fatal().Err(err).Msg("postgres migrate")
		}
		st = pg
	}

	// ── Redis (optional rate limit counter) ─────────────────
	var counter httprate.LimitCounter
	if cfg.Redis.Addr != "" {
		rdb, err := ratelimit.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password)
		if err != nil {
			log.Fatal().Err(err).Msg("redis connect")
		}
		defer rdb.Close()
		counter = ratelimit.NewRedisCounter(rdb, "starwars:ratelimit")
	}

	// ── Router ───────────────────────────────────────────────
	handler := server.NewRouter(st, server.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		RateLimit:      cfg.RateLimit,
		LimitCounter:   counter,
	})

	// ── Server ───────────────────────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}
