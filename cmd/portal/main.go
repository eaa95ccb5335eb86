package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/perpuskita/library-portal/internal/api"
	"github.com/perpuskita/library-portal/internal/infrastructure/config"
	redisdb "github.com/perpuskita/library-portal/internal/infrastructure/db/redis"
	"github.com/perpuskita/library-portal/internal/upstream"
	"github.com/perpuskita/library-portal/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title           Library Member Portal API
// @version         1.0
// @description     Server-side portal for the library backend: catalogue, loans, room bookings, announcements and memberships.
// @BasePath        /
func main() {
	// A missing .env is fine: production supplies real environment variables.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.Production(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis connection failed")
	}
	defer rdb.Close()

	client := upstream.NewClient(upstream.Config{
		BaseURL: cfg.Upstream.BaseURL,
		Timeout: cfg.Upstream.Timeout,
	}, log)

	e := api.NewRouter(cfg, client, rdb, log)

	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("upstream", cfg.Upstream.BaseURL).
			Str("env", cfg.Env).
			Msg("portal listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("portal stopped")
}
