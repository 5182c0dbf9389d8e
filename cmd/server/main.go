package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/studiolume/pos-backoffice/internal/api"
	"github.com/studiolume/pos-backoffice/internal/infrastructure/config"
	"github.com/studiolume/pos-backoffice/internal/infrastructure/db/postgres"
	"github.com/studiolume/pos-backoffice/internal/infrastructure/db/redis"
	"github.com/studiolume/pos-backoffice/pkg/logger"
)

// @title        POS Back Office API
// @version      1.0
// @description  Point-of-sale back office: clients, service catalog, sales ledger, and revenue summaries.
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx := context.Background()

	db, err := postgres.Connect(ctx, postgres.Config{
		DSN:          cfg.Postgres.DSN,
		MaxOpenConns: cfg.Postgres.MaxOpenConns,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer db.Close()

	if err := postgres.EnsureSchema(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure ledger schema")
	}

	// Redis is optional: without it, Idempotency-Key replay is disabled but
	// every other operation works.
	rdb, err := redis.Connect(ctx, redis.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, idempotent sale replay disabled")
		rdb = nil
	} else {
		defer rdb.Close()
	}

	if !cfg.AuthDisabled && cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required unless AUTH_DISABLED=true")
	}

	e := api.NewRouter(db, rdb, cfg, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}
