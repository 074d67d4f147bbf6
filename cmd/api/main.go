package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sow-breeding-records/internal/adapters/auth/introspect"
	pg "sow-breeding-records/internal/adapters/storage/postgres"
	"sow-breeding-records/internal/config"
	"sow-breeding-records/internal/platform/cache"
	"sow-breeding-records/internal/platform/logger"
	"sow-breeding-records/internal/ports/auth"
	"sow-breeding-records/internal/router"

	"go.uber.org/zap"
)

// @title Sow Breeding Records API
// @version 1.0
// @description Registro reproductivo de cerdas: eventos, paridad, medios históricos y agenda.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format, App: cfg.AppName})
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Sin DB_DSN o si no conecta: repos en memoria (modo dev)
	var db *sql.DB
	if cfg.DatabaseDSN != "" {
		opened, err := pg.Open(cfg.DatabaseDSN)
		if err != nil {
			log.Warn("postgres unavailable, using in-memory storage", zap.Error(err))
		} else {
			db = opened
			defer db.Close()
			if err := pg.Migrate(ctx, db); err != nil {
				log.Fatal("migrate failed", zap.Error(err))
			}
		}
	}

	var kv cache.KVStore
	if cfg.Redis.Addr != "" {
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		client, err := cache.NewRedisClient(pingCtx, cache.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		cancel()
		if err != nil {
			log.Warn("redis unavailable, using in-memory cache", zap.Error(err))
		} else {
			defer client.Close()
			kv = cache.NewRedisKVStore(client)
		}
	}

	var verifier auth.AuthVerifier // nil = modo dev (X-Debug-User-ID)
	if cfg.AuthIntrospectURL != "" {
		verifier = introspect.NewVerifier(introspect.NewClient(introspect.Config{URL: cfg.AuthIntrospectURL}))
	}

	r := router.NewRouter(router.Options{
		AuthVerifier: verifier,
		DB:           db,
		KV:           kv,
		DashboardTTL: cfg.DashboardCacheTTL,
		Logger:       log,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown failed", zap.Error(err))
		}
	}()

	log.Info("starting server",
		zap.String("addr", srv.Addr),
		zap.Bool("postgres", db != nil),
		zap.Bool("redis", kv != nil),
		zap.Bool("auth", verifier != nil),
	)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("server error", zap.Error(err))
	}
	log.Info("server stopped")
}
