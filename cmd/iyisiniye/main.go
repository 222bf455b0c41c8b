package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/FeritTasdildiren/iyisiniye/internal/config"
	dbPostgres "github.com/FeritTasdildiren/iyisiniye/internal/db/postgres"
	dbRedis "github.com/FeritTasdildiren/iyisiniye/internal/db/redis"
	logpkg "github.com/FeritTasdildiren/iyisiniye/internal/logger"
	"github.com/FeritTasdildiren/iyisiniye/internal/metrics"
	"github.com/FeritTasdildiren/iyisiniye/internal/repository/searchcache"
	venuerepo "github.com/FeritTasdildiren/iyisiniye/internal/repository/venue"
	chiTransport "github.com/FeritTasdildiren/iyisiniye/internal/transport/chi"
	healthuc "github.com/FeritTasdildiren/iyisiniye/internal/usecase/health"
	searchuc "github.com/FeritTasdildiren/iyisiniye/internal/usecase/search"
	suggestuc "github.com/FeritTasdildiren/iyisiniye/internal/usecase/suggest"
	venueuc "github.com/FeritTasdildiren/iyisiniye/internal/usecase/venue"
	"github.com/FeritTasdildiren/iyisiniye/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting iyisiniye API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("cache_addrs", cfg.Cache.Addrs),
	)

	ctx := context.Background()

	// Relational storage is load-bearing; refuse to start without it.
	pool, err := dbPostgres.NewPool(ctx, dbPostgres.Config{
		DSN:      cfg.Postgres.DSN,
		MaxConns: cfg.Postgres.MaxConns,
	})
	if err != nil {
		logger.Fatal("Failed to create postgres pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.WaitForReady(ctx, time.Duration(cfg.Postgres.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Postgres not ready", zap.Error(err))
	}
	logger.Info("Connected to postgres")

	// The cache is an accelerator. A backend that never comes up still lets
	// the server start; every lookup just misses.
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Cache.Addrs,
		Username: cfg.Cache.Username,
		Password: cfg.Cache.Password,
		DB:       cfg.Cache.DB,
	})
	if err != nil {
		logger.Fatal("Failed to create cache store", zap.Error(err))
	}
	defer store.Close()

	if err := store.WaitForReady(ctx, time.Duration(cfg.Cache.ReadinessTimeout)*time.Second); err != nil {
		logger.Warn("Cache not ready, continuing degraded", zap.Error(err))
	} else {
		logger.Info("Connected to cache")
	}

	// Register search metrics explicitly (no init())
	metrics.RegisterSearchMetrics()

	// Repositories
	repo := venuerepo.New(pool, metrics.StorageQueryDuration)
	cache := searchcache.New(store, cfg.Cache.KeyPrefix, searchcache.TTLConfig{
		Search:  time.Duration(cfg.Cache.SearchTTLSec) * time.Second,
		Detail:  time.Duration(cfg.Cache.DetailTTLSec) * time.Second,
		Suggest: time.Duration(cfg.Cache.SuggestTTLSec) * time.Second,
	}, metrics.CacheLookupsTotal, logger)

	// Use case services
	searchSvc := searchuc.New(repo, cache, metrics.SearchRequestsTotal)
	venueSvc := venueuc.New(repo, cache, metrics.InvalidationsTotal)
	suggestSvc := suggestuc.New(repo, cache, cfg.Search.SuggestLimit)
	healthSvc := healthuc.New(pool, store)

	// HTTP server
	server := chiTransport.NewServer(searchSvc, venueSvc, suggestSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	server.Routes(r, cfg.Auth.InternalAPIKeys)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.String("cache", ww.Header().Get("X-Cache")),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
