package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/advsearch/internal/config"
	dbElastic "github.com/kailas-cloud/advsearch/internal/db/elastic"
	dbRedis "github.com/kailas-cloud/advsearch/internal/db/redis"
	"github.com/kailas-cloud/advsearch/internal/domain/search/request"
	logpkg "github.com/kailas-cloud/advsearch/internal/logger"
	"github.com/kailas-cloud/advsearch/internal/metrics"
	searchrepo "github.com/kailas-cloud/advsearch/internal/repository/search"
	"github.com/kailas-cloud/advsearch/internal/repository/valuecache"
	chiTransport "github.com/kailas-cloud/advsearch/internal/transport/chi"
	healthuc "github.com/kailas-cloud/advsearch/internal/usecase/health"
	searchuc "github.com/kailas-cloud/advsearch/internal/usecase/search"
	"github.com/kailas-cloud/advsearch/internal/version"
)

func main() {
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

	logger.Info("Starting advsearch API server",
		zap.String("version", version.String()),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("elastic_addrs", cfg.Elastic.Addresses),
		zap.String("elastic_index", cfg.Elastic.Index),
		zap.Bool("cache_enabled", cfg.Cache.Enabled()),
	)

	catalog, err := cfg.Catalog()
	if err != nil {
		logger.Fatal("Invalid field catalog", zap.Error(err))
	}

	metrics.RegisterHTTPMetrics()
	metrics.RegisterIndexMetrics()

	index, err := dbElastic.NewStore(dbElastic.Config{
		Addresses: cfg.Elastic.Addresses,
		Username:  cfg.Elastic.Username,
		Password:  cfg.Elastic.Password,
		APIKey:    cfg.Elastic.APIKey,
		Index:     cfg.Elastic.Index,
	})
	if err != nil {
		logger.Fatal("Failed to create index client", zap.Error(err))
	}

	ctx := context.Background()
	if err := index.WaitForReady(ctx, time.Duration(cfg.Elastic.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Search index not ready", zap.Error(err))
	}
	logger.Info("Connected to search index")

	repo := searchrepo.New(index)

	// Pass nil interfaces, not typed nil pointers, when the cache is disabled.
	var values searchuc.ValueSource = repo
	var cachePinger healthuc.Pinger
	if cfg.Cache.Enabled() {
		cache, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Username: cfg.Cache.Username,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
		if err != nil {
			logger.Fatal("Failed to create cache client", zap.Error(err))
		}
		defer cache.Close()

		if err := cache.WaitForReady(ctx, time.Duration(cfg.Cache.ReadinessTimeout)*time.Second); err != nil {
			// Searches work without the cache; health reports degraded.
			logger.Warn("Cache not ready", zap.Error(err))
		}
		values = valuecache.New(repo, cache, time.Duration(cfg.Cache.TTLSec)*time.Second,
			metrics.ObserveCacheResult, logger)
		cachePinger = cache
	}

	var seeds searchuc.SeedSource = request.NewWeeklySeed(nil)
	if cfg.Search.FixedSeed != "" {
		seeds = request.FixedSeed(cfg.Search.FixedSeed)
	}

	searchSvc := searchuc.New(repo, values, catalog, cfg.SimilarityGroups(), seeds)
	healthSvc := healthuc.New(index, cachePinger)

	server := chiTransport.NewServer(searchSvc, healthSvc, catalog)
	router := chiTransport.NewRouter(server, cfg.Auth.APIKeys, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

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
