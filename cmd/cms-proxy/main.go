package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Sternrassler/strapi-client/internal/config"
	"github.com/Sternrassler/strapi-client/pkg/cache"
	"github.com/Sternrassler/strapi-client/pkg/datamanager"
	"github.com/Sternrassler/strapi-client/pkg/logging"
	"github.com/Sternrassler/strapi-client/pkg/pagination"
	"github.com/Sternrassler/strapi-client/pkg/strapi"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const userAgent = "cms-proxy/0.1.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Setup(logging.DefaultConfig())
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	logging.Setup(cfg.Logging())
	logger := logging.NewLogger("cms-proxy")

	client, err := strapi.New(strapi.Config{
		BaseURL:   cfg.StrapiURL,
		Token:     cfg.StrapiToken,
		Schema:    cfg.Schema,
		UserAgent: userAgent,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create CMS client")
	}

	var (
		store     cache.Store
		readiness pinger
	)
	switch cfg.CacheBackend {
	case config.BackendRedis:
		opts, err := cfg.RedisOptions()
		if err != nil {
			logger.Fatal().Err(err).Msg("Invalid Redis configuration")
		}
		redisClient := redis.NewClient(opts)
		defer redisClient.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = redisClient.Ping(ctx).Err()
		cancel()
		if err != nil {
			logger.Fatal().Err(err).Str("addr", opts.Addr).Msg("Failed to connect to Redis")
		}
		logger.Info().Str("addr", opts.Addr).Msg("Connected to Redis")

		redisStore := cache.NewRedisStore(redisClient, "")
		store, readiness = redisStore, redisStore
	default:
		store = cache.NewMemoryStore()
	}

	srv := &server{
		client: client,
		data:   datamanager.New(client, store, datamanager.Config{TTL: cfg.CacheTTL}),
		ready:  readiness,
		pages: pagination.Config{
			MaxConcurrency: cfg.PageConcurrency,
			Timeout:        pagination.DefaultConfig().Timeout,
		},
		logger: logger,
	}

	gin.SetMode(cfg.GinMode)
	httpServer := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           srv.router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info().
			Str("addr", cfg.ListenAddr).
			Str("strapi_url", client.BaseURL()).
			Str("schema", string(cfg.Schema)).
			Str("cache_backend", cfg.CacheBackend).
			Dur("cache_ttl", cfg.CacheTTL).
			Msg("Starting CMS proxy")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Server failed")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Shutdown failed")
		return
	}
	logger.Info().Msg("Server stopped")
}
