// Package config reads the service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Sternrassler/strapi-client/pkg/content"
	"github.com/Sternrassler/strapi-client/pkg/logging"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// Cache backends.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config collects everything the binaries need to start.
type Config struct {
	StrapiURL   string
	StrapiToken string
	Schema      content.Schema

	CacheTTL     time.Duration
	CacheBackend string
	RedisURL     string

	// PageConcurrency bounds parallel page fetches for whole-collection reads.
	PageConcurrency int

	LogLevel  logging.LogLevel
	LogPretty bool

	Port       string
	ListenAddr string
	GinMode    string
}

// Load reads .env (when present) and then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv reads the configuration from the environment only.
func FromEnv() (Config, error) {
	cfg := Config{
		StrapiURL:    getEnv("STRAPI_URL", "http://localhost:1337"),
		StrapiToken:  getEnv("STRAPI_API_TOKEN", ""),
		CacheBackend: strings.ToLower(getEnv("CACHE_BACKEND", BackendMemory)),
		RedisURL:     getEnv("REDIS_URL", "localhost:6379"),
		Port:         getEnv("PORT", "8080"),
		GinMode:      getEnv("GIN_MODE", "release"),
	}
	cfg.ListenAddr = getEnv("LISTEN_ADDR", ":"+cfg.Port)

	schema, err := content.ParseSchema(getEnv("STRAPI_SCHEMA", string(content.SchemaV5)))
	if err != nil {
		return Config{}, fmt.Errorf("STRAPI_SCHEMA: %w", err)
	}
	cfg.Schema = schema

	ttl, err := time.ParseDuration(getEnv("CACHE_TTL", "5m"))
	if err != nil {
		return Config{}, fmt.Errorf("CACHE_TTL: %w", err)
	}
	if ttl <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be positive (got %s)", ttl)
	}
	cfg.CacheTTL = ttl

	switch cfg.CacheBackend {
	case BackendMemory, BackendRedis:
	default:
		return Config{}, fmt.Errorf("CACHE_BACKEND must be %q or %q (got %q)", BackendMemory, BackendRedis, cfg.CacheBackend)
	}

	cfg.PageConcurrency, err = strconv.Atoi(getEnv("CMS_PAGE_CONCURRENCY", "4"))
	if err != nil || cfg.PageConcurrency < 1 {
		return Config{}, fmt.Errorf("CMS_PAGE_CONCURRENCY must be a positive integer")
	}

	cfg.LogLevel, err = logging.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	if v := getEnv("LOG_PRETTY", ""); v != "" {
		cfg.LogPretty, err = strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("LOG_PRETTY: %w", err)
		}
	}

	return cfg, nil
}

// RedisOptions converts RedisURL into client options. Both redis:// URLs and
// bare host:port addresses are accepted.
func (c Config) RedisOptions() (*redis.Options, error) {
	if strings.Contains(c.RedisURL, "://") {
		opts, err := redis.ParseURL(c.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("REDIS_URL: %w", err)
		}
		return opts, nil
	}
	return &redis.Options{Addr: c.RedisURL}, nil
}

// Logging returns the logger configuration.
func (c Config) Logging() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = c.LogLevel
	cfg.Pretty = c.LogPretty
	return cfg
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
