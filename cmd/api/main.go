package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"mediashelf-api/internal/cache"
	"mediashelf-api/internal/handlers"
	"mediashelf-api/internal/httpserver"
	"mediashelf-api/internal/identity"
	"mediashelf-api/internal/media"
	"mediashelf-api/internal/metrics"
	"mediashelf-api/internal/openlibrary"
	"mediashelf-api/internal/recs"
	"mediashelf-api/internal/tmdb"
	"mediashelf-api/internal/userdata"
	"mediashelf-api/pkg/logging"
)

type Config struct {
	Port           string
	CacheBackend   string // "memory" or "redis"
	CacheTTL       time.Duration
	RedisAddr      string
	AllowedOrigins []string

	TMDBAPIKey   string
	OpenAIAPIKey string

	AuthBaseURL    string
	AuthServiceKey string
}

func LoadConfig() Config {
	ttlSeconds, err := strconv.Atoi(getenv("CACHE_TTL_SECONDS", "3600"))
	if err != nil || ttlSeconds <= 0 {
		ttlSeconds = 3600
	}

	return Config{
		Port:           getenv("PORT", "8000"),
		CacheBackend:   getenv("CACHE_BACKEND", "memory"),
		CacheTTL:       time.Duration(ttlSeconds) * time.Second,
		RedisAddr:      getenv("REDIS_ADDR", "127.0.0.1:6379"),
		AllowedOrigins: strings.Split(getenv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:3001"), ","),
		TMDBAPIKey:     os.Getenv("TMDB_API_KEY"),
		OpenAIAPIKey:   os.Getenv("OPENAI_API_KEY"),
		AuthBaseURL:    os.Getenv("SUPABASE_URL"),
		AuthServiceKey: os.Getenv("SUPABASE_SERVICE_KEY"),
	}
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("api exited with error: %v", err)
	}
}

func run() error {
	// ----- Logger -----
	logger := logging.DefaultLogger()
	defer logger.Sync()

	// ----- Metrics -----
	metrics.Register()

	// ----- Config -----
	cfg := LoadConfig()

	logger.Info("loaded config",
		zap.String("port", cfg.Port),
		zap.String("cache_backend", cfg.CacheBackend),
		zap.Duration("cache_ttl", cfg.CacheTTL),
		zap.Bool("tmdb_configured", cfg.TMDBAPIKey != ""),
		zap.Bool("openai_configured", cfg.OpenAIAPIKey != ""),
		zap.Bool("auth_configured", cfg.AuthBaseURL != "" && cfg.AuthServiceKey != ""),
	)

	// ----- Redis client (only if needed) -----
	var redisClient *redis.Client
	if cfg.CacheBackend == "redis" {
		redisClient = redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
		})

		// Fail fast if Redis is misconfigured
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Error("redis connection failed", zap.Error(err))
			return err
		}
		logger.Info("redis connection established",
			zap.String("addr", cfg.RedisAddr),
		)
	}

	// ----- Cache -----
	store := cache.NewStore(cache.Config{
		Backend: cfg.CacheBackend,
		TTL:     cfg.CacheTTL,
		Prefix:  "mediashelf",
	}, redisClient)
	store = cache.NewLoggingStore(store)

	// ----- Providers -----
	// TMDB is optional: without a key, trending lists fall back to mock
	// data and movie/tv detail lookups report the missing credential.
	var movieProvider media.MovieTVProvider
	if cfg.TMDBAPIKey != "" {
		tmdbClient, err := tmdb.NewClient(tmdb.Config{
			APIKey: cfg.TMDBAPIKey,
		}, logger)
		if err != nil {
			return err
		}
		defer tmdbClient.Close()
		movieProvider = tmdbClient
	} else {
		logger.Warn("TMDB_API_KEY not set, serving fallback trending data")
	}

	bookClient := openlibrary.NewClient(openlibrary.Config{}, logger)
	defer bookClient.Close()

	catalog := media.NewCatalog(store, cfg.CacheTTL, movieProvider, bookClient)

	// ----- Recommendations (optional) -----
	var recommender handlers.Recommender
	if cfg.OpenAIAPIKey != "" {
		recsClient, err := recs.NewClient(recs.Config{
			APIKey: cfg.OpenAIAPIKey,
		}, logger)
		if err != nil {
			return err
		}
		defer recsClient.Close()
		recommender = recsClient
	}

	// ----- Identity + user store (optional) -----
	var verifier identity.Verifier
	var userHandler *handlers.UserHandler
	if cfg.AuthBaseURL != "" && cfg.AuthServiceKey != "" {
		v, err := identity.NewHTTPVerifier(identity.Config{
			BaseURL: cfg.AuthBaseURL,
			APIKey:  cfg.AuthServiceKey,
		}, logger)
		if err != nil {
			return err
		}
		verifier = v

		userStore, err := userdata.NewStore(userdata.Config{
			BaseURL:    cfg.AuthBaseURL,
			ServiceKey: cfg.AuthServiceKey,
		}, logger)
		if err != nil {
			return err
		}
		userHandler = handlers.NewUserHandler(userStore)
	} else {
		logger.Warn("auth service not configured, user routes disabled")
	}

	// ----- Handlers -----
	catalogHandler := handlers.NewCatalogHandler(catalog)
	recsHandler := handlers.NewRecsHandler(recommender)

	// ----- Router + middleware -----
	r := chi.NewRouter()
	httpserver.SetupRouter(r, logger, catalogHandler, userHandler, recsHandler, verifier, cfg.AllowedOrigins)

	// ----- HTTP server -----
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	logger.Info("starting api",
		zap.String("addr", srv.Addr),
		zap.String("cache_backend", cfg.CacheBackend),
	)

	// Start server in background
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", zap.Error(err))
		}
	}()

	// ----- Graceful shutdown -----
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
		return err
	}

	logger.Info("server shutdown complete")
	return nil
}

// getenv returns the value of the environment variable key or def if not set.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
