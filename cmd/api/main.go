package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"property-dcf/internal/api"
	"property-dcf/internal/cache"
	"property-dcf/internal/dcf"
	"property-dcf/internal/logging"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Values from .env (or ENV_FILE) never override the real environment.
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "load %s: %v\n", envFile, err)
		os.Exit(1)
	}

	// Get configuration from environment
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}
	production := os.Getenv("API_ENV") == "production"

	logger, err := logging.New(logging.Config{
		Level:       os.Getenv("LOG_LEVEL"),
		Development: !production,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if production {
		gin.SetMode(gin.ReleaseMode)
	}

	ttl := time.Hour
	if s := os.Getenv("RESULT_CACHE_TTL"); s != "" {
		if parsed, err := time.ParseDuration(s); err == nil {
			ttl = parsed
		} else {
			logger.Warn("ignoring invalid RESULT_CACHE_TTL", zap.String("value", s), zap.Error(err))
		}
	}

	store := newStore(logger, ttl)
	defer func() { _ = store.Close() }()

	staticDir := os.Getenv("STATIC_DIR")
	if staticDir == "" {
		staticDir = "./web/dist"
	}

	router := api.NewRouter(api.Deps{
		Engine:      dcf.New(dcf.WithLogger(logger)),
		Store:       store,
		PresetDir:   os.Getenv("PRESET_DIR"),
		StaticDir:   staticDir,
		CORSOrigins: splitList(os.Getenv("CORS_ORIGINS")),
		Logger:      logger,
	})

	// Start server
	addr := fmt.Sprintf(":%s", port)
	logger.Info("starting API server", zap.String("addr", addr), zap.Duration("result_ttl", ttl))
	if err := router.Run(addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

// newStore uses Redis when REDIS_ADDR is set and reachable, memory otherwise.
func newStore(logger *zap.Logger, ttl time.Duration) cache.Store {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rs := cache.NewRedisStore(addr, ttl)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		err := rs.Ping(ctx)
		if err == nil {
			logger.Info("using redis result store", zap.String("addr", addr))
			return rs
		}
		logger.Warn("redis unreachable, falling back to memory store", zap.String("addr", addr), zap.Error(err))
		_ = rs.Close()
	}
	return cache.NewMemoryStore(ttl, 5*time.Minute)
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
