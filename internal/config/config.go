package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config agrupa la configuración del servicio, leída de variables de entorno.
type Config struct {
	Port string

	// DB_DSN vacío = repos en memoria.
	DatabaseDSN string

	Redis struct {
		Addr     string // vacío = cache en memoria
		Password string
		DB       int
	}

	Log struct {
		Level  string
		Format string
	}

	AppName string

	// AUTH_INTROSPECT_URL vacío = modo dev (solo X-Debug-User-ID).
	AuthIntrospectURL string

	DashboardCacheTTL time.Duration
}

// Load lee .env (si existe) y luego el entorno. Las variables ya definidas ganan.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}

	cfg.Port = getEnv("PORT", "8080")
	cfg.DatabaseDSN = getEnv("DB_DSN", "")

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil || redisDB < 0 {
		return nil, fmt.Errorf("invalid REDIS_DB %q", os.Getenv("REDIS_DB"))
	}
	cfg.Redis.DB = redisDB

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")
	cfg.AppName = getEnv("APP_NAME", "sow-breeding-records")

	cfg.AuthIntrospectURL = getEnv("AUTH_INTROSPECT_URL", "")

	ttl, err := time.ParseDuration(getEnv("DASHBOARD_CACHE_TTL", "30s"))
	if err != nil || ttl < 0 {
		return nil, fmt.Errorf("invalid DASHBOARD_CACHE_TTL %q", os.Getenv("DASHBOARD_CACHE_TTL"))
	}
	cfg.DashboardCacheTTL = ttl

	return cfg, nil
}

// Addr es la dirección de escucha del servidor HTTP.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
