package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration. It is loaded once at process
// start and passed to constructors; nothing reads the environment after
// Load returns.
type Config struct {
	DatabaseURL    string
	JWTSecret      string
	TokenTTL       time.Duration
	Port           int
	ClientOrigin   string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	AuthRateLimit  int
	AuthRateWindow time.Duration
}

const (
	defaultTokenTTL       = 30 * 24 * time.Hour
	defaultPort           = 8080
	defaultClientOrigin   = "http://localhost:3000"
	defaultRedisAddr      = "localhost:6379"
	defaultAuthRateLimit  = 20
	defaultAuthRateWindow = time.Minute
)

// Load reads configuration from the environment, with an optional .env
// file for development. DATABASE_URL and JWT_SECRET are required.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		TokenTTL:       defaultTokenTTL,
		Port:           defaultPort,
		ClientOrigin:   defaultClientOrigin,
		RedisAddr:      defaultRedisAddr,
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		AuthRateLimit:  defaultAuthRateLimit,
		AuthRateWindow: defaultAuthRateWindow,
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	if v := os.Getenv("JWT_EXPIRY"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT_EXPIRY %q: %w", v, err)
		}
		cfg.TokenTTL = ttl
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Port = port
	}
	if v := os.Getenv("CLIENT_ORIGIN"); v != "" {
		cfg.ClientOrigin = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB %q: %w", v, err)
		}
		cfg.RedisDB = db
	}
	if v := os.Getenv("AUTH_RATE_LIMIT"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid AUTH_RATE_LIMIT %q: %w", v, err)
		}
		cfg.AuthRateLimit = limit
	}
	if v := os.Getenv("AUTH_RATE_WINDOW"); v != "" {
		window, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid AUTH_RATE_WINDOW %q: %w", v, err)
		}
		cfg.AuthRateWindow = window
	}

	return cfg, nil
}
