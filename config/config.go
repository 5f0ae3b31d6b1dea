package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// Cache configuration
	CacheDriver string
	CacheTTL    time.Duration

	// JWT configuration
	JWTSecret string

	// Mutation rate limiting, per user
	RateLimit       int
	RateLimitWindow time.Duration

	CORSOrigins []string
	LogLevel    string
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	CacheRedis  = "redis"
	CacheMemory = "memory"
	CacheNone   = "none"
)

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{}

	switch env {
	case CI:
		loadCIConfig(cfg)
	case Development, Test:
		loadDevConfig(cfg)
	case Production:
		loadProdConfig(cfg)
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	if err := loadTunables(cfg); err != nil {
		return nil, err
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadCIConfig reads everything, secrets included, from the environment
func loadCIConfig(cfg *Config) {
	loadCommon(cfg)
	cfg.DBPassword = os.Getenv("DB_PASSWORD")
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
}

// loadDevConfig prefers Docker secrets and falls back to the environment,
// defaulting to a local sqlite file and the in-process cache
func loadDevConfig(cfg *Config) {
	loadCommon(cfg)
	cfg.DBDriver = getEnv("DB_DRIVER", DriverSQLite)
	cfg.CacheDriver = getEnv("CACHE_DRIVER", CacheMemory)
	cfg.DBPassword = secretOrEnv("db_password", "DB_PASSWORD")
	cfg.JWTSecret = secretOrEnv("jwt_secret", "JWT_SECRET")
	cfg.RedisPassword = secretOrEnv("redis_password", "REDIS_PASSWORD")
}

// loadProdConfig reads sensitive values from Docker secrets only
func loadProdConfig(cfg *Config) {
	loadCommon(cfg)
	cfg.DBUser = getEnv("DB_USER", readSecret("db_user"))
	cfg.DBPassword = readSecret("db_password")
	cfg.JWTSecret = readSecret("jwt_secret")
	cfg.RedisPassword = readSecret("redis_password")
	if url := readSecret("redis_url"); url != "" {
		cfg.RedisURL = url
	}
}

func loadCommon(cfg *Config) {
	cfg.ServerPort = getEnv("SERVER_PORT", "8080")
	cfg.ServerHost = getEnv("SERVER_HOST", "0.0.0.0")
	cfg.DBDriver = getEnv("DB_DRIVER", DriverPostgres)
	cfg.DBHost = os.Getenv("DB_HOST")
	cfg.DBPort = getEnv("DB_PORT", "5432")
	cfg.DBUser = os.Getenv("DB_USER")
	cfg.DBName = os.Getenv("DB_NAME")
	cfg.DBSSLMode = getEnv("DB_SSL_MODE", "disable")
	cfg.SQLitePath = getEnv("SQLITE_PATH", "recipedia.db")
	cfg.RedisHost = getEnv("REDIS_HOST", "localhost")
	cfg.RedisPort = getEnv("REDIS_PORT", "6379")
	cfg.RedisURL = os.Getenv("REDIS_URL")
	cfg.CacheDriver = getEnv("CACHE_DRIVER", CacheRedis)
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.CORSOrigins = splitList(getEnv("CORS_ORIGINS", "http://localhost:5173"))
}

// loadTunables parses the numeric and duration settings shared by every environment
func loadTunables(cfg *Config) error {
	var err error
	if cfg.RedisDB, err = getInt("REDIS_DB", 0); err != nil {
		return err
	}
	if cfg.RateLimit, err = getInt("RATE_LIMIT", 60); err != nil {
		return err
	}
	if cfg.CacheTTL, err = getDuration("CACHE_TTL", time.Hour); err != nil {
		return err
	}
	if cfg.RateLimitWindow, err = getDuration("RATE_LIMIT_WINDOW", time.Minute); err != nil {
		return err
	}
	return nil
}

// PostgresDSN builds the lib/pq connection string
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// Addr is the listen address of the HTTP server
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, ValidationError{Field: key, Message: "must be an integer"}
	}
	return n, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, ValidationError{Field: key, Message: "must be a duration such as 90s or 1h"}
	}
	return d, nil
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func secretOrEnv(secret, env string) string {
	if v := readSecret(secret); v != "" {
		return v
	}
	return os.Getenv(env)
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
