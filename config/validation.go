package config

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in one pass
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, v := range e {
		msgs = append(msgs, v.Error())
	}
	return strings.Join(msgs, "\n")
}

// ErrMissingSecret marks a sensitive value that was not provided
var ErrMissingSecret = errors.New("required secret is not set")

// ValidateConfig checks the configuration against what the selected drivers need
func ValidateConfig(cfg *Config) error {
	var errs ValidationErrors
	add := func(field, msg string) {
		errs = append(errs, ValidationError{Field: field, Message: msg})
	}

	if cfg.ServerPort == "" {
		add("SERVER_PORT", "is required")
	}

	switch cfg.DBDriver {
	case DriverPostgres:
		for field, value := range map[string]string{
			"DB_HOST":     cfg.DBHost,
			"DB_PORT":     cfg.DBPort,
			"DB_USER":     cfg.DBUser,
			"DB_NAME":     cfg.DBName,
			"DB_PASSWORD": cfg.DBPassword,
		} {
			if value == "" {
				add(field, "is required for the postgres driver")
			}
		}
	case DriverSQLite:
		if cfg.SQLitePath == "" {
			add("SQLITE_PATH", "is required for the sqlite driver")
		}
	default:
		add("DB_DRIVER", fmt.Sprintf("unknown driver %q", cfg.DBDriver))
	}

	switch cfg.CacheDriver {
	case CacheRedis:
		if cfg.RedisURL == "" && cfg.RedisHost == "" {
			add("REDIS_HOST", "REDIS_URL or REDIS_HOST is required for the redis cache")
		}
	case CacheMemory, CacheNone:
	default:
		add("CACHE_DRIVER", fmt.Sprintf("unknown cache driver %q", cfg.CacheDriver))
	}

	if cfg.CacheTTL <= 0 {
		add("CACHE_TTL", "must be positive")
	}
	if cfg.RateLimit < 0 {
		add("RATE_LIMIT", "must not be negative")
	}
	if cfg.RateLimitWindow <= 0 {
		add("RATE_LIMIT_WINDOW", "must be positive")
	}

	if cfg.JWTSecret == "" {
		if GetEnvironment() == Production {
			add("jwt_secret", ErrMissingSecret.Error())
		} else {
			add("JWT_SECRET", "is required")
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
