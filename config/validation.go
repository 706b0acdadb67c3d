package config

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks the configuration for values the application cannot run with
func ValidateConfig(cfg *Config) error {
	var errs []error
	invalid := func(field, format string, args ...interface{}) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if cfg.ServerPort == "" {
		invalid("SERVER_PORT", "must not be empty")
	}

	switch cfg.DBDriver {
	case "postgres":
		if cfg.DBHost == "" || cfg.DBName == "" {
			invalid("DB_HOST", "postgres driver requires DB_HOST and DB_NAME")
		}
	case "sqlite":
		if cfg.DBPath == "" {
			invalid("DB_PATH", "sqlite driver requires a database path")
		}
	default:
		invalid("DB_DRIVER", "unsupported driver %q", cfg.DBDriver)
	}

	switch cfg.SessionStore {
	case SessionStoreMemory, SessionStoreRedis:
	case SessionStoreCookie:
		if cfg.SessionSecret == "" {
			invalid("SESSION_SECRET", "cookie session store requires a signing secret")
		}
	default:
		invalid("SESSION_STORE", "unsupported session store %q", cfg.SessionStore)
	}

	if cfg.SessionTTL <= 0 {
		invalid("SESSION_TTL", "must be positive")
	}
	if cfg.SessionCookieName == "" {
		invalid("SESSION_COOKIE_NAME", "must not be empty")
	}

	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		invalid("BCRYPT_COST", "must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}

	if cfg.ViewMode != ViewModeHTML && cfg.ViewMode != ViewModeJSON {
		invalid("VIEW_MODE", "unsupported view mode %q", cfg.ViewMode)
	}

	if cfg.Env == Production {
		if cfg.SessionSecret == "" || cfg.SessionSecret == DefaultSessionSecret {
			invalid("SESSION_SECRET", "a non-default secret is required in production")
		}
		if !cfg.SessionSecureCookie {
			invalid("SESSION_SECURE_COOKIE", "secure cookies are required in production")
		}
	}

	return errors.Join(errs...)
}
