package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Env Environment `mapstructure:"-"`

	// Server configuration
	ServerHost string `mapstructure:"SERVER_HOST"`
	ServerPort string `mapstructure:"SERVER_PORT"`

	// Database configuration
	DBDriver       string `mapstructure:"DB_DRIVER"`
	DBHost         string `mapstructure:"DB_HOST"`
	DBPort         string `mapstructure:"DB_PORT"`
	DBUser         string `mapstructure:"DB_USER"`
	DBPassword     string `mapstructure:"DB_PASSWORD"`
	DBName         string `mapstructure:"DB_NAME"`
	DBSSLMode      string `mapstructure:"DB_SSL_MODE"`
	DBPath         string `mapstructure:"DB_PATH"`
	DBMaxOpenConns int    `mapstructure:"DB_MAX_OPEN_CONNS"`

	// Redis configuration
	RedisURL      string `mapstructure:"REDIS_URL"`
	RedisHost     string `mapstructure:"REDIS_HOST"`
	RedisPort     string `mapstructure:"REDIS_PORT"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	// Session configuration
	SessionStore        string        `mapstructure:"SESSION_STORE"`
	SessionSecret       string        `mapstructure:"SESSION_SECRET"`
	SessionCookieName   string        `mapstructure:"SESSION_COOKIE_NAME"`
	SessionTTL          time.Duration `mapstructure:"SESSION_TTL"`
	SessionSecureCookie bool          `mapstructure:"SESSION_SECURE_COOKIE"`

	// Auth configuration
	BcryptCost                 int  `mapstructure:"BCRYPT_COST"`
	RequireAuthForRecipeWrites bool `mapstructure:"REQUIRE_AUTH_FOR_RECIPE_WRITES"`

	// Presentation and ops
	ViewMode           string   `mapstructure:"VIEW_MODE"`
	LogLevel           string   `mapstructure:"LOG_LEVEL"`
	LogFormat          string   `mapstructure:"LOG_FORMAT"`
	LogOutputPaths     []string `mapstructure:"LOG_OUTPUT_PATHS"`
	CORSAllowedOrigins []string `mapstructure:"CORS_ALLOWED_ORIGINS"`
	MetricsEnabled     bool     `mapstructure:"METRICS_ENABLED"`
}

// Session store backends
const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
	SessionStoreCookie = "cookie"
)

// View modes
const (
	ViewModeHTML = "html"
	ViewModeJSON = "json"
)

// DefaultSessionSecret is only acceptable outside production.
const DefaultSessionSecret = "change-me-in-production"

var defaults = map[string]interface{}{
	"SERVER_HOST":                    "0.0.0.0",
	"SERVER_PORT":                    "8080",
	"DB_DRIVER":                      "sqlite",
	"DB_HOST":                        "localhost",
	"DB_PORT":                        "5432",
	"DB_USER":                        "postgres",
	"DB_PASSWORD":                    "",
	"DB_NAME":                        "recipebox",
	"DB_SSL_MODE":                    "disable",
	"DB_PATH":                        "recipebox.db",
	"DB_MAX_OPEN_CONNS":              25,
	"REDIS_URL":                      "",
	"REDIS_HOST":                     "localhost",
	"REDIS_PORT":                     "6379",
	"REDIS_PASSWORD":                 "",
	"REDIS_DB":                       0,
	"SESSION_STORE":                  SessionStoreMemory,
	"SESSION_SECRET":                 DefaultSessionSecret,
	"SESSION_COOKIE_NAME":            "recipebox_session",
	"SESSION_TTL":                    "24h",
	"SESSION_SECURE_COOKIE":          false,
	"BCRYPT_COST":                    10,
	"REQUIRE_AUTH_FOR_RECIPE_WRITES": false,
	"VIEW_MODE":                      ViewModeHTML,
	"LOG_LEVEL":                      "info",
	"LOG_FORMAT":                     "json",
	"LOG_OUTPUT_PATHS":               []string{"stdout"},
	"CORS_ALLOWED_ORIGINS":           []string{},
	"METRICS_ENABLED":                true,
}

// LoadConfig builds a Config from defaults, an optional config file
// (CONFIG_FILE) and environment variables, in increasing precedence.
// Docker secrets under SECRETS_DIR override the sensitive values.
func LoadConfig() (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	cfg.Env = GetEnvironment()
	cfg.CORSAllowedOrigins = splitList(cfg.CORSAllowedOrigins)
	cfg.LogOutputPaths = splitList(cfg.LogOutputPaths)

	applySecrets(cfg)

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Addr returns the listen address of the HTTP server
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// applySecrets overrides sensitive values with Docker secrets when present
func applySecrets(cfg *Config) {
	if s := readSecret("db_password"); s != "" {
		cfg.DBPassword = s
	}
	if s := readSecret("redis_password"); s != "" {
		cfg.RedisPassword = s
	}
	if s := readSecret("session_secret"); s != "" {
		cfg.SessionSecret = s
	}
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	data, err := os.ReadFile(filepath.Join(secretsDir, name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// splitList normalizes list values that arrive as one comma-separated entry
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
