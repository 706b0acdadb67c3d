package config

import (
	"fmt"
	"net"

	"github.com/redis/go-redis/v9"
)

// RedisOptions resolves the Redis connection for the session store. REDIS_URL
// takes precedence over REDIS_HOST/REDIS_PORT/REDIS_DB. A password from the
// secrets directory fills in a URL that carries none.
func (c *Config) RedisOptions() (*redis.Options, error) {
	opts := &redis.Options{
		Addr:     net.JoinHostPort(c.RedisHost, c.RedisPort),
		Password: c.RedisPassword,
		DB:       c.RedisDB,
	}
	if c.RedisURL != "" {
		parsed, err := redis.ParseURL(c.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		if parsed.Password == "" {
			parsed.Password = c.RedisPassword
		}
		opts = parsed
	}
	return opts, nil
}
