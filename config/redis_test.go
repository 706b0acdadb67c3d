package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisOptions(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		addr     string
		password string
		db       int
	}{
		{
			name:     "host and port",
			cfg:      Config{RedisHost: "cache", RedisPort: "6380", RedisPassword: "pw", RedisDB: 2},
			addr:     "cache:6380",
			password: "pw",
			db:       2,
		},
		{
			name: "url wins over host and port",
			cfg:  Config{RedisURL: "redis://:urlpw@redis.internal:6379/3", RedisHost: "cache", RedisPort: "6380", RedisPassword: "pw"},
			addr: "redis.internal:6379", password: "urlpw", db: 3,
		},
		{
			name: "secret fills a url without password",
			cfg:  Config{RedisURL: "redis://redis.internal:6379/1", RedisPassword: "from-secret"},
			addr: "redis.internal:6379", password: "from-secret", db: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := tt.cfg.RedisOptions()
			require.NoError(t, err)
			assert.Equal(t, tt.addr, opts.Addr)
			assert.Equal(t, tt.password, opts.Password)
			assert.Equal(t, tt.db, opts.DB)
		})
	}
}

func TestRedisOptionsInvalidURL(t *testing.T) {
	_, err := (&Config{RedisURL: "http://not-redis"}).RedisOptions()
	assert.Error(t, err)
}
