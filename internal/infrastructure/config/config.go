package config

import (
	"context"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config is the portal's full runtime configuration, loaded from the
// environment.
type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Upstream UpstreamConfig
	Session  SessionConfig
	Redis    RedisConfig
}

// UpstreamConfig locates the library backend.
type UpstreamConfig struct {
	BaseURL string        `env:"UPSTREAM_BASE_URL, default=http://localhost:5000"`
	Timeout time.Duration `env:"UPSTREAM_TIMEOUT,  default=15s"`
}

// SessionConfig names the backend's session cookie and controls how long a
// resolved profile may be cached.
type SessionConfig struct {
	CookieName      string        `env:"SESSION_COOKIE,     default=session"`
	ProfileCacheTTL time.Duration `env:"PROFILE_CACHE_TTL,  default=5m"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
// Missing required values are a startup failure.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(err)
	}
	return &cfg
}

// Production reports whether the portal runs with production settings.
func (c *Config) Production() bool {
	return c.Env == "production"
}
