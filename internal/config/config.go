// Package config loads and validates client config from env and an optional .env file using Viper.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds client configuration loaded from the environment.
type Config struct {
	// APIBaseURL is the base URL of the admin REST API (e.g. https://api.example.com).
	APIBaseURL string `mapstructure:"API_BASE_URL"`
	// HTTPTimeout is the per-request timeout (e.g. "30s").
	HTTPTimeout string `mapstructure:"HTTP_TIMEOUT"`
	// SessionStore selects the session persistence backend: "file" or "redis".
	SessionStore string `mapstructure:"SESSION_STORE"`
	// SessionFile is the path of the JSON session file when SessionStore is "file".
	// Empty means $HOME/.adminconsole/session.json.
	SessionFile string `mapstructure:"SESSION_FILE"`
	// RedisAddr is the Redis address (host:port) when SessionStore is "redis".
	RedisAddr string `mapstructure:"REDIS_ADDR"`
	// RedisPassword is the optional Redis password.
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	// RedisDB is the Redis database index.
	RedisDB int `mapstructure:"REDIS_DB"`
	// RedisKeyPrefix namespaces session keys when several consoles share one Redis.
	RedisKeyPrefix string `mapstructure:"REDIS_KEY_PREFIX"`
	// LogLevel is the zap level: debug, info, warn, error.
	LogLevel string `mapstructure:"LOG_LEVEL"`
	// PageSize is the default page size for collection listings.
	PageSize int `mapstructure:"PAGE_SIZE"`
}

// Load reads .env (if present), then builds and validates Config from the environment via Viper.
// Missing .env is ignored (e.g. in CI). Env vars override .env. Returns an error if required fields are invalid.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()

	v.SetDefault("API_BASE_URL", "")
	v.SetDefault("HTTP_TIMEOUT", "30s")
	v.SetDefault("SESSION_STORE", "file")
	v.SetDefault("SESSION_FILE", "")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_KEY_PREFIX", "adminconsole")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("PAGE_SIZE", 5)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.APIBaseURL == "" {
		return nil, errors.New("config: API_BASE_URL must be set")
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")

	switch cfg.SessionStore {
	case "file", "redis":
	default:
		return nil, errors.New("config: SESSION_STORE must be \"file\" or \"redis\"")
	}
	if cfg.SessionStore == "redis" && cfg.RedisAddr == "" {
		return nil, errors.New("config: REDIS_ADDR must be set when SESSION_STORE=redis")
	}

	if cfg.PageSize <= 0 {
		cfg.PageSize = 5
	}

	return &cfg, nil
}

// Timeout parses HTTPTimeout as a time.Duration. Returns 30s if unset or invalid.
func (c *Config) Timeout() time.Duration {
	d, err := time.ParseDuration(c.HTTPTimeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}
