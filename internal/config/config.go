package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/mikii-john/e-commerce-backend/pkg/config"
)

// Config holds all configuration for the storefront backend.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort   int    `env:"HTTP_PORT" envDefault:"5000"`
	CORSOrigin string `env:"CORS_ORIGIN" envDefault:"*"`

	// Remote store (PostgREST-compatible API)
	StoreURL            string `env:"STORE_URL"`
	StoreAnonKey        string `env:"STORE_ANON_KEY"`
	StoreServiceRoleKey string `env:"STORE_SERVICE_ROLE_KEY"`

	// UseRemoteStore selects the PostgREST-backed repositories. When false
	// the service runs entirely against the in-memory seed catalogue.
	UseRemoteStore bool `env:"USE_REMOTE_STORE" envDefault:"true"`

	// Query retry policy
	RetryMaxAttempts int           `env:"RETRY_MAX_ATTEMPTS" envDefault:"3"`
	RetryDelay       time.Duration `env:"RETRY_DELAY" envDefault:"1s"`

	// Redis product cache
	RedisEnabled bool          `env:"REDIS_ENABLED" envDefault:"false"`
	RedisHost    string        `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort    int           `env:"REDIS_PORT" envDefault:"6379"`
	CacheTTL     time.Duration `env:"PRODUCT_CACHE_TTL" envDefault:"5m"`

	// Kafka
	KafkaEnabled bool     `env:"KAFKA_ENABLED" envDefault:"false"`
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.UseRemoteStore {
		if c.StoreURL == "" {
			return fmt.Errorf("STORE_URL is required when USE_REMOTE_STORE is true")
		}
		if c.StoreAnonKey == "" {
			return fmt.Errorf("STORE_ANON_KEY is required when USE_REMOTE_STORE is true")
		}
	}
	if c.RetryMaxAttempts < 1 {
		return fmt.Errorf("invalid retry max attempts: %d", c.RetryMaxAttempts)
	}
	return nil
}

// RedisAddr returns the Redis connection address.
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}
