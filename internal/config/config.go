// Package config assembles the process configuration: defaults, then an
// optional YAML file, then environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	envconfig "guidepedia/pkg/config"
)

// Store drivers.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	Version   string          `yaml:"version"`
	HTTP      HTTPConfig      `yaml:"http"`
	Store     StoreConfig     `yaml:"store"`
	Auth      AuthConfig      `yaml:"auth"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Log       LogConfig       `yaml:"log"`
	Seed      Seed            `yaml:"seed"`
}

type HTTPConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	RequestTimeout  time.Duration `yaml:"request_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes"`
}

type StoreConfig struct {
	Driver          string        `yaml:"driver"`
	DatabaseURL     string        `yaml:"database_url"`
	Migrate         bool          `yaml:"migrate"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time"`
}

type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
	// DevTokenUserID, when positive, makes the server log a token for that
	// user at startup.
	DevTokenUserID int64         `yaml:"dev_token_user_id"`
	DevTokenTTL    time.Duration `yaml:"dev_token_ttl"`
}

type RateLimitConfig struct {
	Enabled         bool          `yaml:"enabled"`
	RPS             float64       `yaml:"rps"`
	Burst           int           `yaml:"burst"`
	TrustedProxies  []string      `yaml:"trusted_proxies"`
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
	IdleTTL         time.Duration `yaml:"idle_ttl"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Seed lists rows created at startup when the store is empty of them.
// Existing logins and category names are left alone.
type Seed struct {
	Categories []string   `yaml:"categories"`
	Users      []SeedUser `yaml:"users"`
}

type SeedUser struct {
	Login    string `yaml:"login"`
	Username string `yaml:"username"`
	Avatar   string `yaml:"avatar"`
	Bio      string `yaml:"bio"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Version: "dev",
		HTTP: HTTPConfig{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			RequestTimeout:  10 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxBodyBytes:    1 << 20,
		},
		Store: StoreConfig{
			Driver:          DriverPostgres,
			Migrate:         true,
			MaxOpenConns:    25,
			MaxIdleConns:    10,
			ConnMaxLifetime: time.Hour,
			ConnMaxIdleTime: 30 * time.Minute,
		},
		Auth: AuthConfig{DevTokenTTL: 24 * time.Hour},
		RateLimit: RateLimitConfig{
			Enabled:         true,
			RPS:             10,
			Burst:           20,
			CleanupInterval: 5 * time.Minute,
			IdleTTL:         10 * time.Minute,
		},
		Log: LogConfig{Level: "info", Format: "json"},
	}
}

// Load builds the configuration. path may be empty, in which case
// CONFIG_FILE is consulted; an empty CONFIG_FILE means no file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := decodeYAML(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decodeYAML(raw []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// applyEnv lets environment variables override file and default values.
func (c *Config) applyEnv() {
	c.Version = envconfig.GetEnvString("VERSION", c.Version)

	c.HTTP.Addr = envconfig.GetEnvString("HTTP_ADDR", c.HTTP.Addr)
	c.HTTP.RequestTimeout = envconfig.GetEnvDuration("HTTP_REQUEST_TIMEOUT", c.HTTP.RequestTimeout)
	c.HTTP.ShutdownTimeout = envconfig.GetEnvDuration("HTTP_SHUTDOWN_TIMEOUT", c.HTTP.ShutdownTimeout)

	c.Store.Driver = strings.ToLower(envconfig.GetEnvString("STORE", c.Store.Driver))
	c.Store.DatabaseURL = envconfig.GetEnvString("DATABASE_URL", c.Store.DatabaseURL)
	c.Store.Migrate = envconfig.GetEnvBool("DB_MIGRATE", c.Store.Migrate)
	c.Store.MaxOpenConns = envconfig.GetEnvInt("DB_MAX_OPEN_CONNS", c.Store.MaxOpenConns)
	c.Store.MaxIdleConns = envconfig.GetEnvInt("DB_MAX_IDLE_CONNS", c.Store.MaxIdleConns)
	c.Store.ConnMaxLifetime = envconfig.GetEnvDuration("DB_CONN_MAX_LIFETIME", c.Store.ConnMaxLifetime)
	c.Store.ConnMaxIdleTime = envconfig.GetEnvDuration("DB_CONN_MAX_IDLE_TIME", c.Store.ConnMaxIdleTime)

	c.Auth.JWTSecret = envconfig.GetEnvString("JWT_SECRET", c.Auth.JWTSecret)
	c.Auth.DevTokenUserID = int64(envconfig.GetEnvInt("DEV_TOKEN_USER_ID", int(c.Auth.DevTokenUserID)))

	c.RateLimit.Enabled = envconfig.GetEnvBool("RATE_LIMIT_ENABLED", c.RateLimit.Enabled)
	c.RateLimit.RPS = envconfig.GetEnvFloat("RATE_LIMIT_RPS", c.RateLimit.RPS)
	c.RateLimit.Burst = envconfig.GetEnvInt("RATE_LIMIT_BURST", c.RateLimit.Burst)
	c.RateLimit.TrustedProxies = envconfig.GetEnvStringList("RATE_LIMIT_TRUSTED_PROXIES", c.RateLimit.TrustedProxies)

	c.Log.Level = envconfig.GetEnvString("LOG_LEVEL", c.Log.Level)
	c.Log.Format = envconfig.GetEnvString("LOG_FORMAT", c.Log.Format)
}

// Validate reports the first setting that cannot work.
func (c Config) Validate() error {
	switch c.Store.Driver {
	case DriverMemory:
	case DriverPostgres:
		if c.Store.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required when STORE=postgres")
		}
	default:
		return fmt.Errorf("unknown store driver %q: want %q or %q", c.Store.Driver, DriverPostgres, DriverMemory)
	}

	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.HTTP.Addr == "" {
		return errors.New("http address must not be empty")
	}
	if err := envconfig.InRange(c.HTTP.RequestTimeout, 0, 5*time.Minute); err != nil {
		return fmt.Errorf("http request timeout: %w", err)
	}
	if err := envconfig.Positive(c.HTTP.ShutdownTimeout); err != nil {
		return fmt.Errorf("http shutdown timeout: %w", err)
	}
	if c.RateLimit.Enabled {
		if err := envconfig.Positive(c.RateLimit.RPS); err != nil {
			return fmt.Errorf("rate limit rps: %w", err)
		}
		if err := envconfig.Positive(c.RateLimit.Burst); err != nil {
			return fmt.Errorf("rate limit burst: %w", err)
		}
		if err := envconfig.Positive(c.RateLimit.CleanupInterval); err != nil {
			return fmt.Errorf("rate limit cleanup interval: %w", err)
		}
	}
	for i, u := range c.Seed.Users {
		if strings.TrimSpace(u.Login) == "" {
			return fmt.Errorf("seed user %d: login is required", i)
		}
	}
	return nil
}
