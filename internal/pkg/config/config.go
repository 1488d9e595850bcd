package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=5001"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth  AuthConfig
	Mongo MongoConfig
	Redis RedisConfig
}

// AuthConfig holds the process-wide secrets. They are read once at start and
// never change; rotating JWTSecret invalidates every issued token.
type AuthConfig struct {
	JWTSecret        string        `env:"JWT_SECRET, required"`
	UserCode         string        `env:"REGISTRATION_CODE, required"`
	AdminCode        string        `env:"ADMIN_REGISTRATION_CODE, required"`
	BcryptCost       int           `env:"BCRYPT_COST,          default=10"`
	LoginMaxAttempts int           `env:"LOGIN_MAX_ATTEMPTS,   default=5"`
	LoginLockout     time.Duration `env:"LOGIN_LOCKOUT_WINDOW, default=15m"`
	LoginThrottle    bool          `env:"LOGIN_THROTTLE,       default=true"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=tcmosque"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// IsDevelopment reports whether the service runs with developer defaults.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Auth.UserCode == c.Auth.AdminCode {
		return errors.New("REGISTRATION_CODE and ADMIN_REGISTRATION_CODE must differ")
	}
	return nil
}
