package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	Env      string `env:"ENV" envDefault:"local" validate:"required,oneof=local staging production"`
	Port     string `env:"PORT" envDefault:"8080" validate:"required"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`

	// Storage backend selected at startup. Both engines satisfy the same
	// repository contract; nothing above the composition root knows which
	// one is wired.
	StorageEngine string `env:"STORAGE_ENGINE" envDefault:"postgres" validate:"required,oneof=postgres mongo"`
	DatabaseURL   string `env:"DATABASE_URL"  validate:"required_if=StorageEngine postgres"`
	MongoURI      string `env:"MONGO_URI"     validate:"required_if=StorageEngine mongo"`
	MongoDatabase string `env:"MONGO_DATABASE" envDefault:"auth_db"`

	MetricsPort string `env:"METRICS_PORT" envDefault:"9090"`

	JWTSecret       string        `env:"JWT_SECRET,required"    validate:"required,min=32"`
	AccessTokenTTL  time.Duration `env:"JWT_EXPIRES_IN"         envDefault:"168h" validate:"gt=0"`
	RefreshTokenTTL time.Duration `env:"JWT_REFRESH_EXPIRES_IN" envDefault:"720h" validate:"gt=0,gtfield=AccessTokenTTL"`

	BcryptCost int `env:"BCRYPT_COST" envDefault:"12" validate:"min=4,max=31"`

	CORSOrigin string `env:"CORS_ORIGIN" envDefault:"*"`

	ResendAPIKey string `env:"RESEND_API_KEY" validate:"required_unless=Env local"`
	ResendFrom   string `env:"RESEND_FROM"    validate:"required_unless=Env local"`
}

func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
