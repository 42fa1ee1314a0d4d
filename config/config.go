package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	Env  string `env:"ENV" envDefault:"local" validate:"required,oneof=local staging production"`
	Port string `env:"PORT" envDefault:"8080" validate:"required"`

	Store       string `env:"STORE" envDefault:"postgres" validate:"oneof=postgres memory"`
	DatabaseURL string `env:"DATABASE_URL" validate:"required_if=Store postgres"`
	DBMaxConns  int32  `env:"DB_MAX_CONNS" envDefault:"10" validate:"min=1,max=100"`

	MigrateOnStart bool `env:"MIGRATE_ON_START" envDefault:"false"`

	MetricsPort string `env:"METRICS_PORT" envDefault:"9090"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`

	JWTSecret  string `env:"JWT_SECRET,required" validate:"required,min=32"`
	BcryptCost int    `env:"BCRYPT_COST" envDefault:"10" validate:"min=4,max=14"`

	ResendAPIKey string `env:"RESEND_API_KEY" validate:"required_if=Env production,required_if=Env staging"`
	MailFrom     string `env:"MAIL_FROM"      validate:"required_if=Env production,required_if=Env staging"`
}

// Load reads the environment, after a .env file when running locally.
func Load() (*Config, error) {
	if e := os.Getenv("ENV"); e == "" || e == "local" {
		_ = godotenv.Load()
	}

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
