package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	Storage            string        `env:"STORAGE" envDefault:"postgres"`
	DatabaseURL        string        `env:"DATABASE_URL"`
	DatabaseMaxConns   int32         `env:"DATABASE_MAX_CONNS" envDefault:"10"`
	MigrationsPath     string        `env:"MIGRATIONS_PATH" envDefault:"migrations"`
	RecalcInterval     time.Duration `env:"RECALC_INTERVAL" envDefault:"60s"`
	PersistenceTimeout time.Duration `env:"PERSISTENCE_TIMEOUT" envDefault:"5s"`
	ResyncCron         string        `env:"RESYNC_CRON" envDefault:"@every 5m"`
	RetryMaxElapsed    time.Duration `env:"RETRY_MAX_ELAPSED" envDefault:"30s"`
	RetryMaxTries      uint          `env:"RETRY_MAX_TRIES" envDefault:"5"`
	DiscordToken       string        `env:"DISCORD_TOKEN"`
	Locale             string        `env:"LOCALE" envDefault:"fr"`
	Timezone           string        `env:"TIMEZONE" envDefault:"Europe/Paris"`
	LogLevel           string        `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	// .env is optional when variables come from the environment (Docker, CI, etc.).
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	c.Storage = strings.ToLower(strings.TrimSpace(c.Storage))
	switch c.Storage {
	case StoragePostgres, StorageMemory:
	default:
		return fmt.Errorf("config: STORAGE must be %q or %q, got %q", StoragePostgres, StorageMemory, c.Storage)
	}

	if c.Storage == StoragePostgres {
		if strings.TrimSpace(c.DatabaseURL) == "" {
			// Local default when DATABASE_URL is not provided.
			c.DatabaseURL = "postgres://localhost:5432/tablemate?sslmode=disable"
		}
		parsed, err := url.Parse(c.DatabaseURL)
		if err != nil {
			return fmt.Errorf("config: invalid DATABASE_URL (%q): %w", c.DatabaseURL, err)
		}
		if parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("config: invalid DATABASE_URL (%q): missing scheme or host", c.DatabaseURL)
		}
	}

	if c.DatabaseMaxConns < 0 {
		return fmt.Errorf("config: DATABASE_MAX_CONNS must not be negative")
	}
	if c.RecalcInterval <= 0 {
		return fmt.Errorf("config: RECALC_INTERVAL must be positive")
	}
	if c.PersistenceTimeout <= 0 {
		return fmt.Errorf("config: PERSISTENCE_TIMEOUT must be positive")
	}
	if _, err := cron.ParseStandard(c.ResyncCron); err != nil {
		return fmt.Errorf("config: invalid RESYNC_CRON (%q): %w", c.ResyncCron, err)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel maps LOG_LEVEL to a slog level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("config: invalid LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	return level, nil
}
