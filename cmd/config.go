package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"warehouse/internal/adapters/out/storage"
	"warehouse/internal/core/domain/services"
	"warehouse/internal/jobs"
)

type Config struct {
	AppEnv      string `env:"APP_ENV"       envDefault:"dev"`
	HTTPEnabled bool   `env:"HTTP_ENABLED"  envDefault:"true"`
	HTTPPort    string `env:"HTTP_PORT"     envDefault:"8080"`

	DBDriver    string `env:"DB_DRIVER"   envDefault:"sqlite"`
	DBHost      string `env:"DB_HOST"     envDefault:"localhost"`
	DBPort      string `env:"DB_PORT"     envDefault:"5432"`
	DBUser      string `env:"DB_USER"`
	DBPassword  string `env:"DB_PASSWORD"`
	DBName      string `env:"DB_NAME"`
	DBSslMode   string `env:"DB_SSLMODE"  envDefault:"disable"`
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"warehouse.db"`
	SeedOnStart bool   `env:"SEED_ON_START"  envDefault:"true"`
	// ResetOnStart drops the warehouse tables before migrating.
	ResetOnStart bool `env:"RESET_ON_START" envDefault:"true"`

	ReportTopN         int    `env:"REPORT_TOP_N"`
	MetricsJobSchedule string `env:"METRICS_JOB_SCHEDULE"`
	TracingEnabled     bool   `env:"TRACING_ENABLED"`
}

// LoadConfig reads envFile into the process environment when it exists and parses
// the configuration from the environment. Variables already set win over the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := Config{
		ReportTopN:         services.DefaultTopN,
		MetricsJobSchedule: jobs.DefaultInventorySchedule,
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.ReportTopN < 0 {
		return Config{}, fmt.Errorf("REPORT_TOP_N must not be negative, got %d", cfg.ReportTopN)
	}
	return cfg, nil
}

// Storage maps the DB_* settings onto the storage adapter configuration.
func (c Config) Storage() storage.Config {
	return storage.Config{
		Driver:     c.DBDriver,
		Host:       c.DBHost,
		Port:       c.DBPort,
		User:       c.DBUser,
		Password:   c.DBPassword,
		Name:       c.DBName,
		SSLMode:    c.DBSslMode,
		SQLitePath: c.SQLitePath,
	}
}
