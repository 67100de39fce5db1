package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port     string   `yaml:"port"`
	GinMode  string   `yaml:"gin_mode"`
	Database Database `yaml:"database"`
	JWT      JWT      `yaml:"jwt"`
	RabbitMQ RabbitMQ `yaml:"rabbitmq"`
	Log      Log      `yaml:"log"`
	Preview  Preview  `yaml:"preview"`
}

type Database struct {
	// Driver is either "sqlite" or "postgres".
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

type JWT struct {
	Secret string        `yaml:"secret"`
	TTL    time.Duration `yaml:"ttl"`
}

type RabbitMQ struct {
	// URL is empty when events are not published.
	URL string `yaml:"url"`
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type Preview struct {
	MaxBytes  int64 `yaml:"max_bytes"`
	CacheSize int   `yaml:"cache_size"`
}

func Default() *Config {
	return &Config{
		Port:     "8080",
		Database: Database{Driver: DriverSQLite, DSN: "gogo_delivery.db"},
		JWT:      JWT{Secret: "gogo_delivery_super_secret_2024", TTL: 24 * time.Hour},
		Log:      Log{Level: "info", Format: "text"},
		Preview:  Preview{MaxBytes: 5 << 20, CacheSize: 256},
	}
}

// Load starts from the defaults, overlays the YAML file at path if it exists
// and finally applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.GinMode = getEnv("GIN_MODE", cfg.GinMode)
	cfg.Database.Driver = getEnv("DB_DRIVER", cfg.Database.Driver)
	cfg.Database.DSN = getEnv("DB_DSN", cfg.Database.DSN)
	cfg.JWT.Secret = getEnv("JWT_SECRET", cfg.JWT.Secret)
	cfg.RabbitMQ.URL = getEnv("RABBITMQ_URL", cfg.RabbitMQ.URL)
	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	if v := os.Getenv("PREVIEW_MAX_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid PREVIEW_MAX_BYTES: %w", err)
		}
		cfg.Preview.MaxBytes = n
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return errors.New("database dsn is empty")
	}
	if c.JWT.Secret == "" {
		return errors.New("jwt secret is empty")
	}
	if c.JWT.TTL <= 0 {
		return errors.New("jwt ttl must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
