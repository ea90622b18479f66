// Package config defines the server configuration, loaded from an optional
// YAML file with environment variable overrides.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Storage backends.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Default values.
const (
	DefaultServerAddr  = ":8080"
	DefaultMetricsAddr = ":9090"
	DefaultRedisAddr   = "localhost:6379"
)

type Config struct {
	Server  ServerSection  `yaml:"server"`
	Metrics MetricsSection `yaml:"metrics"`
	Storage StorageSection `yaml:"storage"`
	Log     LogSection     `yaml:"log"`
}

// ServerSection configures the HTTP server.
type ServerSection struct {
	Addr string `yaml:"addr"`
}

// MetricsSection configures the metrics sidecar listener.
type MetricsSection struct {
	Addr string `yaml:"addr"`
}

// StorageSection selects and configures the visit store backend.
type StorageSection struct {
	Backend     string `yaml:"backend"`
	RedisAddr   string `yaml:"redis_addr"`
	PostgresDSN string `yaml:"postgres_dsn"`
}

type LogSection struct {
	Development bool `yaml:"development"`
}

func Default() *Config {
	return &Config{
		Server:  ServerSection{Addr: DefaultServerAddr},
		Metrics: MetricsSection{Addr: DefaultMetricsAddr},
		Storage: StorageSection{
			Backend:   BackendMemory,
			RedisAddr: DefaultRedisAddr,
		},
	}
}

// Load reads the YAML file at path (skipped when path is empty), then applies
// environment overrides, then validates.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("METRICS_ADDR"); v != "" {
		c.Metrics.Addr = v
	}
	if v := os.Getenv("STORAGE_BACKEND"); v != "" {
		c.Storage.Backend = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Storage.RedisAddr = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		c.Storage.PostgresDSN = v
	}
}

func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendMemory:
	case BackendRedis:
		if c.Storage.RedisAddr == "" {
			return fmt.Errorf("storage.redis_addr is required for the redis backend")
		}
	case BackendPostgres:
		if c.Storage.PostgresDSN == "" {
			return fmt.Errorf("storage.postgres_dsn (or DATABASE_DSN) is required for the postgres backend")
		}
	default:
		return fmt.Errorf("storage.backend must be one of %s, %s, %s; got %q",
			BackendMemory, BackendRedis, BackendPostgres, c.Storage.Backend)
	}

	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}
	return nil
}
