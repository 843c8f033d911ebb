// Package config provides unified configuration loading for the advising
// services. Supports YAML files, a .env file, and environment overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the advising services.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Database      DatabaseConfig      `yaml:"database"`
	Cache         CacheConfig         `yaml:"cache"`
	Knowledge     KnowledgeConfig     `yaml:"knowledge"`
	Confidence    ConfidenceConfig    `yaml:"confidence"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host             string        `yaml:"host"`
	Port             int           `yaml:"port"`
	ReadTimeout      time.Duration `yaml:"read_timeout"`
	WriteTimeout     time.Duration `yaml:"write_timeout"`
	IdleTimeout      time.Duration `yaml:"idle_timeout"`
	GracefulShutdown time.Duration `yaml:"graceful_shutdown"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Driver   string         `yaml:"driver"` // sqlite or postgres
	SQLite   SQLiteConfig   `yaml:"sqlite"`
	Postgres PostgresConfig `yaml:"postgres"`
}

// SQLiteConfig holds SQLite-specific settings.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// PostgresConfig holds Postgres-specific settings.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// CacheConfig holds response cache settings.
type CacheConfig struct {
	Driver     string        `yaml:"driver"` // memory or redis
	TTL        time.Duration `yaml:"ttl"`
	MaxEntries int           `yaml:"max_entries"`
	Redis      RedisConfig   `yaml:"redis"`
}

// RedisConfig holds Redis-specific settings.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

// KnowledgeConfig holds knowledge base and reference corpus settings.
// Empty paths select the built-in defaults.
type KnowledgeConfig struct {
	BasePath       string `yaml:"base_path"`
	ReferencesPath string `yaml:"references_path"`
	ReferenceLimit int    `yaml:"reference_limit"`
}

// ConfidenceConfig holds the decision-policy thresholds.
type ConfidenceConfig struct {
	ReviewThreshold   float64 `yaml:"review_threshold"`
	AutoSendThreshold float64 `yaml:"auto_send_threshold"`
	AmbiguityGap      float64 `yaml:"ambiguity_gap"`
}

// ObservabilityConfig holds logging settings.
type ObservabilityConfig struct {
	LogLevel    string `yaml:"log_level"`
	LogFormat   string `yaml:"log_format"`
	ServiceName string `yaml:"service_name"`
}

// Load reads configuration from a YAML file (when path is non-empty) and
// applies .env and environment variable overrides.
func Load(path string) (*Config, error) {
	// Populate the environment from .env if one is present.
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// DefaultConfig returns a configuration with sensible development
// defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:             "0.0.0.0",
			Port:             8001,
			ReadTimeout:      30 * time.Second,
			WriteTimeout:     30 * time.Second,
			IdleTimeout:      120 * time.Second,
			GracefulShutdown: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			SQLite: SQLiteConfig{
				Path: "emails.db",
			},
		},
		Cache: CacheConfig{
			Driver:     "memory",
			TTL:        5 * time.Minute,
			MaxEntries: 10000,
			Redis: RedisConfig{
				Addr:     "localhost:6379",
				PoolSize: 10,
			},
		},
		Knowledge: KnowledgeConfig{
			ReferenceLimit: 3,
		},
		Confidence: ConfidenceConfig{
			ReviewThreshold:   0.60,
			AutoSendThreshold: 0.90,
			AmbiguityGap:      0.05,
		},
		Observability: ObservabilityConfig{
			LogLevel:    "info",
			LogFormat:   "json",
			ServiceName: "email-advisor",
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Database.Driver != "sqlite" && c.Database.Driver != "postgres" {
		return fmt.Errorf("invalid database driver: %s", c.Database.Driver)
	}
	if c.Cache.Driver != "memory" && c.Cache.Driver != "redis" {
		return fmt.Errorf("invalid cache driver: %s", c.Cache.Driver)
	}
	for name, v := range map[string]float64{
		"review_threshold":    c.Confidence.ReviewThreshold,
		"auto_send_threshold": c.Confidence.AutoSendThreshold,
		"ambiguity_gap":       c.Confidence.AmbiguityGap,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%s must be in [0,1], got %v", name, v)
		}
	}
	if c.Confidence.ReviewThreshold > c.Confidence.AutoSendThreshold {
		return fmt.Errorf("review_threshold (%v) must not exceed auto_send_threshold (%v)",
			c.Confidence.ReviewThreshold, c.Confidence.AutoSendThreshold)
	}
	return nil
}

// DatabaseDriverName returns the database/sql driver name for the
// configured driver.
func (c *Config) DatabaseDriverName() string {
	if c.Database.Driver == "postgres" {
		return "postgres"
	}
	return "sqlite3"
}

// DatabaseDSN returns the connection string for the configured driver.
func (c *Config) DatabaseDSN() string {
	if c.Database.Driver == "postgres" {
		return c.Database.Postgres.DSN
	}
	return c.Database.SQLite.Path
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		if strings.HasPrefix(v, "sqlite:") {
			cfg.Database.Driver = "sqlite"
			cfg.Database.SQLite.Path = strings.TrimPrefix(v, "sqlite:")
		} else if strings.HasPrefix(v, "postgres") {
			cfg.Database.Driver = "postgres"
			cfg.Database.Postgres.DSN = v
		}
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Cache.Driver = "redis"
		cfg.Cache.Redis.Addr = strings.TrimPrefix(v, "redis://")
	}
	if v := os.Getenv("KNOWLEDGE_BASE_PATH"); v != "" {
		cfg.Knowledge.BasePath = v
	}
	if v := os.Getenv("REFERENCES_PATH"); v != "" {
		cfg.Knowledge.ReferencesPath = v
	}
	if v := os.Getenv("REVIEW_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Confidence.ReviewThreshold = f
		}
	}
	if v := os.Getenv("AUTO_SEND_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Confidence.AutoSendThreshold = f
		}
	}
	if v := os.Getenv("AMBIGUITY_GAP"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Confidence.AmbiguityGap = f
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Observability.LogFormat = v
	}
}
