package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata" // zone names resolve without system tzdata

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"ArticleCurator/internal/authority"
	"ArticleCurator/internal/classifier"
	"ArticleCurator/internal/domain"
)

const (
	defaultTimezone = "UTC"
	defaultEnvFile  = ".env"
	configPathEnv   = "ARTICLE_CURATOR_CONFIG"
	envPrefix       = "CURATOR"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging    LoggingConfig    `yaml:"logging"`
	Filter     FilterConfig     `yaml:"filter"`
	Authority  AuthorityConfig  `yaml:"authority"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Presets    PresetsConfig    `yaml:"presets"`
	Database   DatabaseConfig   `yaml:"database"`
	Metrics    MetricsConfig    `yaml:"metrics"`
}

// LoggingConfig selects the slog level and handler.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// FilterConfig tunes the filter engine.
type FilterConfig struct {
	Strict   bool           `yaml:"strict"`
	Workers  int            `yaml:"workers"`
	Timezone string         `yaml:"timezone"`
	location *time.Location `yaml:"-"`
}

// Location resolves the timezone applied to zone-less dates.
func (f FilterConfig) Location() *time.Location {
	if f.location != nil {
		return f.location
	}
	return time.UTC
}

// AuthorityConfig replaces the built-in authority table when Levels is set.
type AuthorityConfig struct {
	Levels []authority.Level `yaml:"levels"`
}

// ClassifierConfig replaces the built-in sport keyword table when Rules is
// set. Rules are evaluated in order, so the first listed sport wins ties.
type ClassifierConfig struct {
	Rules []classifier.Rule `yaml:"rules"`
}

// PresetsConfig points at an optional file of custom presets.
type PresetsConfig struct {
	File string `yaml:"file"`
}

// DatabaseConfig describes Postgres connection details. An empty DSN disables storage.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// MetricsConfig controls where run metrics are written.
type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

// envOverrides are read with the CURATOR_ prefix. Unset variables stay nil.
type envOverrides struct {
	LogLevel        *string `envconfig:"LOG_LEVEL"`
	LogFormat       *string `envconfig:"LOG_FORMAT"`
	Strict          *bool   `envconfig:"STRICT"`
	Workers         *int    `envconfig:"WORKERS"`
	Timezone        *string `envconfig:"TIMEZONE"`
	PresetsFile     *string `envconfig:"PRESETS_FILE"`
	DatabaseDSN     *string `envconfig:"DATABASE_DSN"`
	MetricsTextfile *string `envconfig:"METRICS_TEXTFILE"`
}

// Load reads the YAML file named by ARTICLE_CURATOR_CONFIG (if set), then
// applies CURATOR_* environment overrides.
func Load() (Config, error) {
	return LoadFrom(os.Getenv(configPathEnv))
}

// LoadFrom is Load with an explicit file path; an empty path uses defaults only.
func LoadFrom(path string) (Config, error) {
	cfg := defaultConfig()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		var fileCfg Config
		if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
		cfg = mergeConfig(cfg, fileCfg)
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return Config{}, err
	}
	if err := cfg.bindTimezone(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// LoadEnvFile loads a .env file into the process environment. With an empty
// path the default .env is loaded when present.
func LoadEnvFile(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		if _, err := os.Stat(defaultEnvFile); errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		path = defaultEnvFile
	}
	if err := godotenv.Overload(path); err != nil {
		return "", fmt.Errorf("load env file %s: %w", path, err)
	}
	return path, nil
}

// Validate rejects settings the application cannot run with.
func (c Config) Validate() error {
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("logging format %q must be text or json", c.Logging.Format)
	}
	if c.Filter.Workers < 0 {
		return fmt.Errorf("filter workers must be >= 0, got %d", c.Filter.Workers)
	}
	for _, lvl := range c.Authority.Levels {
		if lvl.MinScore < 0 {
			return fmt.Errorf("authority level %s has a negative minScore", lvl.Level)
		}
	}
	for i, rule := range c.Classifier.Rules {
		category, ok := domain.ParseCategory(string(rule.Category))
		if !ok || !category.IsSport() {
			return fmt.Errorf("classifier rule %d: %q is not a supported sport", i, rule.Category)
		}
		if len(rule.Keywords) == 0 {
			return fmt.Errorf("classifier rule %d (%s) has no keywords", i, rule.Category)
		}
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	var env envOverrides
	if err := envconfig.Process(envPrefix, &env); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}

	if env.LogLevel != nil {
		c.Logging.Level = *env.LogLevel
	}
	if env.LogFormat != nil {
		c.Logging.Format = *env.LogFormat
	}
	if env.Strict != nil {
		c.Filter.Strict = *env.Strict
	}
	if env.Workers != nil {
		c.Filter.Workers = *env.Workers
	}
	if env.Timezone != nil {
		c.Filter.Timezone = *env.Timezone
	}
	if env.PresetsFile != nil {
		c.Presets.File = *env.PresetsFile
	}
	if env.DatabaseDSN != nil {
		c.Database.DSN = *env.DatabaseDSN
	}
	if env.MetricsTextfile != nil {
		c.Metrics.Textfile = *env.MetricsTextfile
	}
	return nil
}

func (c *Config) bindTimezone() error {
	tz := c.Filter.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return fmt.Errorf("unknown timezone %s: %w", tz, err)
	}
	c.Filter.location = loc
	return nil
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	if override.Logging.Format != "" {
		base.Logging.Format = override.Logging.Format
	}

	base.Filter.Strict = base.Filter.Strict || override.Filter.Strict
	if override.Filter.Workers != 0 {
		base.Filter.Workers = override.Filter.Workers
	}
	if override.Filter.Timezone != "" {
		base.Filter.Timezone = override.Filter.Timezone
	}

	if len(override.Authority.Levels) > 0 {
		base.Authority.Levels = override.Authority.Levels
	}
	if len(override.Classifier.Rules) > 0 {
		base.Classifier.Rules = override.Classifier.Rules
	}
	if override.Presets.File != "" {
		base.Presets.File = override.Presets.File
	}
	if override.Database.DSN != "" {
		base.Database = override.Database
	}
	if override.Metrics.Textfile != "" {
		base.Metrics.Textfile = override.Metrics.Textfile
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info", Format: "text"},
		Filter:  FilterConfig{Workers: 4, Timezone: defaultTimezone, location: time.UTC},
	}
}
