// Package config handles loading and validating the application
// configuration from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	Store         StoreConfig         `yaml:"store"`
	Fetch         FetchConfig         `yaml:"fetch"`
	Output        OutputConfig        `yaml:"output"`
	Schedule      ScheduleConfig      `yaml:"schedule"`
	Server        ServerConfig        `yaml:"server"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// StoreConfig identifies the storefront to export.
type StoreConfig struct {
	Domain string `yaml:"domain"`
}

// FetchConfig defines pagination and transport settings. MaxProducts is a
// pointer so that an explicit 0 (unlimited) survives default application.
type FetchConfig struct {
	PageSize    int           `yaml:"page_size"`
	MaxProducts *int          `yaml:"max_products"`
	PageDelay   time.Duration `yaml:"page_delay"`
	Timeout     time.Duration `yaml:"timeout"`
}

// MaxProductCount returns the configured cap, 0 meaning unlimited.
func (f *FetchConfig) MaxProductCount() int {
	if f.MaxProducts == nil {
		return 0
	}
	return *f.MaxProducts
}

// OutputConfig defines where the catalog file goes. An empty path derives
// the name from the store domain.
type OutputConfig struct {
	Path string `yaml:"path"`
}

// ScheduleConfig defines the serve-mode export interval.
type ScheduleConfig struct {
	ExportInterval time.Duration `yaml:"export_interval"`
}

// ServerConfig defines the serve-mode HTTP listener.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// NotificationsConfig defines notification targets.
type NotificationsConfig struct {
	Webhook WebhookConfig `yaml:"webhook"`
}

// WebhookConfig defines generic webhook settings.
type WebhookConfig struct {
	Enabled bool              `yaml:"enabled"`
	URL     string            `yaml:"url"`
	Headers map[string]string `yaml:"headers"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Load reads and parses a YAML config file, performing environment
// variable substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	applyFetchDefaults(&cfg.Fetch)
	applyScheduleDefaults(&cfg.Schedule)
	applyServerDefaults(&cfg.Server)
	applyLoggingDefaults(&cfg.Logging)
}

func applyFetchDefaults(f *FetchConfig) {
	if f.PageSize == 0 {
		f.PageSize = 100
	}
	if f.MaxProducts == nil {
		defaultMax := 300
		f.MaxProducts = &defaultMax
	}
	if f.PageDelay == 0 {
		f.PageDelay = 300 * time.Millisecond
	}
	if f.Timeout == 0 {
		f.Timeout = 60 * time.Second
	}
}

func applyScheduleDefaults(s *ScheduleConfig) {
	if s.ExportInterval == 0 {
		s.ExportInterval = 6 * time.Hour
	}
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	if cfg.Store.Domain == "" {
		errs = append(errs, fmt.Errorf("store.domain is required"))
	}
	if cfg.Fetch.PageSize < 1 {
		errs = append(errs, fmt.Errorf("fetch.page_size must be positive"))
	}
	if *cfg.Fetch.MaxProducts < 0 {
		errs = append(errs, fmt.Errorf("fetch.max_products must be zero or positive"))
	}
	if cfg.Notifications.Webhook.Enabled && cfg.Notifications.Webhook.URL == "" {
		errs = append(
			errs,
			fmt.Errorf("notifications.webhook.url is required when webhook is enabled"),
		)
	}

	return errors.Join(errs...)
}
