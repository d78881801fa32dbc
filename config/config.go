package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"
	"time"
	_ "time/tzdata"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken   string `koanf:"discord_token"`
	DiscordGuildID string `koanf:"guild_id"` // Empty registers commands globally

	// Database configuration
	DatabaseURL      string `koanf:"database_url"`
	DatabaseName     string `koanf:"database_name"`
	DatabaseMaxConns int    `koanf:"database_max_conns"`

	// SBL API configuration
	SBLAPIURL           string        `koanf:"sbl_api_url"`
	SBLAPIToken         string        `koanf:"sbl_api_token"`
	SBLAPITimeout       time.Duration `koanf:"sbl_api_timeout"`
	SBLAPIHealthTimeout time.Duration `koanf:"sbl_api_health_timeout"`

	// Scheduling
	ScheduleTimezone          string `koanf:"schedule_timezone"`
	WeeklyAnnouncementEnabled bool   `koanf:"weekly_announcement_enabled"`
	DeadlineCheckEnabled      bool   `koanf:"deadline_check_enabled"`

	// NATS configuration
	NATSServers       string `koanf:"nats_servers"` // Empty disables forwarding
	NATSSubjectPrefix string `koanf:"nats_subject_prefix"`

	// OpenTelemetry configuration
	OTelEnabled              bool   `koanf:"otel_enabled"`
	OTelExporterType         string `koanf:"otel_exporter_type"` // console, otlp or none
	OTelOTLPEndpoint         string `koanf:"otel_otlp_endpoint"`
	OTelServiceName          string `koanf:"otel_service_name"`
	OTelExportIntervalMillis int    `koanf:"otel_export_interval_millis"`

	// Environment
	Environment string `koanf:"environment"` // "development", "production" or "test"
	LogLevel    string `koanf:"log_level"`
}

var defaults = map[string]any{
	"database_name":               "sbl_bot",
	"database_max_conns":          4,
	"sbl_api_url":                 "http://localhost:3000",
	"sbl_api_timeout":             "15s",
	"sbl_api_health_timeout":      "10s",
	"schedule_timezone":           "Europe/Paris",
	"weekly_announcement_enabled": true,
	"deadline_check_enabled":      true,
	"nats_subject_prefix":         "sbl",
	"otel_enabled":                false,
	"otel_exporter_type":          "console",
	"otel_otlp_endpoint":          "localhost:4317",
	"otel_service_name":           "sbl-bot",
	"otel_export_interval_millis": 30000,
	"environment":                 "development",
	"log_level":                   "info",
}

var (
	instance *Config
	once     sync.Once
	mu       sync.RWMutex
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		cfg, err := load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
		mu.Lock()
		instance = cfg
		mu.Unlock()
	})

	mu.RLock()
	defer mu.RUnlock()
	return instance
}

// load reads the optional YAML file, overlays the environment and fills in defaults
func load() (*Config, error) {
	k := koanf.New(".")

	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		path = "config.yaml"
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := k.Load(env.Provider("", ".", strings.ToLower), nil); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	for key, value := range defaults {
		if !k.Exists(key) || k.String(key) == "" {
			if err := k.Set(key, value); err != nil {
				return nil, fmt.Errorf("failed to set default %s: %w", key, err)
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the required keys. The test environment skips it.
func (c *Config) Validate() error {
	if c.IsTest() {
		return nil
	}
	if c.DiscordToken == "" {
		return fmt.Errorf("DISCORD_TOKEN is required")
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if _, err := time.LoadLocation(c.ScheduleTimezone); err != nil {
		return fmt.Errorf("invalid SCHEDULE_TIMEZONE %q: %w", c.ScheduleTimezone, err)
	}
	switch c.OTelExporterType {
	case "console", "otlp", "none":
	default:
		return fmt.Errorf("invalid OTEL_EXPORTER_TYPE %q, want console, otlp or none", c.OTelExporterType)
	}
	return nil
}

// IsTest reports whether the bot runs in the test environment
func (c *Config) IsTest() bool {
	return c.Environment == "test"
}

// IsProduction reports whether the bot runs in production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Location returns the league time zone, UTC when it cannot be loaded
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.ScheduleTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// SetTestConfig replaces the global instance
func SetTestConfig(cfg *Config) {
	once.Do(func() {})
	mu.Lock()
	defer mu.Unlock()
	instance = cfg
}

// ResetConfig clears the global instance so the next Get reloads it
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig returns a configuration usable without any environment
func NewTestConfig() *Config {
	return &Config{
		DatabaseName:              "sbl_bot_test",
		DatabaseMaxConns:          4,
		SBLAPIURL:                 "http://localhost:3000",
		SBLAPITimeout:             15 * time.Second,
		SBLAPIHealthTimeout:       10 * time.Second,
		ScheduleTimezone:          "Europe/Paris",
		WeeklyAnnouncementEnabled: true,
		DeadlineCheckEnabled:      true,
		NATSSubjectPrefix:         "sbl",
		OTelExporterType:          "none",
		OTelServiceName:           "sbl-bot",
		OTelExportIntervalMillis:  30000,
		Environment:               "test",
		LogLevel:                  "info",
	}
}
