package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests mutate the process environment and the singleton, so they do
// not run in parallel.

func withEnv(t *testing.T, vars map[string]string) {
	t.Helper()
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func TestLoad_Defaults(t *testing.T) {
	withEnv(t, map[string]string{"ENVIRONMENT": "test", "SBL_API_URL": ""})

	cfg, err := load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:3000", cfg.SBLAPIURL)
	assert.Equal(t, 4, cfg.DatabaseMaxConns)
	assert.Equal(t, 15*time.Second, cfg.SBLAPITimeout)
	assert.Equal(t, 10*time.Second, cfg.SBLAPIHealthTimeout)
	assert.Equal(t, "Europe/Paris", cfg.ScheduleTimezone)
	assert.True(t, cfg.WeeklyAnnouncementEnabled)
	assert.True(t, cfg.DeadlineCheckEnabled)
	assert.Equal(t, "sbl", cfg.NATSSubjectPrefix)
	assert.Equal(t, "console", cfg.OTelExporterType)
	assert.Equal(t, 30000, cfg.OTelExportIntervalMillis)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.IsTest())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"sbl_api_url: http://file.example\n"+
			"sbl_api_timeout: 20s\n"+
			"nats_subject_prefix: league\n"+
			"deadline_check_enabled: false\n",
	), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("SBL_API_URL", "http://env.example")
	t.Setenv("OTEL_EXPORT_INTERVAL_MILLIS", "5000")
	t.Setenv("DATABASE_MAX_CONNS", "12")

	cfg, err := load()
	require.NoError(t, err)

	assert.Equal(t, "http://env.example", cfg.SBLAPIURL)
	assert.Equal(t, 20*time.Second, cfg.SBLAPITimeout)
	assert.Equal(t, "league", cfg.NATSSubjectPrefix)
	assert.False(t, cfg.DeadlineCheckEnabled)
	assert.Equal(t, 5000, cfg.OTelExportIntervalMillis)
	assert.Equal(t, 12, cfg.DatabaseMaxConns)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{
			name: "missing token",
			env:  map[string]string{"ENVIRONMENT": "production", "DISCORD_TOKEN": "", "DATABASE_URL": "postgres://x"},
			want: "DISCORD_TOKEN is required",
		},
		{
			name: "missing database",
			env:  map[string]string{"ENVIRONMENT": "production", "DISCORD_TOKEN": "t", "DATABASE_URL": ""},
			want: "DATABASE_URL is required",
		},
		{
			name: "bad exporter",
			env: map[string]string{
				"ENVIRONMENT": "production", "DISCORD_TOKEN": "t", "DATABASE_URL": "postgres://x",
				"OTEL_EXPORTER_TYPE": "zipkin",
			},
			want: "invalid OTEL_EXPORTER_TYPE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withEnv(t, tt.env)
			_, err := load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSetTestConfig(t *testing.T) {
	t.Cleanup(ResetConfig)

	cfg := NewTestConfig()
	cfg.SBLAPIURL = "http://stub"
	SetTestConfig(cfg)

	assert.Same(t, cfg, Get())
	assert.Equal(t, "Europe/Paris", Get().Location().String())
}
