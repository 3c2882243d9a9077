package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("QUERYDESK_CONFIG", filepath.Join(t.TempDir(), "missing.json"))

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "sqlite3", cfg.Database.Driver)
	assert.Equal(t, 10, cfg.Database.MaxConnections)
	assert.Equal(t, "30s", cfg.Database.QueryTimeout)
	assert.Equal(t, 3, cfg.Database.SampleRows)
	assert.Equal(t, 5, cfg.Database.TrialRowLimit)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, "stderr", cfg.Logging.Output)
	assert.False(t, cfg.Debug.Enabled)
}

func TestLoadConfigFromFile(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.json")

	testConfig := map[string]interface{}{
		"database": map[string]interface{}{
			"path":   "/custom/path/court.db",
			"driver": "duckdb",
		},
		"logging": map[string]interface{}{
			"level":  "debug",
			"format": "json",
		},
		"library": map[string]interface{}{
			"path": "/custom/library.json",
		},
	}

	data, err := json.MarshalIndent(testConfig, "", "  ")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(configPath, data, 0600))

	t.Setenv("QUERYDESK_CONFIG", configPath)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "/custom/path/court.db", cfg.Database.Path)
	assert.Equal(t, "duckdb", cfg.Database.Driver)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "/custom/library.json", cfg.Library.Path)
	// Untouched fields keep their defaults
	assert.Equal(t, 10, cfg.Database.MaxConnections)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("QUERYDESK_CONFIG", filepath.Join(t.TempDir(), "missing.json"))
	t.Setenv("QUERYDESK_DB_PATH", "/env/court.db")
	t.Setenv("QUERYDESK_LOG_LEVEL", "warn")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "/env/court.db", cfg.Database.Path)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestFlagOverrides(t *testing.T) {
	t.Setenv("QUERYDESK_CONFIG", filepath.Join(t.TempDir(), "missing.json"))

	cfg, err := LoadConfigWithOverrides(map[string]interface{}{
		"db-path":   "/flag/court.db",
		"db-driver": "duckdb",
		"verbose":   true,
	})
	require.NoError(t, err)

	assert.Equal(t, "/flag/court.db", cfg.Database.Path)
	assert.Equal(t, "duckdb", cfg.Database.Driver)
	assert.True(t, cfg.Debug.Verbose)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "invalid log level",
			mutate:  func(c *Config) { c.Logging.Level = "loud" },
			wantErr: "invalid log level",
		},
		{
			name:    "invalid log format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "invalid log format",
		},
		{
			name:    "invalid driver",
			mutate:  func(c *Config) { c.Database.Driver = "oracle" },
			wantErr: "invalid database driver",
		},
		{
			name:    "invalid timeout",
			mutate:  func(c *Config) { c.Database.QueryTimeout = "soon" },
			wantErr: "invalid database query timeout",
		},
		{
			name:    "non-positive trial row limit",
			mutate:  func(c *Config) { c.Database.TrialRowLimit = 0 },
			wantErr: "trial row limit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Database: DatabaseConfig{
					Driver:          "sqlite3",
					MaxConnections:  10,
					QueryTimeout:    "30s",
					ConnMaxIdleTime: "5m",
					SampleRows:      3,
					TrialRowLimit:   5,
				},
				Logging: LoggingConfig{Level: "info", Format: "text", Output: "stderr"},
			}
			tt.mutate(cfg)

			err := validateConfig(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestExpandPath(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(homeDir, "data"), expandPath("~/data"))
	assert.Equal(t, homeDir, expandPath("~"))
	assert.Equal(t, "/absolute/path", expandPath("/absolute/path"))
}

func TestQueryTimeoutDuration(t *testing.T) {
	cfg := DatabaseConfig{QueryTimeout: "10s"}
	assert.Equal(t, "10s", cfg.QueryTimeoutDuration().String())

	cfg.QueryTimeout = "bogus"
	assert.Equal(t, "30s", cfg.QueryTimeoutDuration().String())
}
