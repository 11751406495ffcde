package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := ConfigFromEnv(nil)
		require.NoError(t, err)
		assert.Equal(t, Config{
			ReportFormat: "text",
			LogFormat:    "text",
			LogLevel:     "info",
			WorkerCount:  4,
		}, cfg)
	})

	t.Run("prefixed variables", func(t *testing.T) {
		cfg, err := ConfigFromEnv(map[string]string{
			"DVCHECK_SCRIPT":    "checks",
			"DVCHECK_DATA":      "survey.csv",
			"DVCHECK_ID_COLUMN": "respid",
			"DVCHECK_DEBUG":     "true",
			"SCRIPT":            "unprefixed is ignored",
		})
		require.NoError(t, err)
		assert.Equal(t, "checks", cfg.ScriptPath)
		assert.Equal(t, "survey.csv", cfg.DataPath)
		assert.Equal(t, "respid", cfg.IDColumn)
		assert.True(t, cfg.Debug)
	})

	t.Run("malformed number", func(t *testing.T) {
		_, err := ConfigFromEnv(map[string]string{"DVCHECK_WORKERS": "lots"})
		assert.ErrorContains(t, err, "failed to read environment")
	})
}

func TestNewConfig(t *testing.T) {
	valid := Config{
		ScriptPath:   "checks.hcl",
		ReportFormat: "TEXT",
		LogFormat:    "Json",
		LogLevel:     "WARN",
		WorkerCount:  1,
	}

	cfg, err := NewConfig(valid)
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.ReportFormat)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "warn", cfg.LogLevel)

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "no script", mutate: func(c *Config) { c.ScriptPath = "" }, wantErr: "ScriptPath is a required"},
		{name: "report format", mutate: func(c *Config) { c.ReportFormat = "csv" }, wantErr: "invalid report-format"},
		{name: "log format", mutate: func(c *Config) { c.LogFormat = "xml" }, wantErr: "invalid log-format"},
		{name: "log level", mutate: func(c *Config) { c.LogLevel = "trace" }, wantErr: "invalid log-level"},
		{name: "workers", mutate: func(c *Config) { c.WorkerCount = 0 }, wantErr: "invalid workers"},
		{name: "delimiter", mutate: func(c *Config) { c.Delimiter = "||" }, wantErr: "invalid delimiter"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			_, err := NewConfig(c)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
