package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	out := &bytes.Buffer{}
	cfg, exit, err := Parse([]string{"checks.hcl"}, out, nil)
	require.NoError(t, err)
	require.False(t, exit)

	assert.Equal(t, "checks.hcl", cfg.ScriptPath)
	assert.Equal(t, "text", cfg.ReportFormat)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 4, cfg.WorkerCount)
	assert.False(t, cfg.Debug)
	assert.False(t, cfg.Strict)
}

func TestParse_Flags(t *testing.T) {
	cfg, _, err := Parse([]string{
		"--script", "dir",
		"--data", "survey.csv",
		"--id-column", "respid",
		"--delimiter", ";",
		"--report-format", "JSON",
		"--log-level", "debug",
		"--workers", "2",
		"--debug",
		"--strict",
	}, &bytes.Buffer{}, nil)
	require.NoError(t, err)

	assert.Equal(t, "dir", cfg.ScriptPath)
	assert.Equal(t, "survey.csv", cfg.DataPath)
	assert.Equal(t, "respid", cfg.IDColumn)
	assert.Equal(t, ";", cfg.Delimiter)
	assert.Equal(t, "json", cfg.ReportFormat)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 2, cfg.WorkerCount)
	assert.True(t, cfg.Debug)
	assert.True(t, cfg.Strict)
}

func TestParse_ShorthandScript(t *testing.T) {
	cfg, _, err := Parse([]string{"-s", "a.yaml", "ignored.hcl"}, &bytes.Buffer{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "a.yaml", cfg.ScriptPath)
}

func TestParse_Environment(t *testing.T) {
	environ := map[string]string{
		"DVCHECK_SCRIPT":        "env.hcl",
		"DVCHECK_REPORT_FORMAT": "json",
		"DVCHECK_WORKERS":       "8",
		"DVCHECK_STRICT":        "true",
	}

	t.Run("environment fills the config", func(t *testing.T) {
		cfg, exit, err := Parse(nil, &bytes.Buffer{}, environ)
		require.NoError(t, err)
		require.False(t, exit)
		assert.Equal(t, "env.hcl", cfg.ScriptPath)
		assert.Equal(t, "json", cfg.ReportFormat)
		assert.Equal(t, 8, cfg.WorkerCount)
		assert.True(t, cfg.Strict)
	})

	t.Run("explicit flags win", func(t *testing.T) {
		cfg, _, err := Parse([]string{"--workers", "1", "cli.hcl"}, &bytes.Buffer{}, environ)
		require.NoError(t, err)
		assert.Equal(t, "cli.hcl", cfg.ScriptPath)
		assert.Equal(t, 1, cfg.WorkerCount)
		assert.Equal(t, "json", cfg.ReportFormat, "unset flag must not reset the environment value")
	})

	t.Run("malformed variable", func(t *testing.T) {
		_, _, err := Parse(nil, &bytes.Buffer{}, map[string]string{"DVCHECK_SCRIPT": "x", "DVCHECK_WORKERS": "many"})
		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, 2, exitErr.Code)
	})
}

func TestParse_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DVCHECK_SCRIPT=file.hcl\nDVCHECK_DEBUG=true\nDVCHECK_LOG_LEVEL=warn\n"), 0o644))

	cfg, _, err := Parse([]string{"--env-file", path}, &bytes.Buffer{}, map[string]string{"DVCHECK_LOG_LEVEL": "error"})
	require.NoError(t, err)
	assert.Equal(t, "file.hcl", cfg.ScriptPath)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "error", cfg.LogLevel, "process environment overrides the env file")

	_, _, err = Parse([]string{"--env-file", filepath.Join(t.TempDir(), "missing")}, &bytes.Buffer{}, nil)
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}

func TestParse_ExitCases(t *testing.T) {
	t.Run("help", func(t *testing.T) {
		out := &bytes.Buffer{}
		cfg, exit, err := Parse([]string{"-h"}, out, nil)
		require.NoError(t, err)
		assert.True(t, exit)
		assert.Nil(t, cfg)
		assert.Contains(t, out.String(), "Usage:")
	})

	t.Run("no script prints usage", func(t *testing.T) {
		out := &bytes.Buffer{}
		_, exit, err := Parse(nil, out, nil)
		require.NoError(t, err)
		assert.True(t, exit)
		assert.Contains(t, out.String(), "SCRIPT_PATH")
	})
}

func TestParse_InvalidValues(t *testing.T) {
	cases := map[string][]string{
		"unknown flag":   {"--nope"},
		"report format":  {"--report-format", "xml", "a.hcl"},
		"log format":     {"--log-format", "yaml", "a.hcl"},
		"log level":      {"--log-level", "loud", "a.hcl"},
		"zero workers":   {"--workers", "0", "a.hcl"},
		"long delimiter": {"--delimiter", ";;", "a.hcl"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := Parse(args, &bytes.Buffer{}, nil)
			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
		})
	}
}
