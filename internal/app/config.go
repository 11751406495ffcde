package app

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix prefixes every environment variable read into Config.
const EnvPrefix = "DVCHECK_"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// ScriptPath is an .hcl/.yaml file or a directory of them.
	ScriptPath string `env:"SCRIPT"`
	// DataPath and IDColumn override the script's dataset section.
	DataPath string `env:"DATA"`
	IDColumn string `env:"ID_COLUMN"`
	// Delimiter overrides the script's dataset delimiter.
	Delimiter string `env:"DELIMITER"`

	ReportFormat string `env:"REPORT_FORMAT" envDefault:"text"`
	LogFormat    string `env:"LOG_FORMAT" envDefault:"text"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
	WorkerCount  int    `env:"WORKERS" envDefault:"4"`

	// Debug lists failing row ids in every report.
	Debug bool `env:"DEBUG"`
	// Strict makes failing or faulted checks an unsuccessful run.
	Strict bool `env:"STRICT"`
}

// ConfigFromEnv reads DVCHECK_* variables from environ, applying defaults for
// the variables that are absent. A nil environ reads nothing.
func ConfigFromEnv(environ map[string]string) (Config, error) {
	if environ == nil {
		environ = map[string]string{}
	}
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{
		Prefix:      EnvPrefix,
		Environment: environ,
	}); err != nil {
		return Config{}, fmt.Errorf("failed to read environment: %w", err)
	}
	return cfg, nil
}

// NewConfig normalizes and validates cfg.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ScriptPath == "" {
		return nil, errors.New("ScriptPath is a required configuration field and cannot be empty")
	}

	cfg.ReportFormat = strings.ToLower(cfg.ReportFormat)
	if cfg.ReportFormat != "text" && cfg.ReportFormat != "json" {
		return nil, fmt.Errorf("invalid report-format %q: must be 'text' or 'json'", cfg.ReportFormat)
	}

	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("invalid log-format %q: must be 'text' or 'json'", cfg.LogFormat)
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log-level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}

	if cfg.WorkerCount <= 0 {
		return nil, fmt.Errorf("invalid workers %d: must be positive", cfg.WorkerCount)
	}

	if cfg.Delimiter != "" && utf8.RuneCountInString(cfg.Delimiter) != 1 {
		return nil, fmt.Errorf("invalid delimiter %q: must be a single character", cfg.Delimiter)
	}

	return &cfg, nil
}
