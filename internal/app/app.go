package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/specialistvlad/dvcheck/internal/ctxlog"
	"github.com/specialistvlad/dvcheck/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	config   *Config
	runID    string
}

// NewApp is the constructor for the main application. Reports are written to
// outW and logs to logW. With no modules given, the core rule modules are
// registered. An invalid registry is a programmer error and panics.
func NewApp(outW, logW io.Writer, cfg *Config, modules ...registry.Module) *App {
	runID := uuid.NewString()
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW).With("run_id", runID)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All rule modules registered.", "count", len(modules), "rules", reg.Rules())

	if err := reg.ValidateRegistry(ctx); err != nil {
		panic(err)
	}
	logger.Debug("Registry validation passed.")

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		config:   cfg,
		runID:    runID,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// RunID identifies this App's run in logs and JSON reports.
func (a *App) RunID() string {
	return a.runID
}
