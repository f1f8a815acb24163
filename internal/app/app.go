package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/vk/bootgrid/internal/config"
	"github.com/vk/bootgrid/internal/ctxlog"
	"github.com/vk/bootgrid/internal/executor"
	"github.com/vk/bootgrid/internal/hooks"
	"github.com/vk/bootgrid/internal/metrics"
	"github.com/vk/bootgrid/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle. Every App owns its own logger, registry, hook bus, metrics, and
// executor; nothing is shared through package globals.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	cfg      *Config
	registry *registry.Registry
	hooks    *hooks.Bus
	metrics  *metrics.Metrics
	exec     *executor.Executor
	model    *config.Model

	statusSrv *http.Server
}

// NewApp is the constructor for the main application. It loads the boot
// manifests, registers the given handler modules (the built-in set when none
// are passed), and binds every manifest module into the registry. A failure
// to load configuration is a fatal startup error and panics; main recovers it
// into a clean exit message.
func NewApp(outW io.Writer, cfg *Config, loader config.Loader, modules ...registry.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	model, err := loader.Load(ctx, cfg.ManifestPath)
	if err != nil {
		panic(fmt.Errorf("failed to load boot manifests: %w", err))
	}
	logger.Debug("Boot manifests loaded.", "module_count", len(model.Modules))

	reg := registry.New()
	if len(modules) == 0 {
		modules = builtinModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("Handler modules registered.", "count", len(modules))

	a := &App{
		outW:     outW,
		logger:   logger,
		cfg:      cfg,
		registry: reg,
		hooks:    hooks.NewBus(),
		metrics:  metrics.New(),
		model:    model,
	}

	if err := a.bindModel(model); err != nil {
		panic(fmt.Errorf("failed to bind boot manifests: %w", err))
	}
	logger.Debug("Manifest modules bound into registry.")

	a.exec = executor.New(reg, a.hooks, a.metrics, executor.Options{StrictDeps: cfg.StrictDeps})
	return a
}

// Registry returns the application's registry, primarily for tests and for
// hosts registering programmatic modules alongside manifest ones.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Hooks returns the application's lifecycle hook bus.
func (a *App) Hooks() *hooks.Bus {
	return a.hooks
}

// Executor returns the application's executor, for hosts that need the
// orchestration surface (Summary, Instance, Cleanup) directly.
func (a *App) Executor() *executor.Executor {
	return a.exec
}
