package app

import (
	"context"
	"fmt"

	"github.com/vk/bootgrid/internal/ctxlog"
)

// Run executes the bring-up: it starts the status server if one is
// configured, then drives every module through the executor and logs the
// resulting summary. A required-module failure is returned as the fatal
// error it is.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.cfg.StatusPort > 0 {
		a.startStatusServer(a.cfg.StatusPort)
	}

	if a.registry.Len() == 0 {
		a.logger.Warn("No modules registered, nothing to initialize.")
		return nil
	}

	a.logger.Info("🚀 Starting module initialization...", "modules", a.registry.Len())
	summary, err := a.exec.Initialize(ctx)
	if summary != nil {
		a.logger.Info("🏁 Initialization finished.",
			"total", summary.Total,
			"completed", summary.Completed,
			"failed", summary.Failed,
			"success", summary.Success,
			"aborted", summary.Aborted,
			"unhealthy", summary.Unhealthy,
		)
	}
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// Cleanup releases every initialized module in reverse order, best-effort.
func (a *App) Cleanup(ctx context.Context) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.exec.Cleanup(ctx)
	a.closeStatusServer(ctx)
}
