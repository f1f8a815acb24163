package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/vk/bootgrid/internal/executor"
)

// statusServer exposes the orchestration state over HTTP: /health for
// readiness probes, /summary for the last run's result, /metrics for
// Prometheus.
var statusServerShutdownTimeout = 5 * time.Second

func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("Health endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)

	summary := a.exec.Summary()
	if a.exec.CurrentPhase() == executor.Completed && summary != nil && summary.Success {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "OK")
		return
	}
	w.WriteHeader(http.StatusServiceUnavailable)
	fmt.Fprintln(w, "NOT READY")
}

func (a *App) summaryHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if summary := a.exec.Summary(); summary != nil {
		_ = json.NewEncoder(w).Encode(summary)
		return
	}
	// No summary yet: report in-flight progress instead.
	p := a.exec.Progress()
	_ = json.NewEncoder(w).Encode(map[string]any{
		"total":     p.Total,
		"completed": p.Completed,
		"failed":    p.Failed,
		"current":   p.Current,
	})
}

// startStatusServer runs the status HTTP server in a goroutine.
func (a *App) startStatusServer(port int) {
	a.logger.Debug("Configuring status server.")
	mux := http.NewServeMux()
	mux.HandleFunc("/health", a.healthHandler)
	mux.HandleFunc("/summary", a.summaryHandler)
	mux.Handle("/metrics", a.metrics.Handler())

	addr := fmt.Sprintf(":%d", port)
	a.statusSrv = &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		a.logger.Info("🩺 Status server starting", "address", fmt.Sprintf("http://localhost%s/health", addr))
		if err := a.statusSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("Status server failed unexpectedly", "error", err)
		}
	}()
}

// closeStatusServer shuts the status server down gracefully, if it was running.
func (a *App) closeStatusServer(ctx context.Context) {
	if a.statusSrv == nil {
		return
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, statusServerShutdownTimeout)
	defer cancel()

	a.logger.Debug("Shutting down status server...")
	if err := a.statusSrv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("Status server shutdown failed", "error", err)
		return
	}
	a.logger.Debug("Status server shut down gracefully.")
}
