package httpcheck

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/vk/bootgrid/internal/ctxlog"
	"github.com/vk/bootgrid/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Settings defines the settings block for the httpcheck handler.
type Settings struct {
	URL          string `hcl:"url"`
	Method       string `hcl:"method,optional"`
	ExpectStatus int    `hcl:"expect_status,optional"`
}

// Probe is the instance an httpcheck module produces. The health check
// re-issues the same request.
type Probe struct {
	Settings *Settings
	client   *http.Client
}

// Do issues the configured request once. Any non-matching status is an
// error; the orchestrator's retry loop supplies the waiting.
func (p *Probe) Do(ctx context.Context) error {
	method := p.Settings.Method
	if method == "" {
		method = http.MethodGet
	}

	req, err := http.NewRequestWithContext(ctx, method, p.Settings.URL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if p.Settings.ExpectStatus != 0 {
		if resp.StatusCode != p.Settings.ExpectStatus {
			return fmt.Errorf("unexpected status %d, want %d", resp.StatusCode, p.Settings.ExpectStatus)
		}
		return nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}

// InitHTTPCheck probes the configured URL once and returns the probe for
// later health checks.
func InitHTTPCheck(ctx context.Context, settingsRaw any) (any, error) {
	settings := settingsRaw.(*Settings)
	logger := ctxlog.FromContext(ctx).With("handler", "httpcheck", "url", settings.URL)
	logger.Debug("Probing URL")

	probe := &Probe{Settings: settings, client: http.DefaultClient}
	if err := probe.Do(ctx); err != nil {
		return nil, err
	}

	logger.Debug("Probe succeeded")
	return probe, nil
}

// HealthHTTPCheck re-probes the URL after bring-up completes.
func HealthHTTPCheck(ctx context.Context, instance any) error {
	probe, ok := instance.(*Probe)
	if !ok {
		return fmt.Errorf("unexpected instance type %T", instance)
	}
	return probe.Do(ctx)
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterHandler("InitHTTPCheck", &registry.RegisteredHandler{
		NewSettings: func() any { return new(Settings) },
		Init:        InitHTTPCheck,
		Health:      HealthHTTPCheck,
	})
}
