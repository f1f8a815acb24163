package socketio

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/vk/bootgrid/internal/ctxlog"
	"github.com/vk/bootgrid/internal/registry"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Settings defines the settings block for the socketio handler.
type Settings struct {
	URL                string            `hcl:"url"`
	Namespace          string            `hcl:"namespace,optional"`
	Timeout            string            `hcl:"timeout,optional"`
	HelloEvent         string            `hcl:"hello_event,optional"`
	HelloData          map[string]string `hcl:"hello_data,optional"`
	InsecureSkipVerify bool              `hcl:"insecure_skip_verify,optional"`
}

// Gateway is the instance a socketio module produces: a live connection to
// the realtime gateway that other modules and the host can reuse.
type Gateway struct {
	Socket    *socket.Socket
	connected atomic.Bool
}

// ConnectGateway is the handler for the 'socketio' module: it connects to the
// realtime gateway and resolves once the connection is established. Modules
// depending on this one can rely on the gateway being reachable.
func ConnectGateway(ctx context.Context, settingsRaw any) (any, error) {
	settings := settingsRaw.(*Settings)
	logger := ctxlog.FromContext(ctx).With("handler", "socketio", "url", settings.URL, "namespace", settings.Namespace)
	logger.Debug("Handler started")
	defer logger.Debug("Handler finished")

	timeout := 10 * time.Second
	if settings.Timeout != "" {
		parsed, err := time.ParseDuration(settings.Timeout)
		if err != nil {
			logger.Warn("Failed to parse timeout, using default 10s", "timeout", settings.Timeout, "error", err)
		} else {
			timeout = parsed
		}
	}

	parsedURL, err := url.Parse(settings.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	opts := socket.DefaultOptions()
	opts.SetPath(parsedURL.Path)

	if settings.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(settings.Namespace, opts)

	gateway := &Gateway{Socket: io}
	done := make(chan error, 1)

	io.On(types.EventName("connect"), func(...any) {
		gateway.connected.Store(true)
		logger.Info("Connected to realtime gateway", "sid", io.Id())
		if settings.HelloEvent != "" {
			logger.Debug("Emitting hello event", "event", settings.HelloEvent)
			io.Emit(settings.HelloEvent, settings.HelloData)
		}
		done <- nil
	})
	io.On(types.EventName("disconnect"), func(...any) {
		gateway.connected.Store(false)
	})
	io.On(types.EventName("connect_error"), func(errs ...any) {
		if err, ok := errs[0].(error); ok {
			done <- err
			return
		}
		done <- fmt.Errorf("connect error: %v", errs[0])
	})

	opCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	io.Connect()

	select {
	case <-opCtx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("timed out while waiting for initial connection")
	case err := <-done:
		if err != nil {
			io.Disconnect()
			return nil, err
		}
		return gateway, nil
	}
}

// GatewayHealth reports whether the gateway connection is still up.
func GatewayHealth(ctx context.Context, instance any) error {
	gateway, ok := instance.(*Gateway)
	if !ok {
		return fmt.Errorf("unexpected instance type %T", instance)
	}
	if !gateway.connected.Load() {
		return fmt.Errorf("gateway connection lost")
	}
	return nil
}

// DisconnectGateway closes the gateway connection during cleanup.
func DisconnectGateway(ctx context.Context, instance any) error {
	logger := ctxlog.FromContext(ctx)
	gateway, ok := instance.(*Gateway)
	if !ok {
		return fmt.Errorf("unexpected instance type %T", instance)
	}
	logger.Debug("Disconnecting from realtime gateway")
	gateway.Socket.Disconnect()
	gateway.connected.Store(false)
	return nil
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterHandler("ConnectGateway", &registry.RegisteredHandler{
		NewSettings: func() any { return new(Settings) },
		Init:        ConnectGateway,
		Health:      GatewayHealth,
		Cleanup:     DisconnectGateway,
	})
}
