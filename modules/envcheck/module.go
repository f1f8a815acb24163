package envcheck

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/vk/bootgrid/internal/ctxlog"
	"github.com/vk/bootgrid/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Settings defines the settings block for the envcheck handler.
type Settings struct {
	// Names lists the environment variables that must be present and non-empty.
	Names []string `hcl:"names"`
}

// InitEnvCheck asserts that every named environment variable is set and
// returns their values. A missing variable fails the attempt, which lets the
// orchestrator's retry and required/optional policy decide what happens next.
func InitEnvCheck(ctx context.Context, settingsRaw any) (any, error) {
	logger := ctxlog.FromContext(ctx).With("handler", "envcheck")
	settings := settingsRaw.(*Settings)

	found := make(map[string]string, len(settings.Names))
	var missing []string
	for _, name := range settings.Names {
		value, ok := os.LookupEnv(name)
		if !ok || value == "" {
			missing = append(missing, name)
			continue
		}
		found[name] = value
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("missing environment variables: %s", strings.Join(missing, ", "))
	}

	logger.Debug("Environment check passed.", "count", len(found))
	return found, nil
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterHandler("InitEnvCheck", &registry.RegisteredHandler{
		NewSettings: func() any { return new(Settings) },
		Init:        InitEnvCheck,
	})
}
