package print

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/vk/bootgrid/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Settings defines the settings block for the print handler.
type Settings struct {
	Values map[string]string `hcl:"values,optional"`
}

// InitPrint is the handler for the 'print' module: it writes the resolved
// settings as a boot banner and completes immediately.
func InitPrint(ctx context.Context, settingsRaw any) (any, error) {
	slog.Info("Printing boot banner")
	settings := settingsRaw.(*Settings)

	if settings.Values == nil {
		fmt.Println("      (null)")
		return nil, nil
	}

	// Sort keys for consistent output
	keys := make([]string, 0, len(settings.Values))
	for k := range settings.Values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		fmt.Printf("      %s = %q\n", k, settings.Values[k])
	}

	return nil, nil
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterHandler("InitPrint", &registry.RegisteredHandler{
		NewSettings: func() any { return new(Settings) },
		Init:        InitPrint,
	})
}
