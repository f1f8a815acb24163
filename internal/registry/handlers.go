package registry

import (
	"context"
	"fmt"
	"log/slog"
)

// RegisteredHandler holds the compiled Go parts of a module's lifecycle. A
// boot manifest references a handler by name; the settings block of the
// manifest is decoded into the struct produced by NewSettings and handed to
// Init.
type RegisteredHandler struct {
	// NewSettings returns a pointer to the struct the manifest's settings
	// block decodes into. Nil means the handler takes no settings.
	NewSettings func() any

	// Init performs the module's startup work.
	Init func(ctx context.Context, settings any) (any, error)

	// Health is the optional advisory probe for the instance Init returned.
	Health func(ctx context.Context, instance any) error

	// Cleanup optionally releases the instance Init returned.
	Cleanup func(ctx context.Context, instance any) error
}

// RegisterHandler registers a Go lifecycle bundle under a manifest-visible name.
func (r *Registry) RegisterHandler(name string, h *RegisteredHandler) {
	if _, exists := r.handlers[name]; exists {
		panic(fmt.Sprintf("handler with name '%s' already registered", name))
	}
	if h == nil || h.Init == nil {
		panic(fmt.Sprintf("handler '%s' requires an Init function", name))
	}
	slog.Debug("Registering handler.", "name", name)
	r.handlers[name] = h
}

// Handler returns the lifecycle bundle registered under name, if any.
func (r *Registry) Handler(name string) (*RegisteredHandler, bool) {
	h, ok := r.handlers[name]
	return h, ok
}
