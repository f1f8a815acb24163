// Package hooks provides the observational lifecycle bus invoked around each
// module's initialization. Hooks never affect control flow: a hook that
// returns an error is logged and execution continues.
package hooks

import (
	"context"
	"fmt"
	"sync"

	"github.com/vk/bootgrid/internal/ctxlog"
)

// Phase identifies when a hook fires relative to a module's initializer.
type Phase string

const (
	PhaseBefore Phase = "before"
	PhaseAfter  Phase = "after"
)

// Wildcard matches every module name.
const Wildcard = "*"

// Func is a lifecycle callback. The module name and phase are passed so one
// function can be registered under several keys.
type Func func(ctx context.Context, module string, phase Phase) error

// Bus holds registered lifecycle callbacks keyed by "{phase}:{module}".
// Registration order is preserved per key. A Bus is safe for concurrent use:
// modules inside a batch run hooks from separate goroutines.
type Bus struct {
	mu        sync.RWMutex
	callbacks map[string][]Func
}

// NewBus creates an empty hook bus.
func NewBus() *Bus {
	return &Bus{callbacks: make(map[string][]Func)}
}

// Add registers fn for the given phase and module name. Use Wildcard to match
// every module.
func (b *Bus) Add(phase Phase, module string, fn Func) {
	if fn == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	k := key(phase, module)
	b.callbacks[k] = append(b.callbacks[k], fn)
}

// Run invokes every wildcard callback for the phase, then every callback
// registered for the specific module, in registration order. Errors are
// logged and swallowed.
func (b *Bus) Run(ctx context.Context, phase Phase, module string) {
	b.mu.RLock()
	fns := append([]Func{}, b.callbacks[key(phase, Wildcard)]...)
	fns = append(fns, b.callbacks[key(phase, module)]...)
	b.mu.RUnlock()

	logger := ctxlog.FromContext(ctx)
	for _, fn := range fns {
		if err := fn(ctx, module, phase); err != nil {
			logger.Warn("Lifecycle hook failed.", "phase", string(phase), "module", module, "error", err)
		}
	}
}

func key(phase Phase, module string) string {
	return fmt.Sprintf("%s:%s", phase, module)
}
