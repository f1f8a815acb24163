package executor

import (
	"context"

	"github.com/vk/bootgrid/internal/ctxlog"
)

// Cleanup invokes the cleanup callback of every successfully initialized
// module in reverse completion order, passing each the instance its
// initializer produced. Cleanup is best-effort: failures are logged and never
// propagated.
func (e *Executor) Cleanup(ctx context.Context) {
	logger := ctxlog.FromContext(ctx)

	e.mu.Lock()
	state := e.state
	e.mu.Unlock()
	if state == nil {
		return
	}

	order := state.completionOrder()
	for i := len(order) - 1; i >= 0; i-- {
		name := order[i]
		d, ok := e.registry.Get(name)
		if !ok || d.Cleanup == nil {
			continue
		}
		instance, _ := state.instance(name)

		logger.Debug("Cleaning up module.", "module", name)
		if err := d.Cleanup(ctx, instance); err != nil {
			logger.Warn("Module cleanup failed.", "module", name, "error", err)
		}
	}
}
