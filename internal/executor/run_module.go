package executor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vk/bootgrid/internal/ctxlog"
	"github.com/vk/bootgrid/internal/hooks"
	"github.com/vk/bootgrid/internal/registry"
)

// runModule drives one module to a terminal outcome: initialized, or failed
// after exhausting its attempt budget. A nil return means the caller may
// proceed; a non-nil return is always a RequiredFailureError.
func (e *Executor) runModule(ctx context.Context, d *registry.Descriptor) error {
	logger := ctxlog.FromContext(ctx).With("module", d.Name)
	maxAttempts := d.EffectiveMaxRetries()

	for attempt := 1; ; attempt++ {
		if !e.state.beginAttempt(d.Name) {
			logger.Debug("Module already initialized or in flight, skipping.")
			return nil
		}

		e.hooks.Run(ctx, hooks.PhaseBefore, d.Name)

		start := time.Now()
		instance, err := e.attempt(ctx, d)
		if err == nil {
			e.state.markInitialized(d.Name, instance)
			e.metrics.ObserveInit(d.Name, time.Since(start), nil)
			e.hooks.Run(ctx, hooks.PhaseAfter, d.Name)
			logger.Info("✅ Module initialized", "attempt", attempt)
			return nil
		}

		e.state.endAttempt(d.Name)

		if attempt >= maxAttempts {
			return e.fail(ctx, d, time.Since(start), err)
		}

		e.metrics.ObserveRetry()
		logger.Warn("Module initialization failed, retrying.", "attempt", attempt, "max_attempts", maxAttempts, "error", err)
		select {
		case <-time.After(d.EffectiveRetryDelay()):
		case <-ctx.Done():
			return e.fail(ctx, d, time.Since(start), fmt.Errorf("canceled while waiting to retry: %w", ctx.Err()))
		}
	}
}

// attempt races one initializer invocation against the module's timeout. The
// initializer receives a context that is canceled at the deadline, but a
// handler that ignores its context is still abandoned: the attempt settles
// with a TimeoutError and the stray goroutine is left to finish on its own.
func (e *Executor) attempt(ctx context.Context, d *registry.Descriptor) (any, error) {
	timeout := d.EffectiveTimeout()
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		instance any
		err      error
	}
	done := make(chan result, 1)
	go func() {
		instance, err := d.Init(attemptCtx)
		done <- result{instance, err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			return nil, &InitError{Module: d.Name, Err: res.err}
		}
		return res.instance, nil
	case <-attemptCtx.Done():
		if errors.Is(attemptCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, &TimeoutError{Module: d.Name, Timeout: timeout}
		}
		return nil, ctx.Err()
	}
}

// fail records a terminal failure. Required modules produce the fatal error
// that aborts the run; optional modules are logged and swallowed.
func (e *Executor) fail(ctx context.Context, d *registry.Descriptor, elapsed time.Duration, err error) error {
	logger := ctxlog.FromContext(ctx).With("module", d.Name)
	e.state.markFailed(d.Name, err)
	e.metrics.ObserveInit(d.Name, elapsed, err)

	if d.Required {
		logger.Error("Required module failed terminally.", "error", err)
		return &RequiredFailureError{Module: d.Name, Err: err}
	}
	logger.Warn("Optional module failed terminally, continuing.", "error", err)
	return nil
}
