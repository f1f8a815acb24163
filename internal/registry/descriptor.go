package registry

import (
	"context"
	"time"
)

// InitFunc performs a module's startup work and returns an opaque instance
// value (a connection, a client, whatever the module produces) that is later
// passed to its health and cleanup callbacks.
type InitFunc func(ctx context.Context) (any, error)

// HealthFunc is an advisory post-initialization probe for a module instance.
type HealthFunc func(ctx context.Context, instance any) error

// CleanupFunc releases whatever a module's initializer acquired.
type CleanupFunc func(ctx context.Context, instance any) error

// Default bounds applied when a descriptor leaves them zero.
const (
	DefaultTimeout    = 30 * time.Second
	DefaultMaxRetries = 1
	DefaultRetryDelay = 250 * time.Millisecond
)

// Descriptor describes one named unit of startup work.
type Descriptor struct {
	// Name uniquely identifies the module within a registry.
	Name string

	// DependsOn lists the modules that must have settled before this one may
	// start. A name that matches no registered module is treated as already
	// satisfied unless strict dependency checking is enabled.
	DependsOn []string

	// Priority orders modules within a batch for logging and telemetry.
	// Execution inside a batch is concurrent, so it carries no ordering
	// guarantee.
	Priority int

	// Required marks the module as fatal-on-failure: exhausting its retry
	// budget aborts the whole orchestration run.
	Required bool

	// Timeout bounds a single initialization attempt. Zero means DefaultTimeout.
	Timeout time.Duration

	// MaxRetries is the total number of attempts (not additional retries).
	// Zero means DefaultMaxRetries.
	MaxRetries int

	// RetryDelay is the fixed pause between attempts. This is deliberately
	// linear retry, not exponential backoff. Zero means DefaultRetryDelay.
	RetryDelay time.Duration

	// Init performs the actual startup work.
	Init InitFunc

	// HealthCheck, if set, is run after all batches complete for modules that
	// initialized successfully. A failing check is surfaced in the summary but
	// does not mark the module failed.
	HealthCheck HealthFunc

	// Cleanup, if set, is invoked by Executor.Cleanup in reverse
	// initialization order.
	Cleanup CleanupFunc
}

// EffectiveTimeout returns the attempt timeout with the default applied.
func (d *Descriptor) EffectiveTimeout() time.Duration {
	if d.Timeout <= 0 {
		return DefaultTimeout
	}
	return d.Timeout
}

// EffectiveMaxRetries returns the attempt budget with the default applied.
func (d *Descriptor) EffectiveMaxRetries() int {
	if d.MaxRetries <= 0 {
		return DefaultMaxRetries
	}
	return d.MaxRetries
}

// EffectiveRetryDelay returns the inter-attempt delay with the default applied.
func (d *Descriptor) EffectiveRetryDelay() time.Duration {
	if d.RetryDelay <= 0 {
		return DefaultRetryDelay
	}
	return d.RetryDelay
}
