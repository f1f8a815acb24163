package executor

import (
	"context"
	"sync"

	"github.com/vk/bootgrid/internal/ctxlog"
	"github.com/vk/bootgrid/internal/hooks"
	"github.com/vk/bootgrid/internal/metrics"
	"github.com/vk/bootgrid/internal/registry"
	"github.com/vk/bootgrid/internal/scheduler"
)

// Phase is the lifecycle of a single orchestration run.
type Phase int

const (
	NotStarted Phase = iota
	Running
	Completed
	Aborted
)

// Options controls executor behavior.
type Options struct {
	// StrictDeps fails the run on unknown dependencies and on a deadlocked
	// plan. The default is lenient: unknown dependencies count as satisfied
	// and deadlocked modules are attempted in one final batch, failing
	// through the normal error path.
	StrictDeps bool
}

// Executor owns the orchestration of one registry's modules. Construct one
// per application; there is no package-level instance.
type Executor struct {
	registry *registry.Registry
	hooks    *hooks.Bus
	metrics  *metrics.Metrics
	opts     Options

	mu      sync.Mutex
	phase   Phase
	state   *runState
	summary *Summary
}

// New creates an Executor. bus and m may be nil; a nil bus is replaced with
// an empty one and a nil m disables metrics.
func New(reg *registry.Registry, bus *hooks.Bus, m *metrics.Metrics, opts Options) *Executor {
	if bus == nil {
		bus = hooks.NewBus()
	}
	return &Executor{
		registry: reg,
		hooks:    bus,
		metrics:  m,
		opts:     opts,
		phase:    NotStarted,
	}
}

// Initialize runs every registered module in dependency order and returns the
// run summary. On a required-module failure the returned error is a
// RequiredFailureError and the summary reflects the partial run; callers that
// need the post-abort state can also retrieve it later via Summary.
func (e *Executor) Initialize(ctx context.Context) (*Summary, error) {
	logger := ctxlog.FromContext(ctx)

	e.mu.Lock()
	state := newRunState(e.registry.Len())
	e.state = state
	e.phase = Running
	e.summary = nil
	e.mu.Unlock()

	plan, err := scheduler.Compute(ctx, e.registry, scheduler.Options{StrictDeps: e.opts.StrictDeps})
	if err != nil {
		e.setPhase(Aborted)
		return nil, err
	}

	batches := plan.Batches
	if plan.Deadlocked() {
		if e.opts.StrictDeps {
			e.setPhase(Aborted)
			return nil, &scheduler.DeadlockError{Modules: plan.Stuck}
		}
		logger.Warn("Attempting deadlocked modules in a final batch.", "stuck", plan.Stuck)
		batches = append(batches, plan.Stuck)
	}

	var abortErr error
	for i, batch := range batches {
		logger.Debug("Starting batch.", "batch", i, "modules", batch)
		if err := e.runBatch(ctx, batch); err != nil {
			abortErr = err
			logger.Error("Aborting run after required module failure.", "batch", i, "error", err)
			break
		}
	}

	unhealthy := e.runHealthChecks(ctx)
	summary := state.summarize(unhealthy, abortErr != nil)

	e.mu.Lock()
	e.summary = summary
	if abortErr != nil {
		e.phase = Aborted
	} else {
		e.phase = Completed
	}
	e.mu.Unlock()

	if abortErr != nil {
		return summary, abortErr
	}
	return summary, nil
}

// runBatch initializes every module of the batch concurrently and waits for
// all of them to settle. The join is all-settled on purpose: a required
// failure must not cut short its siblings. The first required failure is
// returned once the batch is done.
func (e *Executor) runBatch(ctx context.Context, batch []string) error {
	var wg sync.WaitGroup
	var mu sync.Mutex
	var batchErr error

	for _, name := range batch {
		d, ok := e.registry.Get(name)
		if !ok {
			continue
		}
		wg.Add(1)
		go func(d *registry.Descriptor) {
			defer wg.Done()
			if err := e.runModule(ctx, d); err != nil {
				mu.Lock()
				if batchErr == nil {
					batchErr = err
				}
				mu.Unlock()
			}
		}(d)
	}
	wg.Wait()

	return batchErr
}

// runHealthChecks probes every successfully initialized module that declares
// a health check. Failures are advisory: they are returned for the summary
// and never demote a module to failed.
func (e *Executor) runHealthChecks(ctx context.Context) []string {
	logger := ctxlog.FromContext(ctx)
	var unhealthy []string

	for _, name := range e.state.completionOrder() {
		d, ok := e.registry.Get(name)
		if !ok || d.HealthCheck == nil {
			continue
		}
		instance, _ := e.state.instance(name)

		checkCtx, cancel := context.WithTimeout(ctx, d.EffectiveTimeout())
		err := d.HealthCheck(checkCtx, instance)
		cancel()

		if err != nil {
			logger.Warn("Health check failed.", "module", name, "error", err)
			unhealthy = append(unhealthy, name)
		}
	}
	return unhealthy
}

// Summary returns the result of the most recent run, or nil before the first
// run completes.
func (e *Executor) Summary() *Summary {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.summary
}

// Phase returns the lifecycle phase of the most recent run.
func (e *Executor) CurrentPhase() Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.phase
}

// Progress returns an observability snapshot of the run in flight.
func (e *Executor) Progress() Progress {
	e.mu.Lock()
	state := e.state
	e.mu.Unlock()
	if state == nil {
		return Progress{}
	}
	return state.progress()
}

// Instance returns the value a module's initializer produced.
func (e *Executor) Instance(name string) (any, bool) {
	e.mu.Lock()
	state := e.state
	e.mu.Unlock()
	if state == nil {
		return nil, false
	}
	return state.instance(name)
}

func (e *Executor) setPhase(p Phase) {
	e.mu.Lock()
	e.phase = p
	e.mu.Unlock()
}
