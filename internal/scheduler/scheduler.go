package scheduler

import (
	"context"
	"sort"

	"github.com/vk/bootgrid/internal/ctxlog"
	"github.com/vk/bootgrid/internal/registry"
)

// Options controls how the plan is computed.
type Options struct {
	// StrictDeps makes a dependency on an unregistered module an error
	// instead of treating it as already satisfied.
	StrictDeps bool
}

// Plan is the result of batch computation. Batches lists the modules that can
// be ordered; Stuck lists the modules that can never become ready because of
// a circular or unsatisfiable dependency.
type Plan struct {
	Batches [][]string
	Stuck   []string
}

// Deadlocked reports whether the plan left any module unorderable.
func (p *Plan) Deadlocked() bool {
	return len(p.Stuck) > 0
}

// Compute derives the batch plan for every descriptor in the registry using
// an iterative fixed point: each round collects the modules whose
// dependencies have all been placed in earlier rounds. Within a batch,
// modules are sorted by priority descending (then name) purely so that logs
// and telemetry are deterministic.
func Compute(ctx context.Context, reg *registry.Registry, opts Options) (*Plan, error) {
	logger := ctxlog.FromContext(ctx)
	descriptors := reg.All()
	logger.Debug("Computing batch plan.", "module_count", len(descriptors), "strict_deps", opts.StrictDeps)

	if opts.StrictDeps {
		for _, d := range descriptors {
			for _, dep := range d.DependsOn {
				if !reg.Has(dep) {
					return nil, &UnknownDependencyError{Module: d.Name, Dependency: dep}
				}
			}
		}
	}

	plan := &Plan{}
	processed := make(map[string]bool, len(descriptors))
	remaining := descriptors

	for len(remaining) > 0 {
		var batch []*registry.Descriptor
		var next []*registry.Descriptor

		for _, d := range remaining {
			if ready(d, processed, reg) {
				batch = append(batch, d)
			} else {
				next = append(next, d)
			}
		}

		if len(batch) == 0 {
			// No module became ready this round: circular or permanently
			// unsatisfiable dependencies.
			for _, d := range next {
				plan.Stuck = append(plan.Stuck, d.Name)
			}
			sort.Strings(plan.Stuck)
			logger.Warn("Dependency deadlock detected.", "stuck", plan.Stuck)
			return plan, nil
		}

		sort.Slice(batch, func(i, j int) bool {
			if batch[i].Priority != batch[j].Priority {
				return batch[i].Priority > batch[j].Priority
			}
			return batch[i].Name < batch[j].Name
		})

		names := make([]string, len(batch))
		for i, d := range batch {
			names[i] = d.Name
			processed[d.Name] = true
		}
		plan.Batches = append(plan.Batches, names)
		remaining = next
	}

	logger.Debug("Batch plan computed.", "batch_count", len(plan.Batches))
	return plan, nil
}

// ready reports whether every dependency of d has been placed in an earlier
// batch. A dependency that names no registered module counts as satisfied.
func ready(d *registry.Descriptor, processed map[string]bool, reg *registry.Registry) bool {
	for _, dep := range d.DependsOn {
		if !reg.Has(dep) {
			continue
		}
		if !processed[dep] {
			return false
		}
	}
	return true
}
