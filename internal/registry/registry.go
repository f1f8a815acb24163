package registry

import (
	"fmt"
	"sort"
)

// Module is the interface that built-in handler packages implement to be
// registered with an application instance.
type Module interface {
	Register(r *Registry)
}

// Registry holds the module descriptors and handler bundles for a single
// application instance. It is constructed and owned by the caller; there is
// no package-level instance.
//
// Registration is expected to happen before orchestration starts; the
// registry is read-only while an Executor runs against it.
type Registry struct {
	modules  map[string]*Descriptor
	handlers map[string]*RegisteredHandler
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		modules:  make(map[string]*Descriptor),
		handlers: make(map[string]*RegisteredHandler),
	}
}

// Register stores a descriptor by name. Registering a name that already
// exists replaces the previous descriptor (last write wins). The only
// registration-time requirement is a non-empty name and an initializer;
// anything else wrong with a descriptor fails at startup through the normal
// error path.
func (r *Registry) Register(d *Descriptor) error {
	if d == nil || d.Name == "" {
		return fmt.Errorf("module descriptor requires a name")
	}
	if d.Init == nil {
		return fmt.Errorf("module %q requires an initializer", d.Name)
	}
	r.modules[d.Name] = d
	return nil
}

// Get returns the descriptor registered under name, if any.
func (r *Registry) Get(name string) (*Descriptor, bool) {
	d, ok := r.modules[name]
	return d, ok
}

// Has reports whether a descriptor is registered under name.
func (r *Registry) Has(name string) bool {
	_, ok := r.modules[name]
	return ok
}

// All returns every registered descriptor, sorted by name for deterministic
// iteration.
func (r *Registry) All() []*Descriptor {
	out := make([]*Descriptor, 0, len(r.modules))
	for _, d := range r.modules {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Len returns the number of registered descriptors.
func (r *Registry) Len() int {
	return len(r.modules)
}
