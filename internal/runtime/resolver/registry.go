package resolver

import (
	"sync"

	"github.com/drblury/eventbind/internal/runtime/resource"
)

// Registry holds the canonical, statically registered resource definitions.
// Registration happens during process start-up; once bindings begin resolving,
// the registry is effectively read-only and reads take only a shared lock.
type Registry struct {
	mu   sync.RWMutex
	defs []*resource.Definition
}

// DefaultRegistry is the process-wide registry used when no explicit registry
// is supplied to the binder.
var DefaultRegistry = NewRegistry()

// NewRegistry creates an empty definition registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends canonical definitions. Nil entries are ignored.
func (r *Registry) Register(defs ...*resource.Definition) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range defs {
		if d != nil {
			r.defs = append(r.defs, d)
		}
	}
}

// FindAll returns a snapshot of the registered definitions in registration
// order. The slice is a copy; the definitions themselves are the canonical
// instances and must not be mutated.
func (r *Registry) FindAll() []*resource.Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*resource.Definition, len(r.defs))
	copy(out, r.defs)
	return out
}

// Len returns the number of registered definitions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.defs)
}

// Register appends definitions to the default registry.
func Register(defs ...*resource.Definition) {
	DefaultRegistry.Register(defs...)
}
