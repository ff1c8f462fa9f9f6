package extension

import (
	"fmt"
	"sort"
	"sync"
)

// Factory produces a module's capability bundle. It plays the role an
// entry-point import would: a failing factory means the module cannot be
// loaded.
type Factory func() (Bundle, error)

// Registry is the registration table mapping module names to their entry
// point factories. It is built at startup and read during loading.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory under a module name. Registering the same name
// twice is a programming error.
func (r *Registry) Register(name string, f Factory) error {
	if name == "" {
		return fmt.Errorf("module name is required")
	}
	if f == nil {
		return fmt.Errorf("factory for %q is nil", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("module %q is already registered", name)
	}
	r.factories[name] = f
	return nil
}

// Resolve returns the factory registered under name.
func (r *Registry) Resolve(name string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[name]
	return f, ok
}

// Names returns the registered module names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// defaultRegistry is the table module packages register into from init().
var defaultRegistry = NewRegistry()

// Default returns the process-wide registry.
func Default() *Registry {
	return defaultRegistry
}

// Register adds a factory to the process-wide registry, panicking on
// conflict. Intended for init() in module packages.
func Register(name string, f Factory) {
	if err := defaultRegistry.Register(name, f); err != nil {
		panic(err)
	}
}
