package registry

import (
	"fmt"
	"log/slog"
	"reflect"
	"sort"
	"sync"
)

// Constructor builds a live object from the already-built argument values of
// a configuration node. Nested nodes and callable literals have been
// materialized by the builder before a constructor runs.
type Constructor func(args map[string]any) (any, error)

// Module is the interface component packages implement to contribute their
// constructible classes to a registry during startup.
type Module interface {
	Register(r *Registry)
}

// Registry holds the name-to-constructor mapping for a single application
// instance.
type Registry struct {
	mu     sync.RWMutex
	ctors  map[string]Constructor
	frozen bool
}

// New creates an empty, unfrozen Registry.
func New() *Registry {
	return &Registry{ctors: make(map[string]Constructor)}
}

// Register adds a constructor under the given class name. Re-registering
// the same name is permitted only when the constructor is identical, making
// registration idempotent across repeated module initialization; a different
// constructor under an existing name fails with *DuplicateRegistrationError.
func (r *Registry) Register(name string, ctor Constructor) error {
	if name == "" {
		return fmt.Errorf("class name must not be empty")
	}
	if ctor == nil {
		return fmt.Errorf("constructor for class %q must not be nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return fmt.Errorf("cannot register class %q: registry is frozen", name)
	}
	if existing, ok := r.ctors[name]; ok {
		if reflect.ValueOf(existing).Pointer() == reflect.ValueOf(ctor).Pointer() {
			return nil
		}
		return &DuplicateRegistrationError{Name: name}
	}

	slog.Debug("Registering class constructor.", "name", name)
	r.ctors[name] = ctor
	return nil
}

// MustRegister is Register for startup paths where a failure is a programmer
// error.
func (r *Registry) MustRegister(name string, ctor Constructor) {
	if err := r.Register(name, ctor); err != nil {
		panic(err)
	}
}

// Resolve returns the constructor registered under the given class name, or
// *UnknownClassError when absent.
func (r *Registry) Resolve(name string) (Constructor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ctor, ok := r.ctors[name]
	if !ok {
		return nil, &UnknownClassError{Name: name}
	}
	return ctor, nil
}

// Freeze ends the population phase. Subsequent Register calls fail;
// Resolve remains safe for concurrent use.
func (r *Registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen = true
}

// Names returns the registered class names in sorted order, for diagnostics.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.ctors))
	for name := range r.ctors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
