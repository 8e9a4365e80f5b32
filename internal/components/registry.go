// Package components is the component-registration surface features use
// during Setup to contribute constructors to the hosting container.
//
// The engine treats factories as opaque: it records them in registration
// order and the hosting framework resolves them. This reference registry
// keeps everything in process memory.
package components

import (
	"fmt"
	"log/slog"
)

// Registry holds the component factories registered by active features.
type Registry struct {
	all   map[string]func() any
	order []string
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{all: make(map[string]func() any)}
}

// Register records a component factory under a unique name. Registering the
// same name twice is a wiring bug and panics.
func (r *Registry) Register(name string, factory func() any) {
	if _, exists := r.all[name]; exists {
		panic(fmt.Sprintf("component with name '%s' already registered", name))
	}
	slog.Debug("Registering component factory.", "name", name)
	r.all[name] = factory
	r.order = append(r.order, name)
}

// Resolve invokes the factory registered under name and returns the
// constructed component.
func (r *Registry) Resolve(name string) (any, bool) {
	factory, ok := r.all[name]
	if !ok {
		return nil, false
	}
	return factory(), true
}

// Names returns the registered component names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}
