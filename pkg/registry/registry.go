// Package registry maps importer names from configuration files to adapter
// constructors. It replaces dynamic class resolution with an explicit table:
// known identifiers are registered at process start, unknown identifiers are
// a reported, non-fatal skip at assembly time.
package registry

import (
	"errors"
	"fmt"
	"sync"

	"github.com/aryaman4/rasa/pkg/ports"
)

// ErrUnknownImporter is returned when a configured importer name has no
// registered factory. Assembly treats it as a skip, not a failure.
var ErrUnknownImporter = errors.New("unknown importer")

// Config is the constructor input for a source adapter: the shared paths plus
// any adapter-specific options from its configuration entry.
type Config struct {
	ConfigPath    string
	DomainPath    string
	TrainingPaths []string

	// Options holds the remaining keys of the importer's configuration entry.
	// Adapters decode the subset they understand.
	Options map[string]any
}

// Factory constructs a source adapter from its configuration.
type Factory func(cfg Config) (ports.TrainingDataImporter, error)

// Registry manages the available importer factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory under the given name. An existing factory with the
// same name is overwritten.
func (r *Registry) Register(name string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// Names returns the registered importer names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	return names
}

// Build looks up the factory for name and constructs the adapter. It returns
// ErrUnknownImporter (wrapped) when the name is not registered.
func (r *Registry) Build(name string, cfg Config) (ports.TrainingDataImporter, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownImporter, name)
	}
	return factory(cfg)
}
