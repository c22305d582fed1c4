package components

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

var (
	registryMu sync.RWMutex
	factories  = make(map[string]Factory)
)

// Register makes a widget available under name. Packages providing extra
// widgets call it from init and are linked in with a blank import. It panics
// if name is empty, the factory is nil, or name is already taken.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if name == "" {
		panic("components: Register with empty name")
	}
	if factory == nil {
		panic("components: Register factory is nil for " + name)
	}
	if _, dup := factories[name]; dup {
		panic("components: Register called twice for " + name)
	}
	factories[name] = factory
}

// Names returns the registered widget names, sorted.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// New builds the widget registered under name.
func New(name string, opts Options) (Widget, error) {
	registryMu.RLock()
	factory, ok := factories[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown widget %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return factory(opts), nil
}

// Validate reports the first name in pages that has no registered factory.
func Validate(pages [][]string) error {
	for i, page := range pages {
		for _, name := range page {
			registryMu.RLock()
			_, ok := factories[name]
			registryMu.RUnlock()
			if !ok {
				return fmt.Errorf("page %d: unknown widget %q (available: %s)", i+1, name, strings.Join(Names(), ", "))
			}
		}
	}
	return nil
}
