package renderer

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
)

// UnknownRendererError reports a renderer name with no registered
// backend, listing what is actually available.
type UnknownRendererError struct {
	// Name is the renderer that was requested
	Name string

	// Registered are the names that were available at lookup time
	Registered []string
}

// Error implements the error interface.
func (e *UnknownRendererError) Error() string {
	if len(e.Registered) == 0 {
		return fmt.Sprintf("unknown renderer: %s (no backends registered)", e.Name)
	}
	return fmt.Sprintf("unknown renderer: %s (registered: %s)", e.Name, strings.Join(e.Registered, ", "))
}

// Register makes a backend available under name. Registering an empty
// name, a nil factory, or a name that is already taken is an error.
func Register(name string, factory Factory) error {
	if name == "" {
		return fmt.Errorf("renderer name must not be empty")
	}
	if factory == nil {
		return fmt.Errorf("renderer %q: factory must not be nil", name)
	}

	mu.Lock()
	defer mu.Unlock()
	if _, exists := factories[name]; exists {
		return fmt.Errorf("renderer %q already registered", name)
	}
	factories[name] = factory
	return nil
}

// MustRegister is Register for package init paths; it panics on error.
func MustRegister(name string, factory Factory) {
	if err := Register(name, factory); err != nil {
		panic(err)
	}
}

// New builds the renderer registered under name.
func New(name string) (Renderer, error) {
	mu.RLock()
	factory, ok := factories[name]
	mu.RUnlock()
	if !ok {
		return nil, &UnknownRendererError{Name: name, Registered: Names()}
	}
	return factory()
}

// Names returns the registered backend names, sorted for stable display.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
