package fieldtype

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
)

// ErrUnknownFieldType is returned when no strategy is registered for a key.
var ErrUnknownFieldType = errors.New("unknown field type")

// Registry maps field-type keys to strategies. It is safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	strategies map[string]Strategy
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{strategies: make(map[string]Strategy)}
}

// Register adds a strategy under key. Registering a key twice is an error.
func (r *Registry) Register(key string, s Strategy) error {
	if key == "" {
		return errors.New("field type key is empty")
	}

	if s == nil {
		return fmt.Errorf("field type %s: strategy is nil", key)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.strategies[key]; exists {
		return fmt.Errorf("field type %s already registered", key)
	}

	r.strategies[key] = s

	return nil
}

// MustRegister is Register that panics on error.
func (r *Registry) MustRegister(key string, s Strategy) {
	if err := r.Register(key, s); err != nil {
		panic(err)
	}
}

// Lookup returns the strategy registered under key.
func (r *Registry) Lookup(key string) (Strategy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.strategies[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFieldType, key)
	}

	return s, nil
}

// Keys returns the registered keys in sorted order.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Sorted(maps.Keys(r.strategies))
}
