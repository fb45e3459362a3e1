package provider

import (
	"context"
	"fmt"
	"sync"
)

// Registry keeps providers in registration order under unique names.
type Registry[T Provider] struct {
	mu    sync.RWMutex
	items []T
}

// NewRegistry returns an empty Registry.
func NewRegistry[T Provider]() *Registry[T] {
	return &Registry[T]{}
}

// Register appends p. A second provider with the same name is rejected.
func (r *Registry[T]) Register(p T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if existing.Name() == p.Name() {
			return fmt.Errorf("provider %q already registered", p.Name())
		}
	}
	r.items = append(r.items, p)
	return nil
}

// All returns a copy of the registered providers in order.
func (r *Registry[T]) All() []T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]T(nil), r.items...)
}

// Available returns the providers whose IsAvailable reports true, in order.
func (r *Registry[T]) Available(ctx context.Context) []T {
	var out []T
	for _, p := range r.All() {
		if p.IsAvailable(ctx) {
			out = append(out, p)
		}
	}
	return out
}
