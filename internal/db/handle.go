package db

import (
	"context"
	"sync"
)

// Handle shares one Store across the process. The first Get constructs
// it through the factory; later calls reuse the same instance. Reset
// drops the instance so the next Get rebuilds it, which is how tests
// isolate themselves from each other.
type Handle struct {
	mu      sync.Mutex
	factory func(ctx context.Context) (Store, error)
	store   Store
}

// NewHandle creates a handle around a store factory.
func NewHandle(factory func(ctx context.Context) (Store, error)) *Handle {
	return &Handle{factory: factory}
}

// Get returns the shared store, constructing it on first use.
func (h *Handle) Get(ctx context.Context) (Store, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.store != nil {
		return h.store, nil
	}
	s, err := h.factory(ctx)
	if err != nil {
		return nil, err
	}
	h.store = s
	return h.store, nil
}

// Reset closes and drops the shared store.
func (h *Handle) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.store != nil {
		h.store.Close()
		h.store = nil
	}
}
