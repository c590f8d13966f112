package core

import (
	"context"
	"fmt"
	"sync"
)

// healthChecker aggregates component health over the started set.
type healthChecker struct {
	mu         sync.RWMutex
	components map[string]*entry
}

func newHealthChecker() *healthChecker {
	return &healthChecker{components: make(map[string]*entry)}
}

func (h *healthChecker) add(name string, e *entry) {
	h.mu.Lock()
	h.components[name] = e
	h.mu.Unlock()
}

func (h *healthChecker) check(ctx context.Context, name string) error {
	h.mu.RLock()
	e, exists := h.components[name]
	h.mu.RUnlock()

	if !exists {
		return fmt.Errorf("%w: %s", ErrComponentNotFound, name)
	}

	status, err := e.state()
	if status != StatusStarted {
		return fmt.Errorf("component %q not started (status: %s)", name, status)
	}
	if err != nil {
		return fmt.Errorf("component %q has error: %w", name, err)
	}

	return e.health(ctx)
}

func (h *healthChecker) checkAll(ctx context.Context) map[string]error {
	h.mu.RLock()
	started := make([]*entry, 0, len(h.components))
	for _, e := range h.components {
		if status, _ := e.state(); status == StatusStarted {
			started = append(started, e)
		}
	}
	h.mu.RUnlock()

	results := make(map[string]error, len(started))
	for _, e := range started {
		results[e.name] = h.check(ctx, e.name)
	}
	return results
}
