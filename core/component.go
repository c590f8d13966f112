// Package core is the component framework the application is assembled on.
// Infrastructure lives in externals, business logic in modules; both move
// through the same registered -> setup -> started -> stopped lifecycle.
package core

import (
	"context"
	"sync"
)

// External is an infrastructure component (HTTP server, database, bus).
// Externals are started with retry and stopped after all modules.
type External interface {
	Setup(ctx AppContext) error
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Health(ctx context.Context) error
}

// Module is a business-logic component wired on top of externals.
// Modules fail fast on start and are stopped before any external.
type Module interface {
	Setup(ctx AppContext) error
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Health(ctx context.Context) error
}

// AppContext carries framework utilities into a component's Setup phase.
type AppContext interface {
	Logger() Logger
	Context() context.Context
}

type ComponentStatus int

const (
	StatusRegistered ComponentStatus = iota
	StatusSetup
	StatusStarted
	StatusStopped
	StatusFailed
)

func (s ComponentStatus) String() string {
	switch s {
	case StatusRegistered:
		return "registered"
	case StatusSetup:
		return "setup"
	case StatusStarted:
		return "started"
	case StatusStopped:
		return "stopped"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// entry tracks one registered component and its runtime state.
type entry struct {
	name      string
	component any
	external  bool
	retryer   *Retryer

	mu      sync.RWMutex
	status  ComponentStatus
	lastErr error
}

func (e *entry) setStatus(s ComponentStatus) {
	e.mu.Lock()
	e.status = s
	e.mu.Unlock()
}

func (e *entry) setError(err error) {
	e.mu.Lock()
	e.lastErr = err
	if err != nil {
		e.status = StatusFailed
	}
	e.mu.Unlock()
}

func (e *entry) state() (ComponentStatus, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.status, e.lastErr
}

func (e *entry) setup(ctx AppContext) error {
	if e.external {
		return e.component.(External).Setup(ctx)
	}
	return e.component.(Module).Setup(ctx)
}

func (e *entry) start(ctx context.Context) error {
	if e.external {
		return e.component.(External).Start(ctx)
	}
	return e.component.(Module).Start(ctx)
}

func (e *entry) stop(ctx context.Context) error {
	if e.external {
		return e.component.(External).Stop(ctx)
	}
	return e.component.(Module).Stop(ctx)
}

func (e *entry) health(ctx context.Context) error {
	if e.external {
		return e.component.(External).Health(ctx)
	}
	return e.component.(Module).Health(ctx)
}
