package core

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// App owns the registered components and drives their lifecycle.
type App struct {
	mu         sync.RWMutex
	components map[string]*entry
	ctx        context.Context
	cancel     context.CancelFunc
	logger     Logger
	health     *healthChecker
}

func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		components: make(map[string]*entry),
		ctx:        ctx,
		cancel:     cancel,
		logger:     newDefaultLogger(),
		health:     newHealthChecker(),
	}
	app.logger.Info("application framework initialized")
	return app
}

// Logger returns the root framework logger.
func (a *App) Logger() Logger {
	return a.logger
}

// RegisterExternal registers an infrastructure component. The optional config
// overrides the default retry policy applied to its Start phase.
func (a *App) RegisterExternal(name string, external External, config ...ComponentConfig) error {
	if external == nil {
		return ErrNilComponent
	}

	cfg := ComponentConfig{Retry: DefaultRetryConfig()}
	if len(config) > 0 {
		cfg = config[0]
	}

	e := &entry{
		name:      name,
		component: external,
		external:  true,
		status:    StatusRegistered,
		retryer:   newRetryer(cfg.Retry, a.logger.WithComponent(name)),
	}

	if err := a.add(name, e); err != nil {
		return err
	}

	a.logger.Info("external component registered",
		Field{"component", name},
		Field{"max_attempts", cfg.Retry.MaxAttempts})
	return nil
}

// RegisterModule registers a business-logic component. Modules get no retry
// policy; a failing module start is surfaced immediately.
func (a *App) RegisterModule(name string, module Module) error {
	if module == nil {
		return ErrNilComponent
	}

	e := &entry{
		name:      name,
		component: module,
		external:  false,
		status:    StatusRegistered,
	}

	if err := a.add(name, e); err != nil {
		return err
	}

	a.logger.Info("module component registered", Field{"component", name})
	return nil
}

func (a *App) add(name string, e *entry) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, exists := a.components[name]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, name)
	}
	a.components[name] = e
	a.health.add(name, e)
	return nil
}

func (a *App) StartExternal(name string) error {
	return a.startComponent(name, true)
}

func (a *App) StartModule(name string) error {
	return a.startComponent(name, false)
}

func (a *App) startComponent(name string, wantExternal bool) error {
	a.mu.RLock()
	e, exists := a.components[name]
	a.mu.RUnlock()

	if !exists {
		return ComponentError{Component: name, Operation: "start", Err: ErrComponentNotFound}
	}
	if wantExternal && !e.external {
		return ComponentError{
			Component: name,
			Operation: "start",
			Err:       fmt.Errorf("%w: use StartModule instead", ErrComponentNotExternal),
		}
	}
	if !wantExternal && e.external {
		return ComponentError{
			Component: name,
			Operation: "start",
			Err:       fmt.Errorf("%w: use StartExternal instead", ErrComponentNotModule),
		}
	}

	logger := a.logger.WithComponent(name)

	if err := a.safeSetup(e, logger); err != nil {
		return err
	}
	if err := a.safeStart(e, logger); err != nil {
		return err
	}

	logger.Info("component started")
	return nil
}

// safeSetup runs Setup with panic recovery.
func (a *App) safeSetup(e *entry, logger Logger) (retErr error) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("panic during setup: %v", r)
			e.setError(err)
			retErr = ComponentError{Component: e.name, Operation: "setup", Err: err}
			logger.Error("component setup panicked", Field{"panic", r})
		}
	}()

	logger.Debug("setting up component")

	err := e.setup(&appContext{ctx: a.ctx, logger: logger})
	if err != nil {
		wrapped := ComponentError{Component: e.name, Operation: "setup", Err: err}
		e.setError(wrapped)
		logger.Error("component setup failed", Field{"error", err})
		return wrapped
	}

	e.setStatus(StatusSetup)
	return nil
}

// safeStart runs Start with panic recovery; externals go through the retryer.
func (a *App) safeStart(e *entry, logger Logger) (retErr error) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("panic during start: %v", r)
			e.setError(err)
			retErr = ComponentError{Component: e.name, Operation: "start", Err: err}
			logger.Error("component start panicked", Field{"panic", r})
		}
	}()

	logger.Debug("starting component")

	var err error
	if e.external {
		err = e.retryer.Do(a.ctx, "start", func() error { return e.start(a.ctx) })
	} else {
		err = e.start(a.ctx)
	}

	if err != nil {
		wrapped := ComponentError{Component: e.name, Operation: "start", Err: err}
		e.setError(wrapped)
		logger.Error("component start failed", Field{"error", err})
		return wrapped
	}

	e.setStatus(StatusStarted)
	return nil
}

// Stop shuts everything down, modules first so business logic drains before
// the infrastructure under it goes away.
func (a *App) Stop() error {
	a.logger.Info("initiating shutdown")
	a.cancel()

	a.mu.RLock()
	var modules, externals []*entry
	for _, e := range a.components {
		if status, _ := e.state(); status != StatusStarted {
			continue
		}
		if e.external {
			externals = append(externals, e)
		} else {
			modules = append(modules, e)
		}
	}
	a.mu.RUnlock()

	var errs []error
	for _, e := range modules {
		if err := a.stopComponent(e); err != nil {
			errs = append(errs, err)
		}
	}
	for _, e := range externals {
		if err := a.stopComponent(e); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		a.logger.Error("shutdown completed with errors", Field{"error_count", len(errs)})
		return fmt.Errorf("shutdown errors: %v", errs)
	}

	a.logger.Info("shutdown completed")
	return nil
}

func (a *App) stopComponent(e *entry) error {
	logger := a.logger.WithComponent(e.name)

	defer func() {
		if r := recover(); r != nil {
			e.setError(fmt.Errorf("panic during stop: %v", r))
			logger.Error("component stop panicked", Field{"panic", r})
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := e.stop(ctx); err != nil {
		wrapped := ComponentError{Component: e.name, Operation: "stop", Err: err}
		e.setError(wrapped)
		logger.Error("component stop failed", Field{"error", err})
		return wrapped
	}

	e.setStatus(StatusStopped)
	logger.Info("component stopped")
	return nil
}

// GetStatus returns the current status of a component.
func (a *App) GetStatus(name string) (ComponentStatus, error) {
	a.mu.RLock()
	e, exists := a.components[name]
	a.mu.RUnlock()

	if !exists {
		return StatusRegistered, ErrComponentNotFound
	}
	return e.state()
}

// ListComponents returns every registered component with its status.
func (a *App) ListComponents() map[string]ComponentStatus {
	a.mu.RLock()
	defer a.mu.RUnlock()

	out := make(map[string]ComponentStatus, len(a.components))
	for name, e := range a.components {
		status, _ := e.state()
		out[name] = status
	}
	return out
}

func (a *App) Health(ctx context.Context, name string) error {
	return a.health.check(ctx, name)
}

func (a *App) HealthAll(ctx context.Context) map[string]error {
	return a.health.checkAll(ctx)
}

func (a *App) IsHealthy(ctx context.Context) bool {
	for _, err := range a.HealthAll(ctx) {
		if err != nil {
			return false
		}
	}
	return true
}

type appContext struct {
	ctx    context.Context
	logger Logger
}

func (c *appContext) Logger() Logger           { return c.logger }
func (c *appContext) Context() context.Context { return c.ctx }
