package platform

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Lifecycle manages the startup and shutdown of platform components.
type Lifecycle struct {
	mu sync.Mutex

	startCallbacks []func(context.Context) error
	stopCallbacks  []func(context.Context) error

	started bool
}

// NewLifecycle creates a new lifecycle manager.
func NewLifecycle() *Lifecycle {
	return &Lifecycle{}
}

// OnStart registers a callback to run on startup.
func (l *Lifecycle) OnStart(callback func(context.Context) error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.startCallbacks = append(l.startCallbacks, callback)
}

// OnStop registers a callback to run on shutdown. Stop callbacks run in
// reverse registration order.
func (l *Lifecycle) OnStop(callback func(context.Context) error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stopCallbacks = append(l.stopCallbacks, callback)
}

// Start runs all start callbacks. A failing callback rolls back the stop
// callbacks registered so far.
func (l *Lifecycle) Start(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.started {
		return fmt.Errorf("lifecycle already started")
	}

	for i, cb := range l.startCallbacks {
		if err := cb(ctx); err != nil {
			l.rollback(ctx)
			return fmt.Errorf("start callback %d failed: %w", i, err)
		}
	}

	l.started = true
	return nil
}

// Stop runs all stop callbacks in reverse order, logging failures rather
// than aborting on them.
func (l *Lifecycle) Stop(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.started {
		return nil
	}

	l.runStops(ctx)
	l.started = false
	return nil
}

// rollback runs the stop callbacks after a failed start.
func (l *Lifecycle) rollback(ctx context.Context) {
	l.runStops(ctx)
}

func (l *Lifecycle) runStops(ctx context.Context) {
	for i := len(l.stopCallbacks) - 1; i >= 0; i-- {
		if err := l.stopCallbacks[i](ctx); err != nil {
			slog.Warn("stop callback failed", "index", i, "error", err)
		}
	}
}
