// Package goroutine provides a bounded, detached task dispatcher for
// fire-and-forget work (access logging, cache invalidation, referral
// rebate, admin-log writes) per spec.md §5's fire-and-forget budget:
// bound the in-flight count, drop with a warning on overflow, never
// queue unboundedly.
package goroutine

import (
	"context"
	"log/slog"
)

// Dispatcher runs detached tasks with a hard cap on in-flight count.
type Dispatcher struct {
	sem    chan struct{}
	logger *slog.Logger
}

// NewDispatcher creates a dispatcher with the given in-flight capacity.
func NewDispatcher(capacity int, logger *slog.Logger) *Dispatcher {
	if capacity <= 0 {
		capacity = 1024
	}
	return &Dispatcher{sem: make(chan struct{}, capacity), logger: logger}
}

// Submit runs fn in a new goroutine with a background context detached
// from any caller cancellation, unless the in-flight budget is exhausted,
// in which case the task is dropped and a warning logged.
func (d *Dispatcher) Submit(name string, fn func(ctx context.Context)) {
	select {
	case d.sem <- struct{}{}:
	default:
		d.logger.Warn("dispatcher overflow, dropping task", "task", name)
		return
	}

	go func() {
		defer func() { <-d.sem }()
		defer func() {
			if r := recover(); r != nil {
				d.logger.Error("detached task panicked", "task", name, "panic", r)
			}
		}()
		fn(context.Background())
	}()
}

// InFlight reports the current number of running detached tasks.
func (d *Dispatcher) InFlight() int { return len(d.sem) }
