package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sourcegraph/conc/panics"
)

// Reconciler periodically applies the derived overdue transition. The
// lifecycle itself never marks a task overdue on user action; this sweep
// is the external trigger.
type Reconciler struct {
	gateway       *Gateway
	ctx           context.Context
	cancel        context.CancelFunc
	mutex         sync.Mutex
	sweepInterval time.Duration
}

// NewReconciler creates a reconciler with the given sweep interval.
// Due dates carry day granularity, so intervals below a minute buy nothing.
func NewReconciler(g *Gateway, interval time.Duration) *Reconciler {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Reconciler{
		gateway:       g,
		sweepInterval: interval,
	}
}

// SetInterval overrides the sweep interval. Only effective before Start.
func (r *Reconciler) SetInterval(interval time.Duration) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.sweepInterval = interval
}

// Start launches the sweep loop. An immediate first sweep runs so a
// freshly loaded snapshot is reconciled without waiting a full interval.
// The loop holds its own copy of the derived context, so a later Stop
// clearing the fields cannot be observed mid-iteration.
func (r *Reconciler) Start(ctx context.Context) error {
	r.mutex.Lock()
	if r.ctx != nil {
		r.mutex.Unlock()
		return fmt.Errorf("reconciler already running")
	}
	r.ctx, r.cancel = context.WithCancel(ctx)
	loopCtx := r.ctx
	interval := r.sweepInterval
	r.mutex.Unlock()

	go r.sweepLoop(loopCtx, interval)
	return nil
}

// Stop stops the sweep loop
func (r *Reconciler) Stop() error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
		r.ctx = nil
	}

	return nil
}

func (r *Reconciler) sweepLoop(ctx context.Context, interval time.Duration) {
	r.sweep(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.sweep(ctx)
		}
	}
}

// sweep runs one reconciliation pass. A panic in the pass is contained
// so the loop keeps its schedule.
func (r *Reconciler) sweep(ctx context.Context) {
	var catcher panics.Catcher
	catcher.Try(func() {
		swept, err := r.gateway.ReconcileOverdue(ctx)
		if err != nil {
			slog.Error("overdue sweep failed", "error", err)
			return
		}
		if len(swept) > 0 {
			slog.Info("marked tasks overdue", "count", len(swept))
		}
	})
	if recovered := catcher.Recovered(); recovered != nil {
		slog.Error("overdue sweep panicked", "error", recovered.AsError())
	}
}
