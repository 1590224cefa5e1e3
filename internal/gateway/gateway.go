// Package gateway is the only component that changes entity state. It
// validates inputs, enforces the status lifecycle, and publishes an
// event after each committed mutation. All writes are serialized through
// the store; failed mutations leave the store untouched.
package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/taskflow/taskflow/internal/event"
	"github.com/taskflow/taskflow/internal/notification"
	"github.com/taskflow/taskflow/internal/store"
	"github.com/taskflow/taskflow/internal/task"
	"github.com/taskflow/taskflow/pkg/cerr"
	"github.com/taskflow/taskflow/pkg/clog"
)

const source = "mutation-gateway"

type Gateway struct {
	store *store.Store
	bus   *event.EventBus
	now   func() time.Time
	newID func() string
}

// New creates a gateway over the given store. The bus may be nil when no
// downstream consumer is wired (tests, one-shot CLI reads).
func New(st *store.Store, bus *event.EventBus) *Gateway {
	return &Gateway{
		store: st,
		bus:   bus,
		now:   time.Now,
		newID: func() string { return ulid.Make().String() },
	}
}

// CreateTask validates the request and appends a new TODO task. The
// error, if any, names every offending field; nothing is created on
// failure.
func (g *Gateway) CreateTask(ctx context.Context, req *task.CreateTaskRequest) (*task.Task, error) {
	verr := cerr.NewError(cerr.InvalidArgument, "invalid task", nil)
	if req.Title == "" {
		verr.AddViolation("title", "must not be empty")
	}
	if !req.Priority.IsKnown() {
		verr.AddViolation("priority", fmt.Sprintf("unknown priority %q", req.Priority))
	}
	if req.Category == "" {
		verr.AddViolation("category", "must not be empty")
	}
	if req.DueDate.IsZero() {
		verr.AddViolation("dueDate", "must be set")
	}
	if len(verr.Details) > 0 {
		return nil, verr
	}

	now := g.now()
	t := &task.Task{
		ID:          g.newID(),
		Title:       req.Title,
		Description: req.Description,
		Assignee:    req.Assignee,
		Priority:    req.Priority,
		Category:    req.Category,
		Status:      task.StatusTodo,
		Progress:    0,
		DueDate:     req.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	g.store.AppendTask(t)
	clog.AddAttribute(ctx, "task_id", t.ID)

	g.publish(ctx, &event.TaskCreatedData{
		TaskID:   t.ID,
		Title:    t.Title,
		Priority: string(t.Priority),
		Category: string(t.Category),
		DueDate:  t.DueDate.Format(time.DateOnly),
	})

	return t, nil
}

// TransitionTask moves a task along the lifecycle. Only the explicit
// transitions are allowed; anything else fails with a precondition
// error and the task keeps its previous state. OVERDUE is a derived
// status: the reconciler applies it, callers cannot.
func (g *Gateway) TransitionTask(ctx context.Context, id string, target task.Status) (*task.Task, error) {
	clog.AddAttribute(ctx, "task_id", id)
	if !target.IsKnown() {
		return nil, cerr.NewError(cerr.InvalidArgument, fmt.Sprintf("unknown status %q", target), nil)
	}
	if target == task.StatusOverdue {
		return nil, cerr.NewError(
			cerr.FailedPrecondition,
			fmt.Sprintf("status %q is derived from the due date and cannot be set directly", target),
			nil,
		)
	}

	var from task.Status
	updated, err := g.store.UpdateTask(id, func(t *task.Task) error {
		from = t.Status
		if !t.Status.CanTransitionTo(target) {
			return cerr.NewError(
				cerr.FailedPrecondition,
				fmt.Sprintf("transition from %q to %q is not allowed", t.Status, target),
				nil,
			)
		}
		t.Status = target
		if target == task.StatusCompleted {
			t.Progress = 100
		}
		t.UpdatedAt = g.now()
		return nil
	})
	if err != nil {
		return nil, err
	}

	g.publish(ctx, &event.TaskStatusChangedData{
		TaskID:    updated.ID,
		OldStatus: string(from),
		NewStatus: string(target),
		ChangedAt: updated.UpdatedAt,
		Reason:    "status updated",
	})

	return updated, nil
}

// MarkRead marks one notification as read. Re-marking an already-read
// notification is a no-op, not an error.
func (g *Gateway) MarkRead(ctx context.Context, id string) (*notification.Notification, error) {
	clog.AddAttribute(ctx, "notification_id", id)
	changed := false
	updated, err := g.store.UpdateNotification(id, func(n *notification.Notification) error {
		if !n.Read {
			n.Read = true
			changed = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if changed {
		g.publish(ctx, &event.NotificationReadData{NotificationID: id})
	}

	return updated, nil
}

// MarkAllRead marks every currently-unread notification as read in one
// atomic pass and returns how many were flipped. Calling it again is a
// no-op.
func (g *Gateway) MarkAllRead(ctx context.Context) (int, error) {
	count := g.store.MarkAllNotificationsRead()
	if count > 0 {
		g.publish(ctx, &event.NotificationReadAllData{Count: count})
	}
	return count, nil
}

// ReconcileOverdue applies the derived overdue transition to every task
// whose due date has passed, and materializes a high-priority System
// notification per transitioned task. Returns the transitioned tasks.
func (g *Gateway) ReconcileOverdue(ctx context.Context) ([]*task.Task, error) {
	now := g.now()
	swept := g.store.SweepOverdue(now)
	for _, t := range swept {
		g.store.AppendNotification(&notification.Notification{
			ID:        g.newID(),
			Type:      notification.TypeTaskOverdue,
			Title:     "Task overdue",
			Message:   fmt.Sprintf("Task '%s' is now overdue", t.Title),
			Timestamp: now,
			Read:      false,
			Priority:  notification.PriorityHigh,
			From:      "System",
		})
		g.publish(ctx, &event.TaskOverdueData{
			TaskID:  t.ID,
			DueDate: t.DueDate,
		})
	}
	return swept, nil
}

// publish emits an event after a committed mutation. Delivery failures
// are logged, never propagated: the mutation already happened and must
// not be reported as failed.
func (g *Gateway) publish(ctx context.Context, data any) {
	if g.bus == nil {
		return
	}
	if err := g.bus.Publish(ctx, source, data); err != nil {
		slog.Warn("failed to publish event", "org", g.store.OrgID(), "error", err)
	}
}
