// Package store holds the current entity snapshot for one organization.
// Reads hand out deep copies; writes go through the mutating methods,
// which the gateway serializes behind the store's lock. A snapshot,
// once taken, is never touched by later mutations.
package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/taskflow/taskflow/internal/notification"
	"github.com/taskflow/taskflow/internal/task"
	"github.com/taskflow/taskflow/internal/team"
	"github.com/taskflow/taskflow/pkg/cerr"
)

// Snapshot is an immutable point-in-time copy of an organization's state.
type Snapshot struct {
	OrgID         string
	Version       uint64
	TakenAt       time.Time
	Tasks         []*task.Task
	Members       []*team.Member
	Notifications []*notification.Notification
}

// Store owns the live entity state for one organization.
type Store struct {
	mu            sync.RWMutex
	orgID         string
	version       uint64
	tasks         []*task.Task
	members       []*team.Member
	notifications []*notification.Notification
}

func New(orgID string) *Store {
	return &Store{orgID: orgID}
}

func (s *Store) OrgID() string {
	return s.orgID
}

// Version returns the current mutation counter.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Snapshot returns a deep copy of the current state. Readers may use it
// concurrently and indefinitely without locking.
func (s *Store) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return &Snapshot{
		OrgID:         s.orgID,
		Version:       s.version,
		TakenAt:       time.Now(),
		Tasks:         cloneTasks(s.tasks),
		Members:       cloneMembers(s.members),
		Notifications: cloneNotifications(s.notifications),
	}
}

// Replace swaps in externally supplied state after validating it. The
// incoming entities are copied, so the caller keeps ownership of its
// slices.
func (s *Store) Replace(snap *Snapshot) error {
	if err := validate(snap); err != nil {
		return fmt.Errorf("invalid snapshot: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = cloneTasks(snap.Tasks)
	s.members = cloneMembers(snap.Members)
	s.notifications = cloneNotifications(snap.Notifications)
	s.version++
	return nil
}

func validate(snap *Snapshot) error {
	for _, t := range snap.Tasks {
		if err := t.Validate(); err != nil {
			return err
		}
	}
	emails := make(map[string]string, len(snap.Members))
	for _, m := range snap.Members {
		if err := m.Validate(); err != nil {
			return err
		}
		if other, ok := emails[m.Email]; ok {
			return fmt.Errorf("members %s and %s share email %s", other, m.ID, m.Email)
		}
		emails[m.Email] = m.ID
	}
	return nil
}

// TaskByID returns a copy of the task, or a not-found error.
func (s *Store) TaskByID(id string) (*task.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tasks {
		if t.ID == id {
			return t.Clone(), nil
		}
	}
	return nil, cerr.NewError(cerr.NotFound, fmt.Sprintf("task %s not found", id), nil)
}

// MemberByID returns a copy of the member, or a not-found error.
func (s *Store) MemberByID(id string) (*team.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.members {
		if m.ID == id {
			return m.Clone(), nil
		}
	}
	return nil, cerr.NewError(cerr.NotFound, fmt.Sprintf("member %s not found", id), nil)
}

// NotificationByID returns a copy of the notification, or a not-found error.
func (s *Store) NotificationByID(id string) (*notification.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, n := range s.notifications {
		if n.ID == id {
			return n.Clone(), nil
		}
	}
	return nil, cerr.NewError(cerr.NotFound, fmt.Sprintf("notification %s not found", id), nil)
}

// AppendTask adds a fully built task to the end of the snapshot order.
func (s *Store) AppendTask(t *task.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, t.Clone())
	s.version++
}

// AppendNotification adds a notification to the end of the snapshot order.
func (s *Store) AppendNotification(n *notification.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = append(s.notifications, n.Clone())
	s.version++
}

// UpdateTask applies fn to a copy of the task and commits the copy only
// when fn succeeds, so a failed mutation leaves the store untouched.
func (s *Store) UpdateTask(id string, fn func(*task.Task) error) (*task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.tasks {
		if t.ID != id {
			continue
		}
		updated := t.Clone()
		if err := fn(updated); err != nil {
			return nil, err
		}
		s.tasks[i] = updated
		s.version++
		return updated.Clone(), nil
	}
	return nil, cerr.NewError(cerr.NotFound, fmt.Sprintf("task %s not found", id), nil)
}

// UpdateNotification is the notification counterpart of UpdateTask.
func (s *Store) UpdateNotification(id string, fn func(*notification.Notification) error) (*notification.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, n := range s.notifications {
		if n.ID != id {
			continue
		}
		updated := n.Clone()
		if err := fn(updated); err != nil {
			return nil, err
		}
		s.notifications[i] = updated
		s.version++
		return updated.Clone(), nil
	}
	return nil, cerr.NewError(cerr.NotFound, fmt.Sprintf("notification %s not found", id), nil)
}

// MarkAllNotificationsRead flips every unread notification under one
// lock acquisition and returns how many were unread at call start.
func (s *Store) MarkAllNotificationsRead() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for i, n := range s.notifications {
		if n.Read {
			continue
		}
		updated := n.Clone()
		updated.Read = true
		s.notifications[i] = updated
		count++
	}
	if count > 0 {
		s.version++
	}
	return count
}

// SweepOverdue transitions every eligible task whose due date has passed
// to OVERDUE in one atomic pass and returns copies of the transitioned
// tasks.
func (s *Store) SweepOverdue(now time.Time) []*task.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	var swept []*task.Task
	for i, t := range s.tasks {
		if !t.OverdueAt(now) {
			continue
		}
		updated := t.Clone()
		updated.Status = task.StatusOverdue
		updated.UpdatedAt = now
		s.tasks[i] = updated
		swept = append(swept, updated.Clone())
	}
	if len(swept) > 0 {
		s.version++
	}
	return swept
}

func cloneTasks(ts []*task.Task) []*task.Task {
	out := make([]*task.Task, len(ts))
	for i, t := range ts {
		out[i] = t.Clone()
	}
	return out
}

func cloneMembers(ms []*team.Member) []*team.Member {
	out := make([]*team.Member, len(ms))
	for i, m := range ms {
		out[i] = m.Clone()
	}
	return out
}

func cloneNotifications(ns []*notification.Notification) []*notification.Notification {
	out := make([]*notification.Notification, len(ns))
	for i, n := range ns {
		out[i] = n.Clone()
	}
	return out
}
