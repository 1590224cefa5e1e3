package task

import (
	"fmt"
	"time"
)

// Task represents a work unit in one organization's board
type Task struct {
	ID          string    `yaml:"id" json:"id"`
	Title       string    `yaml:"title" json:"title"`
	Description string    `yaml:"description" json:"description"`
	Assignee    string    `yaml:"assignee,omitempty" json:"assignee,omitempty"` // member ID, may be unset
	Priority    Priority  `yaml:"priority" json:"priority"`
	Category    Category  `yaml:"category" json:"category"`
	Status      Status    `yaml:"status" json:"status"`
	Progress    int       `yaml:"progress" json:"progress"`
	DueDate     time.Time `yaml:"due_date" json:"due_date"`
	CreatedAt   time.Time `yaml:"created_at" json:"created_at"`
	UpdatedAt   time.Time `yaml:"updated_at" json:"updated_at"`
}

// Clone returns an independent copy so snapshot readers never alias store state.
func (t *Task) Clone() *Task {
	c := *t
	return &c
}

// Validate checks the progress/status coupling:
// progress is 100 exactly when the task is completed, and 0 while still todo.
func (t *Task) Validate() error {
	if t.Progress < 0 || t.Progress > 100 {
		return fmt.Errorf("task %s: progress %d out of range", t.ID, t.Progress)
	}
	if (t.Progress == 100) != (t.Status == StatusCompleted) {
		return fmt.Errorf("task %s: progress %d inconsistent with status %s", t.ID, t.Progress, t.Status)
	}
	if t.Status == StatusTodo && t.Progress != 0 {
		return fmt.Errorf("task %s: todo task has progress %d", t.ID, t.Progress)
	}
	return nil
}

// DueOn reports whether the task's due date falls on the given calendar day.
func (t *Task) DueOn(date time.Time) bool {
	y1, m1, d1 := t.DueDate.Date()
	y2, m2, d2 := date.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// OverdueAt reports whether the derived overdue transition applies at now.
func (t *Task) OverdueAt(now time.Time) bool {
	if t.Status != StatusTodo && t.Status != StatusInProgress {
		return false
	}
	return t.DueDate.Before(now)
}
