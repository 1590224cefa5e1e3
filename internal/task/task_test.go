package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatus_CanTransitionTo(t *testing.T) {
	allowed := []struct {
		from, to Status
	}{
		{StatusTodo, StatusInProgress},
		{StatusTodo, StatusOverdue},
		{StatusInProgress, StatusCompleted},
		{StatusInProgress, StatusOverdue},
		{StatusOverdue, StatusInProgress},
	}
	for _, tr := range allowed {
		assert.True(t, tr.from.CanTransitionTo(tr.to), "%s -> %s should be allowed", tr.from, tr.to)
	}

	// COMPLETED is terminal
	for _, to := range Statuses() {
		assert.False(t, StatusCompleted.CanTransitionTo(to), "COMPLETED -> %s should be rejected", to)
	}

	// no shortcut from TODO straight to COMPLETED
	assert.False(t, StatusTodo.CanTransitionTo(StatusCompleted))
	// no way back to TODO
	assert.False(t, StatusInProgress.CanTransitionTo(StatusTodo))
	assert.False(t, StatusOverdue.CanTransitionTo(StatusCompleted))
}

func TestTask_Validate(t *testing.T) {
	cases := []struct {
		name     string
		status   Status
		progress int
		wantErr  bool
	}{
		{"todo at zero", StatusTodo, 0, false},
		{"todo with progress", StatusTodo, 10, true},
		{"in progress partial", StatusInProgress, 65, false},
		{"in progress full", StatusInProgress, 100, true},
		{"completed full", StatusCompleted, 100, false},
		{"completed partial", StatusCompleted, 99, true},
		{"overdue partial", StatusOverdue, 30, false},
		{"progress out of range", StatusInProgress, 101, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tk := &Task{ID: "x", Status: tc.status, Progress: tc.progress}
			err := tk.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTask_DueOn(t *testing.T) {
	tk := &Task{DueDate: time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)}

	// day granularity: time of day is ignored
	assert.True(t, tk.DueOn(time.Date(2024, 1, 15, 23, 59, 0, 0, time.UTC)))
	assert.False(t, tk.DueOn(time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC)))
}

func TestTask_OverdueAt(t *testing.T) {
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	assert.True(t, (&Task{Status: StatusTodo, DueDate: past}).OverdueAt(now))
	assert.True(t, (&Task{Status: StatusInProgress, DueDate: past}).OverdueAt(now))
	assert.False(t, (&Task{Status: StatusTodo, DueDate: future}).OverdueAt(now))
	// completed and already-overdue tasks are left alone
	assert.False(t, (&Task{Status: StatusCompleted, Progress: 100, DueDate: past}).OverdueAt(now))
	assert.False(t, (&Task{Status: StatusOverdue, DueDate: past}).OverdueAt(now))
}
