package gateway

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskflow/taskflow/internal/store"
	"github.com/taskflow/taskflow/internal/task"
)

func TestReconciler_StartSweepsImmediately(t *testing.T) {
	g, st := testGateway(t, &store.Snapshot{
		Tasks: []*task.Task{
			{ID: "T1", Title: "Stale task", Status: task.StatusTodo,
				DueDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		},
	})

	r := NewReconciler(g, time.Hour)
	require.NoError(t, r.Start(context.Background()))
	defer r.Stop()

	// the first sweep runs on start, not after the first tick
	assert.Eventually(t, func() bool {
		got, err := st.TaskByID("T1")
		return err == nil && got.Status == task.StatusOverdue
	}, time.Second, 10*time.Millisecond)
}

func TestReconciler_StartTwiceFails(t *testing.T) {
	g, _ := testGateway(t, nil)

	r := NewReconciler(g, time.Hour)
	require.NoError(t, r.Start(context.Background()))
	defer r.Stop()

	assert.Error(t, r.Start(context.Background()))
}

func TestReconciler_StopAllowsRestart(t *testing.T) {
	g, _ := testGateway(t, nil)

	r := NewReconciler(g, time.Hour)
	require.NoError(t, r.Start(context.Background()))
	require.NoError(t, r.Stop())

	require.NoError(t, r.Start(context.Background()))
	require.NoError(t, r.Stop())
}

func TestReconciler_StopEndsSweeping(t *testing.T) {
	g, st := testGateway(t, nil)

	r := NewReconciler(g, 10*time.Millisecond)
	require.NoError(t, r.Start(context.Background()))
	require.NoError(t, r.Stop())

	// a task that only becomes eligible after Stop must never be swept:
	// the old loop is gone, not lingering on stale state
	st.AppendTask(&task.Task{
		ID: "T1", Title: "After the fact", Status: task.StatusTodo,
		DueDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	time.Sleep(100 * time.Millisecond)

	got, err := st.TaskByID("T1")
	require.NoError(t, err)
	assert.Equal(t, task.StatusTodo, got.Status)
}

func TestReconciler_PeriodicSweep(t *testing.T) {
	g, st := testGateway(t, nil)

	r := NewReconciler(g, 20*time.Millisecond)
	require.NoError(t, r.Start(context.Background()))
	defer r.Stop()

	// a task appended after the initial sweep is caught by a later tick
	st.AppendTask(&task.Task{
		ID: "T1", Title: "Appeared late", Status: task.StatusTodo,
		DueDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})

	assert.Eventually(t, func() bool {
		got, err := st.TaskByID("T1")
		return err == nil && got.Status == task.StatusOverdue
	}, time.Second, 10*time.Millisecond)
}
