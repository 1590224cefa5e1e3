package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/taskflow/taskflow/internal/task"
)

func waitForVersion(t *testing.T, s *Store, want uint64) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if s.Version() >= want {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("store version never reached %d, still at %d", want, s.Version())
}

func TestWatcher_ReloadsOnRewrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "org.yaml")
	repo := NewYAMLRepository(path)
	s := New("org-1")

	if err := repo.Save(&Snapshot{OrgID: "org-1"}); err != nil {
		t.Fatalf("failed to save initial snapshot: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := NewWatcher(repo, s)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx)
	}()

	// Give the watch a moment to attach before rewriting the file.
	time.Sleep(100 * time.Millisecond)

	before := s.Version()
	err := repo.Save(&Snapshot{
		OrgID: "org-1",
		Tasks: []*task.Task{
			{ID: "T1", Title: "Loaded from disk", Status: task.StatusTodo},
		},
	})
	if err != nil {
		t.Fatalf("failed to rewrite snapshot: %v", err)
	}

	waitForVersion(t, s, before+1)

	got, err := s.TaskByID("T1")
	if err != nil {
		t.Fatalf("reloaded task not found: %v", err)
	}
	if got.Title != "Loaded from disk" {
		t.Errorf("expected reloaded title, got %q", got.Title)
	}

	cancel()
	if err := <-done; err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestWatcher_RejectsInvalidRewrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "org.yaml")
	repo := NewYAMLRepository(path)
	s := New("org-1")

	if err := s.Replace(&Snapshot{
		Tasks: []*task.Task{
			{ID: "T1", Title: "Good state", Status: task.StatusTodo},
		},
	}); err != nil {
		t.Fatalf("failed to seed store: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := NewWatcher(repo, s)
	go w.Run(ctx)
	time.Sleep(100 * time.Millisecond)

	// A TODO task with nonzero progress must never replace good state.
	err := repo.Save(&Snapshot{
		Tasks: []*task.Task{
			{ID: "T1", Title: "Bad state", Status: task.StatusTodo, Progress: 50},
		},
	})
	if err != nil {
		t.Fatalf("failed to rewrite snapshot: %v", err)
	}

	time.Sleep(300 * time.Millisecond)

	got, err := s.TaskByID("T1")
	if err != nil {
		t.Fatalf("task not found: %v", err)
	}
	if got.Title != "Good state" {
		t.Errorf("invalid snapshot leaked into the store: %q", got.Title)
	}
}
