package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/taskflow/taskflow/internal/notification"
	"github.com/taskflow/taskflow/internal/task"
	"github.com/taskflow/taskflow/internal/team"
)

func TestYAMLRepository_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "org.yaml")
	repo := NewYAMLRepository(path)

	saved := &Snapshot{
		OrgID: "org-1",
		Tasks: []*task.Task{
			{
				ID:       "T1",
				Title:    "Implement user authentication system",
				Assignee: "M1",
				Priority: task.PriorityHigh,
				Category: task.CategoryFeature,
				Status:   task.StatusInProgress,
				Progress: 65,
				DueDate:  time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			},
		},
		Members: []*team.Member{
			{
				ID:            "M1",
				Name:          "John Doe",
				Email:         "john@company.com",
				Role:          team.RoleAdmin,
				Status:        team.StatusActive,
				TasksAssigned: 12, TasksCompleted: 8,
			},
		},
		Notifications: []*notification.Notification{
			{
				ID:       "N1",
				Type:     notification.TypeTaskAssigned,
				Title:    "New task assigned",
				Priority: notification.PriorityMedium,
				From:     "John Doe",
			},
		},
	}

	if err := repo.Save(saved); err != nil {
		t.Fatalf("failed to save snapshot: %v", err)
	}

	loaded, err := repo.Load()
	if err != nil {
		t.Fatalf("failed to load snapshot: %v", err)
	}

	if loaded.OrgID != "org-1" {
		t.Errorf("expected org ID org-1, got %s", loaded.OrgID)
	}
	if len(loaded.Tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(loaded.Tasks))
	}
	got := loaded.Tasks[0]
	if got.Title != saved.Tasks[0].Title {
		t.Errorf("expected title %q, got %q", saved.Tasks[0].Title, got.Title)
	}
	if got.Status != task.StatusInProgress {
		t.Errorf("expected status IN_PROGRESS, got %s", got.Status)
	}
	if got.Progress != 65 {
		t.Errorf("expected progress 65, got %d", got.Progress)
	}
	if !got.DueDate.Equal(saved.Tasks[0].DueDate) {
		t.Errorf("expected due date %v, got %v", saved.Tasks[0].DueDate, got.DueDate)
	}
	if len(loaded.Members) != 1 || loaded.Members[0].Role != team.RoleAdmin {
		t.Errorf("member did not round-trip: %+v", loaded.Members)
	}
	if len(loaded.Notifications) != 1 || loaded.Notifications[0].Type != notification.TypeTaskAssigned {
		t.Errorf("notification did not round-trip: %+v", loaded.Notifications)
	}
}

func TestYAMLRepository_LoadMissingFile(t *testing.T) {
	repo := NewYAMLRepository(filepath.Join(t.TempDir(), "absent.yaml"))

	snap, err := repo.Load()
	if err != nil {
		t.Fatalf("missing file should not be an error: %v", err)
	}
	if len(snap.Tasks) != 0 || len(snap.Members) != 0 || len(snap.Notifications) != 0 {
		t.Errorf("expected an empty snapshot, got %+v", snap)
	}
}

func TestYAMLRepository_SaveCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state", "org.yaml")
	repo := NewYAMLRepository(path)

	if err := repo.Save(&Snapshot{OrgID: "org-1"}); err != nil {
		t.Fatalf("failed to save into a new directory: %v", err)
	}

	loaded, err := repo.Load()
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	if loaded.OrgID != "org-1" {
		t.Errorf("expected org ID org-1, got %s", loaded.OrgID)
	}
}
