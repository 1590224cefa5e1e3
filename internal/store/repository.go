package store

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/taskflow/taskflow/internal/notification"
	"github.com/taskflow/taskflow/internal/task"
	"github.com/taskflow/taskflow/internal/team"
)

// YAMLRepository loads and saves a whole organization snapshot as one
// YAML document. The external persistence layer owns the file; this core
// only reads it in and writes updated snapshots back out.
type YAMLRepository struct {
	filePath string
}

// NewYAMLRepository creates a new YAML repository instance
func NewYAMLRepository(filePath string) *YAMLRepository {
	return &YAMLRepository{
		filePath: filePath,
	}
}

// snapshotData represents the structure of the YAML file
type snapshotData struct {
	OrgID         string                       `yaml:"org_id"`
	Tasks         []*task.Task                 `yaml:"tasks"`
	Members       []*team.Member               `yaml:"members"`
	Notifications []*notification.Notification `yaml:"notifications"`
}

// Load reads the snapshot file. A missing file yields an empty snapshot.
func (r *YAMLRepository) Load() (*Snapshot, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return &Snapshot{}, nil
	}

	content, err := os.ReadFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}

	var data snapshotData
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal YAML: %w", err)
	}

	return &Snapshot{
		OrgID:         data.OrgID,
		Tasks:         data.Tasks,
		Members:       data.Members,
		Notifications: data.Notifications,
	}, nil
}

// Save writes the snapshot back for the external layer to persist.
func (r *YAMLRepository) Save(snap *Snapshot) error {
	dir := filepath.Dir(r.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	content, err := yaml.Marshal(&snapshotData{
		OrgID:         snap.OrgID,
		Tasks:         snap.Tasks,
		Members:       snap.Members,
		Notifications: snap.Notifications,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if err := os.WriteFile(r.filePath, content, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot file: %w", err)
	}

	return nil
}
