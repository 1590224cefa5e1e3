package team

import "fmt"

// Role represents a member's role within an organization
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleManager Role = "MANAGER"
	RoleMember  Role = "MEMBER"
)

// Status represents a member's membership state
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
	StatusPending  Status = "PENDING"
)

// Member represents a team member in one organization
type Member struct {
	ID             string `yaml:"id" json:"id"`
	Name           string `yaml:"name" json:"name"`
	Email          string `yaml:"email" json:"email"`
	Role           Role   `yaml:"role" json:"role"`
	Status         Status `yaml:"status" json:"status"`
	TasksAssigned  int    `yaml:"tasks_assigned" json:"tasks_assigned"`
	TasksCompleted int    `yaml:"tasks_completed" json:"tasks_completed"`
}

func (m *Member) Clone() *Member {
	c := *m
	return &c
}

func (m *Member) Validate() error {
	if m.TasksCompleted > m.TasksAssigned {
		return fmt.Errorf("member %s: completed %d exceeds assigned %d", m.ID, m.TasksCompleted, m.TasksAssigned)
	}
	return nil
}
