package notification

import "time"

// Type classifies what a notification is about. The set is open: feeds
// may deliver types this core has never seen, and classification degrades
// to a generic presentation for those.
type Type string

const (
	TypeTaskAssigned    Type = "task_assigned"
	TypeTaskCompleted   Type = "task_completed"
	TypeTaskOverdue     Type = "task_overdue"
	TypeTeamUpdate      Type = "team_update"
	TypeMeetingReminder Type = "meeting_reminder"
	TypeComment         Type = "comment"
)

// Priority represents notification urgency
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Notification represents a single inbox entry for an organization
type Notification struct {
	ID        string    `yaml:"id" json:"id"`
	Type      Type      `yaml:"type" json:"type"`
	Title     string    `yaml:"title" json:"title"`
	Message   string    `yaml:"message" json:"message"`
	Timestamp time.Time `yaml:"timestamp" json:"timestamp"`
	Read      bool      `yaml:"read" json:"read"`
	Priority  Priority  `yaml:"priority" json:"priority"`
	From      string    `yaml:"from" json:"from"`
}

func (n *Notification) Clone() *Notification {
	c := *n
	return &c
}
