package task

import "time"

// Status represents task status
type Status string

const (
	StatusTodo       Status = "TODO"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusOverdue    Status = "OVERDUE"
)

// Statuses returns the board-column order of the known statuses.
func Statuses() []Status {
	return []Status{StatusTodo, StatusInProgress, StatusCompleted, StatusOverdue}
}

// IsKnown reports whether s is one of the four lifecycle statuses.
func (s Status) IsKnown() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusCompleted, StatusOverdue:
		return true
	}
	return false
}

// transitions is the explicit lifecycle table. COMPLETED is terminal; the
// OVERDUE entries are applied by the reconciler, not by user action.
var transitions = map[Status][]Status{
	StatusTodo:       {StatusInProgress, StatusOverdue},
	StatusInProgress: {StatusCompleted, StatusOverdue},
	StatusOverdue:    {StatusInProgress},
	StatusCompleted:  {},
}

// CanTransitionTo reports whether the lifecycle allows moving from s to target.
func (s Status) CanTransitionTo(target Status) bool {
	for _, to := range transitions[s] {
		if to == target {
			return true
		}
	}
	return false
}

// Priority represents task priority
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

func (p Priority) IsKnown() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Category is an open set; these are the seeded values the dashboard offers.
type Category string

const (
	CategoryBug           Category = "BUG"
	CategoryFeature       Category = "FEATURE"
	CategoryImprovement   Category = "IMPROVEMENT"
	CategoryDocumentation Category = "DOCUMENTATION"
)

// CreateTaskRequest represents a request to create a new task
type CreateTaskRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Assignee    string    `json:"assignee"`
	Priority    Priority  `json:"priority"`
	Category    Category  `json:"category"`
	DueDate     time.Time `json:"due_date"`
}
