package event

import (
	"encoding/json"
	"reflect"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// EventType represents the type of event
type EventType string

const (
	// Task events
	TaskCreated       EventType = "task.created"
	TaskStatusChanged EventType = "task.status_changed"
	TaskOverdue       EventType = "task.overdue"

	// Notification events
	NotificationRead    EventType = "notification.read"
	NotificationReadAll EventType = "notification.read_all"
)

// Types lists every event type the core emits.
func Types() []EventType {
	return []EventType{
		TaskCreated, TaskStatusChanged, TaskOverdue,
		NotificationRead, NotificationReadAll,
	}
}

// Event represents a typed system event
type Event[T any] struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
	Data      T         `json:"data"`
}

// EventMessage represents a serialized event for transport
type EventMessage struct {
	ID        string          `json:"id"`
	Type      EventType       `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Source    string          `json:"source"`
	Data      json.RawMessage `json:"data"`
}

// NewEvent creates a new typed event
func NewEvent[T any](source string, data T) *Event[T] {
	return &Event[T]{
		ID:        ulid.Make().String(),
		Timestamp: time.Now(),
		Source:    source,
		Data:      data,
	}
}

// ToMessage converts a typed event to a transport message
func (e *Event[T]) ToMessage() (*EventMessage, error) {
	rawData, err := json.Marshal(e.Data)
	if err != nil {
		return nil, err
	}

	return &EventMessage{
		ID:        e.ID,
		Type:      inferEventType(e.Data),
		Timestamp: e.Timestamp,
		Source:    e.Source,
		Data:      rawData,
	}, nil
}

// FromMessage converts a transport message to a typed event
func FromMessage[T any](msg *EventMessage) (*Event[T], error) {
	var data T
	if err := json.Unmarshal(msg.Data, &data); err != nil {
		return nil, err
	}

	return &Event[T]{
		ID:        msg.ID,
		Timestamp: msg.Timestamp,
		Source:    msg.Source,
		Data:      data,
	}, nil
}

// inferEventType infers EventType from the payload's Go type
func inferEventType(data any) EventType {
	dataType := reflect.TypeOf(data)
	if dataType.Kind() == reflect.Ptr {
		dataType = dataType.Elem()
	}

	switch dataType.Name() {
	case "TaskCreatedData":
		return TaskCreated
	case "TaskStatusChangedData":
		return TaskStatusChanged
	case "TaskOverdueData":
		return TaskOverdue
	case "NotificationReadData":
		return NotificationRead
	case "NotificationReadAllData":
		return NotificationReadAll
	default:
		return EventType(camelToDotted(strings.TrimSuffix(dataType.Name(), "Data")))
	}
}

// camelToDotted converts a CamelCase type name to a dotted event name.
func camelToDotted(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteByte('.')
		}
		result.WriteRune(r)
	}
	return strings.ToLower(result.String())
}

// TaskCreatedData represents data for task created event
type TaskCreatedData struct {
	TaskID   string `json:"task_id"`
	Title    string `json:"title"`
	Priority string `json:"priority"`
	Category string `json:"category"`
	DueDate  string `json:"due_date"`
}

// TaskStatusChangedData represents data for task status change event
type TaskStatusChangedData struct {
	TaskID    string    `json:"task_id"`
	OldStatus string    `json:"old_status"`
	NewStatus string    `json:"new_status"`
	ChangedAt time.Time `json:"changed_at"`
	Reason    string    `json:"reason"`
}

// TaskOverdueData represents data for the derived overdue transition
type TaskOverdueData struct {
	TaskID  string    `json:"task_id"`
	DueDate time.Time `json:"due_date"`
}

// NotificationReadData represents data for a single read-marking
type NotificationReadData struct {
	NotificationID string `json:"notification_id"`
}

// NotificationReadAllData represents data for a bulk read-marking
type NotificationReadAllData struct {
	Count int `json:"count"` // notifications that were unread at call start
}
