package projection

import (
	"time"

	"github.com/taskflow/taskflow/internal/task"
)

// CalendarEventType tags what kind of entry a calendar cell shows.
type CalendarEventType string

const (
	CalendarEventDeadline CalendarEventType = "deadline"
	CalendarEventMeeting  CalendarEventType = "meeting"
)

// CalendarEvent is a derived record, never stored: a task (or meeting)
// projected onto a calendar day.
type CalendarEvent struct {
	ID       string
	Title    string
	Date     time.Time
	Time     string
	Duration string
	Type     CalendarEventType
	Priority task.Priority
}

// CalendarEventsForDate projects the tasks due on the given day into
// deadline events, keeping snapshot order.
func CalendarEventsForDate(tasks []*task.Task, date time.Time) []CalendarEvent {
	events := make([]CalendarEvent, 0)
	for _, t := range TasksForDate(tasks, date) {
		events = append(events, CalendarEvent{
			ID:       t.ID,
			Title:    t.Title,
			Date:     t.DueDate,
			Type:     CalendarEventDeadline,
			Priority: t.Priority,
		})
	}
	return events
}
