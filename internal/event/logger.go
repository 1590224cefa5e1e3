package event

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// EventLogger appends every published event to daily NDJSON files. This
// is the outbound edge: external delivery systems tail these files.
type EventLogger struct {
	logDir string
	mu     sync.Mutex
}

// NewEventLogger creates a new event logger
func NewEventLogger(logDir string) (*EventLogger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	return &EventLogger{
		logDir: logDir,
	}, nil
}

// LogEvent appends one event to the day's log file.
func (el *EventLogger) LogEvent(eventMsg *EventMessage) error {
	el.mu.Lock()
	defer el.mu.Unlock()

	logEntry := struct {
		*EventMessage
		LoggedAt string `json:"logged_at"`
	}{
		EventMessage: eventMsg,
		LoggedAt:     time.Now().Format(time.RFC3339),
	}

	data, err := json.Marshal(logEntry)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	file, err := os.OpenFile(el.logFilePath(eventMsg.Timestamp), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer file.Close()

	if _, err := file.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write event to log: %w", err)
	}

	return nil
}

func (el *EventLogger) logFilePath(timestamp time.Time) string {
	filename := fmt.Sprintf("events_%s.ndjson", timestamp.Format("2006-01-02"))
	return filepath.Join(el.logDir, filename)
}

// RegisterEventLogger subscribes the logger to every event type.
func RegisterEventLogger(eventBus *EventBus, logger *EventLogger) {
	for _, eventType := range Types() {
		if err := eventBus.SubscribeAsync(eventType, fmt.Sprintf("logger-%s", eventType), func(eventMsg *EventMessage) error {
			if err := logger.LogEvent(eventMsg); err != nil {
				slog.Warn("failed to log event", "event_id", eventMsg.ID, "error", err)
			}
			return nil
		}); err != nil {
			slog.Warn("failed to subscribe event logger", "event_type", eventType, "error", err)
		}
	}
}

// EventLogReader reads events back from the NDJSON log files.
type EventLogReader struct {
	logDir string
}

// NewEventLogReader creates a new event log reader
func NewEventLogReader(logDir string) *EventLogReader {
	return &EventLogReader{
		logDir: logDir,
	}
}

// ReadEvents reads the events logged on a specific date.
func (elr *EventLogReader) ReadEvents(date time.Time) ([]*EventMessage, error) {
	logFile := filepath.Join(elr.logDir, fmt.Sprintf("events_%s.ndjson", date.Format("2006-01-02")))

	data, err := os.ReadFile(logFile)
	if err != nil {
		if os.IsNotExist(err) {
			return []*EventMessage{}, nil
		}
		return nil, fmt.Errorf("failed to read log file: %w", err)
	}

	var events []*EventMessage
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var logEntry struct {
			*EventMessage
			LoggedAt string `json:"logged_at"`
		}
		if err := json.Unmarshal([]byte(line), &logEntry); err != nil {
			slog.Warn("skipping malformed event log line", "error", err)
			continue
		}
		events = append(events, logEntry.EventMessage)
	}

	return events, nil
}

// ReadEventsByType reads the day's events filtered to one type.
func (elr *EventLogReader) ReadEventsByType(date time.Time, eventType EventType) ([]*EventMessage, error) {
	allEvents, err := elr.ReadEvents(date)
	if err != nil {
		return nil, err
	}

	var filtered []*EventMessage
	for _, e := range allEvents {
		if e.Type == eventType {
			filtered = append(filtered, e)
		}
	}

	return filtered, nil
}
