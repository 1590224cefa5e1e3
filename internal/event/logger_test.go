package event

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventLogger_WriteAndReadBack(t *testing.T) {
	dir := t.TempDir()

	logger, err := NewEventLogger(dir)
	require.NoError(t, err)

	day := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

	data, err := json.Marshal(TaskCreatedData{TaskID: "TASK-001", Title: "Test Task"})
	require.NoError(t, err)
	require.NoError(t, logger.LogEvent(&EventMessage{
		ID:        "01HN0000000000000000000001",
		Type:      TaskCreated,
		Timestamp: day,
		Source:    "mutation-gateway",
		Data:      data,
	}))

	data, err = json.Marshal(NotificationReadData{NotificationID: "N1"})
	require.NoError(t, err)
	require.NoError(t, logger.LogEvent(&EventMessage{
		ID:        "01HN0000000000000000000002",
		Type:      NotificationRead,
		Timestamp: day.Add(time.Hour),
		Source:    "mutation-gateway",
		Data:      data,
	}))

	reader := NewEventLogReader(dir)

	events, err := reader.ReadEvents(day)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, TaskCreated, events[0].Type)
	assert.Equal(t, NotificationRead, events[1].Type)

	var created TaskCreatedData
	require.NoError(t, json.Unmarshal(events[0].Data, &created))
	assert.Equal(t, "TASK-001", created.TaskID)
}

func TestEventLogger_SplitsByDay(t *testing.T) {
	dir := t.TempDir()

	logger, err := NewEventLogger(dir)
	require.NoError(t, err)

	day1 := time.Date(2024, 1, 15, 23, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 1, 16, 1, 0, 0, 0, time.UTC)

	require.NoError(t, logger.LogEvent(&EventMessage{ID: "e1", Type: TaskCreated, Timestamp: day1, Data: []byte("{}")}))
	require.NoError(t, logger.LogEvent(&EventMessage{ID: "e2", Type: TaskCreated, Timestamp: day2, Data: []byte("{}")}))

	reader := NewEventLogReader(dir)

	events, err := reader.ReadEvents(day1)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "e1", events[0].ID)

	events, err = reader.ReadEvents(day2)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "e2", events[0].ID)
}

func TestEventLogReader_MissingDay(t *testing.T) {
	reader := NewEventLogReader(t.TempDir())

	events, err := reader.ReadEvents(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestEventLogReader_ReadEventsByType(t *testing.T) {
	dir := t.TempDir()

	logger, err := NewEventLogger(dir)
	require.NoError(t, err)

	day := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	require.NoError(t, logger.LogEvent(&EventMessage{ID: "e1", Type: TaskCreated, Timestamp: day, Data: []byte("{}")}))
	require.NoError(t, logger.LogEvent(&EventMessage{ID: "e2", Type: TaskOverdue, Timestamp: day, Data: []byte("{}")}))
	require.NoError(t, logger.LogEvent(&EventMessage{ID: "e3", Type: TaskCreated, Timestamp: day, Data: []byte("{}")}))

	reader := NewEventLogReader(dir)

	events, err := reader.ReadEventsByType(day, TaskCreated)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "e1", events[0].ID)
	assert.Equal(t, "e3", events[1].ID)
}
