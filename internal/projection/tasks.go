// Package projection derives read-only views from an organization
// snapshot. Every function is pure: the same snapshot and parameters
// always produce the same output, so callers are free to memoize.
// Filters are stable and preserve snapshot order; nothing here re-sorts.
package projection

import (
	"strings"
	"time"

	"github.com/taskflow/taskflow/internal/task"
)

// TaskQuery carries the list-view parameters. Zero value means no
// filtering: empty search term and the "all" status filter.
type TaskQuery struct {
	SearchTerm   string
	StatusFilter string
}

// StatusFilterAll matches every status.
const StatusFilterAll = "all"

// FilterTasks returns the tasks matching the query, in snapshot order.
// A task matches when the status filter is "all" (or empty) or equals the
// task status case-insensitively, and the search term is empty or is a
// case-insensitive substring of the title or description.
func FilterTasks(tasks []*task.Task, q TaskQuery) []*task.Task {
	term := strings.ToLower(q.SearchTerm)
	matched := make([]*task.Task, 0, len(tasks))
	for _, t := range tasks {
		if !matchesStatus(t.Status, q.StatusFilter) {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(t.Title), term) &&
			!strings.Contains(strings.ToLower(t.Description), term) {
			continue
		}
		matched = append(matched, t)
	}
	return matched
}

func matchesStatus(s task.Status, filter string) bool {
	if filter == "" || strings.EqualFold(filter, StatusFilterAll) {
		return true
	}
	return strings.EqualFold(string(s), filter)
}

// GroupTasksByStatus partitions tasks into the four fixed board columns.
// Tasks with an unrecognized status belong to no column and are dropped.
func GroupTasksByStatus(tasks []*task.Task) map[task.Status][]*task.Task {
	board := make(map[task.Status][]*task.Task, len(task.Statuses()))
	for _, s := range task.Statuses() {
		board[s] = []*task.Task{}
	}
	for _, t := range tasks {
		if !t.Status.IsKnown() {
			continue
		}
		board[t.Status] = append(board[t.Status], t)
	}
	return board
}

// TasksForDate returns the tasks due on the given calendar day,
// compared at day granularity.
func TasksForDate(tasks []*task.Task, date time.Time) []*task.Task {
	due := make([]*task.Task, 0)
	for _, t := range tasks {
		if t.DueOn(date) {
			due = append(due, t)
		}
	}
	return due
}

// RecentTasks returns the first n tasks in snapshot order.
func RecentTasks(tasks []*task.Task, n int) []*task.Task {
	if n < 0 {
		n = 0
	}
	if n > len(tasks) {
		n = len(tasks)
	}
	return tasks[:n]
}
