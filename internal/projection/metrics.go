package projection

import (
	"math"

	"github.com/taskflow/taskflow/internal/task"
	"github.com/taskflow/taskflow/internal/team"
)

// Bucket is one slice of a distribution: an absolute count and its share
// of the total, rounded to whole percent.
type Bucket struct {
	Count   int
	Percent int
}

// Distribution is the completion breakdown shown on the dashboard cards.
type Distribution struct {
	Total      int
	Completed  Bucket
	InProgress Bucket
	Todo       Bucket
	Overdue    Bucket
}

// CompletionDistribution counts tasks per lifecycle status. With an empty
// input every percentage is 0; there is no division by zero to trip over.
func CompletionDistribution(tasks []*task.Task) Distribution {
	d := Distribution{Total: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case task.StatusCompleted:
			d.Completed.Count++
		case task.StatusInProgress:
			d.InProgress.Count++
		case task.StatusTodo:
			d.Todo.Count++
		case task.StatusOverdue:
			d.Overdue.Count++
		}
	}
	d.Completed.Percent = percent(d.Completed.Count, d.Total)
	d.InProgress.Percent = percent(d.InProgress.Count, d.Total)
	d.Todo.Percent = percent(d.Todo.Count, d.Total)
	d.Overdue.Percent = percent(d.Overdue.Count, d.Total)
	return d
}

// TeamEfficiency is the member's completion rate in whole percent.
// A member with nothing assigned has an efficiency of 0, not NaN.
func TeamEfficiency(m *team.Member) int {
	return percent(m.TasksCompleted, m.TasksAssigned)
}

// CategoryStat is one row of the per-category completion table.
type CategoryStat struct {
	Category  task.Category
	Completed int
	Total     int
	Percent   int
}

// CategoryStats groups tasks by category, ordered by first appearance in
// the snapshot. Categories that no task carries are never reported, so a
// row can never read 0/0.
func CategoryStats(tasks []*task.Task) []CategoryStat {
	index := make(map[task.Category]int)
	stats := make([]CategoryStat, 0)
	for _, t := range tasks {
		i, ok := index[t.Category]
		if !ok {
			i = len(stats)
			index[t.Category] = i
			stats = append(stats, CategoryStat{Category: t.Category})
		}
		stats[i].Total++
		if t.Status == task.StatusCompleted {
			stats[i].Completed++
		}
	}
	for i := range stats {
		stats[i].Percent = percent(stats[i].Completed, stats[i].Total)
	}
	return stats
}

// RosterStats is the team page's header summary.
type RosterStats struct {
	Total         int
	Active        int
	ActivePercent int
	Pending       int
	AvgAssigned   int
}

// TeamRosterStats summarizes the roster; all ratios are 0 on an empty roster.
func TeamRosterStats(members []*team.Member) RosterStats {
	s := RosterStats{Total: len(members)}
	assigned := 0
	for _, m := range members {
		switch m.Status {
		case team.StatusActive:
			s.Active++
		case team.StatusPending:
			s.Pending++
		}
		assigned += m.TasksAssigned
	}
	s.ActivePercent = percent(s.Active, s.Total)
	if s.Total > 0 {
		s.AvgAssigned = int(math.Round(float64(assigned) / float64(s.Total)))
	}
	return s
}

func percent(count, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(count) * 100 / float64(total)))
}
