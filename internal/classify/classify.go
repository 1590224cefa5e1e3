// Package classify maps entity fields to the small set of semantic keys
// the presentation layer uses for coloring, icons and grouping. Every
// screen of the dashboard goes through these functions so the mappings
// cannot drift between views. All functions are total: unrecognized
// values degrade to a neutral default instead of failing, since the
// output is purely cosmetic.
package classify

import (
	"github.com/taskflow/taskflow/internal/notification"
	"github.com/taskflow/taskflow/internal/task"
	"github.com/taskflow/taskflow/internal/team"
)

// ColorKey is an abstract color class; the renderer decides what it means
// (ANSI code, CSS class, ...).
type ColorKey string

const (
	ColorGreen  ColorKey = "green"
	ColorYellow ColorKey = "yellow"
	ColorBlue   ColorKey = "blue"
	ColorRed    ColorKey = "red"
	ColorGray   ColorKey = "gray"
)

// IconKey names the glyph shown next to a notification.
type IconKey string

const (
	IconCheck    IconKey = "check"
	IconAlert    IconKey = "alert"
	IconUsers    IconKey = "users"
	IconCalendar IconKey = "calendar"
	IconMessage  IconKey = "message"
	IconBell     IconKey = "bell"
)

// StatusKey maps each lifecycle status to its badge color.
func StatusKey(s task.Status) ColorKey {
	switch s {
	case task.StatusCompleted:
		return ColorGreen
	case task.StatusInProgress:
		return ColorYellow
	case task.StatusTodo:
		return ColorBlue
	case task.StatusOverdue:
		return ColorRed
	default:
		return ColorGray
	}
}

// PriorityKey maps a task priority to its badge color.
func PriorityKey(p task.Priority) ColorKey {
	switch p {
	case task.PriorityHigh:
		return ColorRed
	case task.PriorityMedium:
		return ColorYellow
	case task.PriorityLow:
		return ColorGreen
	default:
		return ColorGray
	}
}

// CategoryKey maps a task category to its badge color. Categories are an
// open set, so anything unseeded degrades to the neutral key.
func CategoryKey(c task.Category) ColorKey {
	switch c {
	case task.CategoryBug:
		return ColorRed
	case task.CategoryFeature:
		return ColorBlue
	case task.CategoryImprovement:
		return ColorYellow
	case task.CategoryDocumentation:
		return ColorGreen
	default:
		return ColorGray
	}
}

// NotificationIcon maps notification types onto the shared glyph set.
// Assignment and completion share the check glyph on purpose.
func NotificationIcon(t notification.Type) IconKey {
	switch t {
	case notification.TypeTaskAssigned, notification.TypeTaskCompleted:
		return IconCheck
	case notification.TypeTaskOverdue:
		return IconAlert
	case notification.TypeTeamUpdate:
		return IconUsers
	case notification.TypeMeetingReminder:
		return IconCalendar
	case notification.TypeComment:
		return IconMessage
	default:
		return IconBell
	}
}

// NotificationEmphasis picks the accent color for a notification.
// High priority always wins over the type-specific accent.
func NotificationEmphasis(t notification.Type, p notification.Priority) ColorKey {
	if p == notification.PriorityHigh {
		return ColorRed
	}
	switch t {
	case notification.TypeTaskCompleted:
		return ColorGreen
	case notification.TypeTeamUpdate:
		return ColorBlue
	default:
		return ColorGray
	}
}

// NotificationPriorityKey maps notification urgency to its badge color.
func NotificationPriorityKey(p notification.Priority) ColorKey {
	switch p {
	case notification.PriorityHigh:
		return ColorRed
	case notification.PriorityMedium:
		return ColorYellow
	case notification.PriorityLow:
		return ColorGreen
	default:
		return ColorGray
	}
}

// RoleKey maps a member role to its badge color.
func RoleKey(r team.Role) ColorKey {
	switch r {
	case team.RoleAdmin:
		return ColorRed
	case team.RoleManager:
		return ColorBlue
	case team.RoleMember:
		return ColorGreen
	default:
		return ColorGray
	}
}

// MemberStatusKey maps a member's membership state to its badge color.
func MemberStatusKey(s team.Status) ColorKey {
	switch s {
	case team.StatusActive:
		return ColorGreen
	case team.StatusInactive:
		return ColorYellow
	case team.StatusPending:
		return ColorBlue
	default:
		return ColorGray
	}
}
