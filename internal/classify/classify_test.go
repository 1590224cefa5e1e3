package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taskflow/taskflow/internal/notification"
	"github.com/taskflow/taskflow/internal/task"
	"github.com/taskflow/taskflow/internal/team"
)

func TestStatusKey(t *testing.T) {
	assert.Equal(t, ColorGreen, StatusKey(task.StatusCompleted))
	assert.Equal(t, ColorYellow, StatusKey(task.StatusInProgress))
	assert.Equal(t, ColorBlue, StatusKey(task.StatusTodo))
	assert.Equal(t, ColorRed, StatusKey(task.StatusOverdue))
	assert.Equal(t, ColorGray, StatusKey(task.Status("ARCHIVED")))
}

func TestPriorityKey(t *testing.T) {
	assert.Equal(t, ColorRed, PriorityKey(task.PriorityHigh))
	assert.Equal(t, ColorYellow, PriorityKey(task.PriorityMedium))
	assert.Equal(t, ColorGreen, PriorityKey(task.PriorityLow))
	assert.Equal(t, ColorGray, PriorityKey(task.Priority("URGENT")))
}

func TestNotificationPriorityKey(t *testing.T) {
	assert.Equal(t, ColorRed, NotificationPriorityKey(notification.PriorityHigh))
	assert.Equal(t, ColorYellow, NotificationPriorityKey(notification.PriorityMedium))
	assert.Equal(t, ColorGreen, NotificationPriorityKey(notification.PriorityLow))
	assert.Equal(t, ColorGray, NotificationPriorityKey(notification.Priority("urgent")))
}

func TestCategoryKey(t *testing.T) {
	assert.Equal(t, ColorRed, CategoryKey(task.CategoryBug))
	assert.Equal(t, ColorBlue, CategoryKey(task.CategoryFeature))
	assert.Equal(t, ColorYellow, CategoryKey(task.CategoryImprovement))
	assert.Equal(t, ColorGreen, CategoryKey(task.CategoryDocumentation))

	// categories are an open set; unseeded values stay neutral
	assert.Equal(t, ColorGray, CategoryKey(task.Category("RESEARCH")))
}

func TestNotificationIcon(t *testing.T) {
	// assignment and completion share the check glyph
	assert.Equal(t, IconCheck, NotificationIcon(notification.TypeTaskAssigned))
	assert.Equal(t, IconCheck, NotificationIcon(notification.TypeTaskCompleted))

	assert.Equal(t, IconAlert, NotificationIcon(notification.TypeTaskOverdue))
	assert.Equal(t, IconUsers, NotificationIcon(notification.TypeTeamUpdate))
	assert.Equal(t, IconCalendar, NotificationIcon(notification.TypeMeetingReminder))
	assert.Equal(t, IconMessage, NotificationIcon(notification.TypeComment))

	// unknown types fall back to the generic bell
	assert.Equal(t, IconBell, NotificationIcon(notification.Type("billing_alert")))
}

func TestNotificationEmphasis(t *testing.T) {
	// high priority beats every type-specific accent
	assert.Equal(t, ColorRed, NotificationEmphasis(notification.TypeTeamUpdate, notification.PriorityHigh))
	assert.Equal(t, ColorRed, NotificationEmphasis(notification.TypeTaskCompleted, notification.PriorityHigh))
	assert.Equal(t, ColorRed, NotificationEmphasis(notification.Type("billing_alert"), notification.PriorityHigh))

	// otherwise the type decides
	assert.Equal(t, ColorGreen, NotificationEmphasis(notification.TypeTaskCompleted, notification.PriorityMedium))
	assert.Equal(t, ColorBlue, NotificationEmphasis(notification.TypeTeamUpdate, notification.PriorityLow))

	// neutral default for everything else
	assert.Equal(t, ColorGray, NotificationEmphasis(notification.TypeComment, notification.PriorityLow))
	assert.Equal(t, ColorGray, NotificationEmphasis(notification.TypeTaskAssigned, notification.PriorityMedium))
}

func TestRoleAndMemberStatusKeys(t *testing.T) {
	assert.Equal(t, ColorRed, RoleKey(team.RoleAdmin))
	assert.Equal(t, ColorBlue, RoleKey(team.RoleManager))
	assert.Equal(t, ColorGreen, RoleKey(team.RoleMember))
	assert.Equal(t, ColorGray, RoleKey(team.Role("OWNER")))

	assert.Equal(t, ColorGreen, MemberStatusKey(team.StatusActive))
	assert.Equal(t, ColorYellow, MemberStatusKey(team.StatusInactive))
	assert.Equal(t, ColorBlue, MemberStatusKey(team.StatusPending))
	assert.Equal(t, ColorGray, MemberStatusKey(team.Status("SUSPENDED")))
}
