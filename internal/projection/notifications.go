package projection

import (
	"strings"

	"github.com/taskflow/taskflow/internal/notification"
)

// taskTypePrefix selects the notification types shown on the Tasks tab.
const taskTypePrefix = "task"

// systemSenders are the origins grouped under the System tab.
var systemSenders = map[string]struct{}{
	"System":   {},
	"Calendar": {},
}

// NotificationTabs holds the inbox tab views. Each view is a stable
// filter over the snapshot's insertion order; none of them re-sort by
// timestamp or priority.
type NotificationTabs struct {
	All    []*notification.Notification
	Unread []*notification.Notification
	Tasks  []*notification.Notification // type has the "task" prefix
	Team   []*notification.Notification // type is exactly team_update
	System []*notification.Notification // sent by System or Calendar
}

// PartitionNotifications computes all inbox tabs in one pass.
func PartitionNotifications(ns []*notification.Notification) NotificationTabs {
	tabs := NotificationTabs{
		All:    make([]*notification.Notification, 0, len(ns)),
		Unread: make([]*notification.Notification, 0),
		Tasks:  make([]*notification.Notification, 0),
		Team:   make([]*notification.Notification, 0),
		System: make([]*notification.Notification, 0),
	}
	for _, n := range ns {
		tabs.All = append(tabs.All, n)
		if !n.Read {
			tabs.Unread = append(tabs.Unread, n)
		}
		if strings.HasPrefix(string(n.Type), taskTypePrefix) {
			tabs.Tasks = append(tabs.Tasks, n)
		}
		if n.Type == notification.TypeTeamUpdate {
			tabs.Team = append(tabs.Team, n)
		}
		if _, ok := systemSenders[n.From]; ok {
			tabs.System = append(tabs.System, n)
		}
	}
	return tabs
}

// UnreadCount returns how many notifications are still unread.
func UnreadCount(ns []*notification.Notification) int {
	count := 0
	for _, n := range ns {
		if !n.Read {
			count++
		}
	}
	return count
}
