package analytics

import (
	"time"

	"github.com/ofirka2/brand-manager/internal/models"
)

// ReminderKind is the deadline threshold a reminder fired for
type ReminderKind string

const (
	ReminderSevenDays ReminderKind = "7 days"
	ReminderThreeDays ReminderKind = "3 days"
	ReminderOneDay    ReminderKind = "1 day"
	ReminderOverdue   ReminderKind = "overdue"
)

// Reminder is a deadline notification for one open task
type Reminder struct {
	Row       TaskRow
	Kind      ReminderKind
	DaysLeft  int
	Escalated bool
}

// Reminders returns a reminder for each open task sitting exactly on an enabled
// threshold, or overdue when the overdue trigger is on. With escalation enabled,
// overdue High and Urgent tasks are marked Escalated.
func Reminders(rows []TaskRow, ns models.NotificationSettings, now time.Time) []Reminder {
	if !ns.Enabled {
		return nil
	}
	var out []Reminder
	for _, r := range rows {
		if r.Task.Completed() {
			continue
		}
		days, ok := DaysUntil(r.Task.Deadline, now)
		if !ok {
			continue
		}
		var kind ReminderKind
		switch {
		case days < 0 && ns.Triggers.Overdue:
			kind = ReminderOverdue
		case days == 7 && ns.Triggers.SevenDays:
			kind = ReminderSevenDays
		case days == 3 && ns.Triggers.ThreeDays:
			kind = ReminderThreeDays
		case days == 1 && ns.Triggers.OneDay:
			kind = ReminderOneDay
		default:
			continue
		}
		urgent := r.Task.Priority == models.PriorityHigh || r.Task.Priority == models.PriorityUrgent
		out = append(out, Reminder{
			Row:       r,
			Kind:      kind,
			DaysLeft:  days,
			Escalated: kind == ReminderOverdue && ns.Escalation && urgent,
		})
	}
	return out
}
