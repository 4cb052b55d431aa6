package analytics

import (
	"log"
	"sort"
	"strings"
	"time"

	"github.com/ofirka2/brand-manager/internal/models"
)

var dateLayouts = []string{
	"2006-01-02",  // ISO date
	time.RFC3339,  // full timestamp
	"2 Jan 2006",  // e.g., 30 Oct 2025
	"02 Jan 2006", // zero-padded day
}

// Location loads the IANA zone name used to decide what "today" is.
// Unknown names fall back to UTC.
func Location(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("warning: unknown timezone %q, using UTC", name)
		return time.UTC
	}
	return loc
}

// ParseDate parses a deadline or timestamp. Date-only values are read in loc.
func ParseDate(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// calendarDay drops the time of day, keeping the date as seen from loc.
// The result is in UTC so day differences are exact multiples of 24h.
func calendarDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysUntil returns the signed number of calendar days from now to deadline.
// Negative means overdue. ok is false when deadline cannot be parsed.
func DaysUntil(deadline string, now time.Time) (days int, ok bool) {
	loc := now.Location()
	d, ok := ParseDate(deadline, loc)
	if !ok {
		return 0, false
	}
	diff := calendarDay(d, loc).Sub(calendarDay(now, loc))
	return int(diff.Hours() / 24), true
}

// IsOverdue reports whether deadline's calendar date is strictly before today
func IsOverdue(deadline string, now time.Time) bool {
	days, ok := DaysUntil(deadline, now)
	return ok && days < 0
}

// OverdueTasks returns the tasks that are overdue and not completed
func OverdueTasks(tasks []models.Task, now time.Time) []models.Task {
	var out []models.Task
	for _, t := range tasks {
		if !t.Completed() && IsOverdue(t.Deadline, now) {
			out = append(out, t)
		}
	}
	return out
}

// DueWithin returns the open tasks due between today and today+days inclusive.
// Overdue tasks never appear here, so overdue and upcoming never overlap.
func DueWithin(tasks []models.Task, days int, now time.Time) []models.Task {
	var out []models.Task
	for _, t := range tasks {
		if t.Completed() {
			continue
		}
		d, ok := DaysUntil(t.Deadline, now)
		if ok && d >= 0 && d <= days {
			out = append(out, t)
		}
	}
	return out
}

// SortByDeadline returns a copy of tasks ordered by deadline, earliest first.
// Deadlines compare by calendar day in loc, the same days DaysUntil counts, then
// by instant. Ties keep their order; tasks without a readable deadline go last.
func SortByDeadline(tasks []models.Task, loc *time.Location) []models.Task {
	return sortByDeadline(tasks, loc, func(t models.Task) string { return t.Deadline })
}

func sortByDeadline[T any](items []T, loc *time.Location, deadline func(T) string) []T {
	type keyed struct {
		item T
		day  time.Time
		at   time.Time
		ok   bool
	}
	ks := make([]keyed, len(items))
	for i, it := range items {
		at, ok := ParseDate(deadline(it), loc)
		ks[i] = keyed{item: it, day: calendarDay(at, loc), at: at, ok: ok}
	}
	sort.SliceStable(ks, func(i, j int) bool {
		a, b := ks[i], ks[j]
		if a.ok != b.ok {
			return a.ok
		}
		if !a.ok {
			return false
		}
		if !a.day.Equal(b.day) {
			return a.day.Before(b.day)
		}
		return a.at.Before(b.at)
	})
	out := make([]T, len(ks))
	for i, k := range ks {
		out[i] = k.item
	}
	return out
}

// FormatDate renders s as "Jan 2, 2006", or returns it unchanged when unreadable
func FormatDate(s string) string {
	t, ok := ParseDate(s, time.UTC)
	if !ok {
		return s
	}
	return t.Format("Jan 2, 2006")
}
