package analytics

import (
	"slices"
	"time"

	"github.com/ofirka2/brand-manager/internal/models"
)

// ApplyFilters keeps the rows matching every active restriction and sorts them by deadline.
// Dates are read as calendar days in loc. A row whose brand is unknown never
// matches a brand restriction.
func ApplyFilters(rows []TaskRow, f models.FilterOptions, loc *time.Location) []TaskRow {
	var out []TaskRow
	for _, r := range rows {
		if matches(r, f, loc) {
			out = append(out, r)
		}
	}
	return sortByDeadline(out, loc, func(r TaskRow) string { return r.Task.Deadline })
}

func matches(r TaskRow, f models.FilterOptions, loc *time.Location) bool {
	if len(f.Priority) > 0 && !slices.Contains(f.Priority, string(r.Task.Priority)) {
		return false
	}
	if len(f.Status) > 0 && !slices.Contains(f.Status, string(r.Task.Status)) {
		return false
	}
	if len(f.Category) > 0 && !slices.Contains(f.Category, string(r.Task.Category)) {
		return false
	}
	if len(f.Brand) > 0 && (!r.Brand.Known || !slices.Contains(f.Brand, r.Brand.Label)) {
		return false
	}
	if f.DateRange != nil {
		return inRange(r.Task.Deadline, *f.DateRange, loc)
	}
	return true
}

// inRange checks deadline against an inclusive range of calendar dates.
// An unreadable bound leaves that side open; an unreadable deadline never matches.
func inRange(deadline string, dr models.DateRange, loc *time.Location) bool {
	d, ok := ParseDate(deadline, loc)
	if !ok {
		return false
	}
	day := calendarDay(d, loc)
	if start, ok := ParseDate(dr.Start, loc); ok && day.Before(calendarDay(start, loc)) {
		return false
	}
	if end, ok := ParseDate(dr.End, loc); ok && day.After(calendarDay(end, loc)) {
		return false
	}
	return true
}
