package analytics

import (
	"math"
	"sort"
	"time"
)

// Bar is one task placed on the shared timeline. Position and Width are
// percentages of the window, ready for proportional rendering.
type Bar struct {
	Row          TaskRow
	Start        time.Time
	End          time.Time
	DurationDays int
	Position     float64
	Width        float64
	Overdue      bool
	Completed    bool
}

// Month marks the first day of a month inside the window
type Month struct {
	Date  time.Time
	Label string
}

// Timeline is the Gantt layout for a set of tasks
type Timeline struct {
	Start     time.Time
	End       time.Time
	TotalDays int
	Bars      []Bar
	Months    []Month
}

// Empty reports whether there is nothing to draw
func (t Timeline) Empty() bool {
	return len(t.Bars) == 0
}

// GanttFilter narrows the rows before layout. Empty fields match everything.
type GanttFilter struct {
	BrandName string
	ProjectID string
}

// Apply returns the rows that pass the filter
func (f GanttFilter) Apply(rows []TaskRow) []TaskRow {
	var out []TaskRow
	for _, r := range rows {
		if f.BrandName != "" && r.Brand.Label != f.BrandName {
			continue
		}
		if f.ProjectID != "" && r.ProjectID != f.ProjectID {
			continue
		}
		out = append(out, r)
	}
	return out
}

type span struct {
	row        TaskRow
	start, end time.Time
}

// Layout places every row with a readable creation date and deadline on a
// window running from one month before the earliest start to one month after
// the latest deadline. Bars are laid out independently and may overlap.
func Layout(rows []TaskRow, now time.Time) Timeline {
	loc := now.Location()
	var spans []span
	for _, r := range rows {
		start, ok := ParseDate(r.Task.CreatedAt, loc)
		if !ok {
			continue
		}
		end, ok := ParseDate(r.Task.Deadline, loc)
		if !ok {
			continue
		}
		spans = append(spans, span{row: r, start: start, end: end})
	}
	if len(spans) == 0 {
		return Timeline{}
	}

	earliest, latest := spans[0].start, spans[0].end
	for _, s := range spans[1:] {
		if s.start.Before(earliest) {
			earliest = s.start
		}
		if s.end.After(latest) {
			latest = s.end
		}
	}

	windowStart := earliest.AddDate(0, -1, 0)
	windowEnd := latest.AddDate(0, 1, 0)
	total := max(ceilDays(windowEnd.Sub(windowStart)), 1)

	bars := make([]Bar, 0, len(spans))
	for _, s := range spans {
		duration := ceilDays(s.end.Sub(s.start))
		offset := ceilDays(s.start.Sub(windowStart))
		completed := s.row.Task.Completed()
		bars = append(bars, Bar{
			Row:          s.row,
			Start:        s.start,
			End:          s.end,
			DurationDays: duration,
			Position:     float64(offset) / float64(total) * 100,
			Width:        float64(max(duration, 1)) / float64(total) * 100,
			Overdue:      !completed && IsOverdue(s.row.Task.Deadline, now),
			Completed:    completed,
		})
	}
	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Start.Before(bars[j].Start) })

	return Timeline{
		Start:     windowStart,
		End:       windowEnd,
		TotalDays: total,
		Bars:      bars,
		Months:    months(windowStart, windowEnd),
	}
}

func months(start, end time.Time) []Month {
	var out []Month
	cur := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, start.Location())
	for !cur.After(end) {
		out = append(out, Month{Date: cur, Label: cur.Format("Jan 2006")})
		cur = cur.AddDate(0, 1, 0)
	}
	return out
}

func ceilDays(d time.Duration) int {
	return int(math.Ceil(d.Hours() / 24))
}
