package analytics

import (
	"testing"

	"github.com/ofirka2/brand-manager/internal/models"
	"github.com/ofirka2/brand-manager/internal/testutil"
	"github.com/stretchr/testify/require"
)

func ganttRow(id, created, deadline string) TaskRow {
	task := testutil.Task(id, "p1", deadline)
	task.CreatedAt = created
	return TaskRow{Task: task, ProjectID: "p1", ProjectName: "Site", Brand: ResolveBrandDisplay(nil)}
}

func TestLayout_EmptyInput(t *testing.T) {
	tl := Layout(nil, testutil.Now)
	require.True(t, tl.Empty())
	require.Equal(t, 0, tl.TotalDays)
	require.Empty(t, tl.Months)

	// rows without readable dates are skipped, leaving nothing to lay out
	tl = Layout([]TaskRow{ganttRow("a", "2025-03-01T00:00:00Z", "")}, testutil.Now)
	require.True(t, tl.Empty())
}

func TestLayout_Geometry(t *testing.T) {
	rows := []TaskRow{
		ganttRow("b", "2025-03-05T00:00:00Z", "2025-04-01"),
		ganttRow("a", "2025-03-01T00:00:00Z", "2025-03-11"),
		ganttRow("c", "2025-03-01T00:00:00Z", "2025-03-02"),
		ganttRow("undated", "2025-03-01T00:00:00Z", ""),
	}

	tl := Layout(rows, testutil.Now)

	// Feb 1 .. May 1 = 28 + 31 + 30 days
	require.Equal(t, 89, tl.TotalDays)
	require.Equal(t, "2025-02-01", tl.Start.Format("2006-01-02"))
	require.Equal(t, "2025-05-01", tl.End.Format("2006-01-02"))
	require.Len(t, tl.Bars, 3)

	a, c, b := tl.Bars[0], tl.Bars[1], tl.Bars[2]
	require.Equal(t, "a", a.Row.Task.ID)
	require.Equal(t, "c", c.Row.Task.ID)
	require.Equal(t, "b", b.Row.Task.ID)

	require.InDelta(t, 28.0/89*100, a.Position, 1e-9)
	require.InDelta(t, 10.0/89*100, a.Width, 1e-9)
	require.Equal(t, 10, a.DurationDays)
	require.False(t, a.Overdue)

	require.InDelta(t, 1.0/89*100, c.Width, 1e-9)
	require.True(t, c.Overdue)

	require.InDelta(t, 32.0/89*100, b.Position, 1e-9)
	require.InDelta(t, 27.0/89*100, b.Width, 1e-9)

	labels := make([]string, len(tl.Months))
	for i, m := range tl.Months {
		labels[i] = m.Label
	}
	require.Equal(t, []string{"Feb 2025", "Mar 2025", "Apr 2025", "May 2025"}, labels)
}

func TestLayout_MinimumWidthAndCompletion(t *testing.T) {
	row := ganttRow("back", "2025-03-10T00:00:00Z", "2025-03-01") // deadline before creation
	row.Task.Status = models.StatusCompleted

	tl := Layout([]TaskRow{row}, testutil.Now)
	require.Len(t, tl.Bars, 1)
	require.Greater(t, tl.Bars[0].Width, 0.0)
	require.InDelta(t, 1.0/float64(tl.TotalDays)*100, tl.Bars[0].Width, 1e-9)
	require.True(t, tl.Bars[0].Completed)
	require.False(t, tl.Bars[0].Overdue)
}

func TestGanttFilter(t *testing.T) {
	rows := AllTasks(sampleState())

	require.Len(t, GanttFilter{}.Apply(rows), 5)
	require.Len(t, GanttFilter{BrandName: "Acme"}.Apply(rows), 4)
	require.Len(t, GanttFilter{ProjectID: "p2"}.Apply(rows), 1)
	require.Empty(t, GanttFilter{BrandName: "Acme", ProjectID: "p2"}.Apply(rows))
}

func TestReminders(t *testing.T) {
	mk := func(id string, offset int, p models.Priority) TaskRow {
		task := testutil.Task(id, "p1", testutil.Day(offset))
		task.Priority = p
		return TaskRow{Task: task, ProjectID: "p1"}
	}
	rows := []TaskRow{
		mk("week", 7, models.PriorityLow),
		mk("three", 3, models.PriorityLow),
		mk("one", 1, models.PriorityLow),
		mk("five", 5, models.PriorityLow),
		mk("late", -2, models.PriorityUrgent),
		mk("lateLow", -1, models.PriorityLow),
	}

	got := Reminders(rows, models.DefaultNotificationSettings(), testutil.Now)
	require.Len(t, got, 5)
	require.Equal(t, ReminderSevenDays, got[0].Kind)
	require.Equal(t, ReminderThreeDays, got[1].Kind)
	require.Equal(t, ReminderOneDay, got[2].Kind)
	require.Equal(t, ReminderOverdue, got[3].Kind)
	require.True(t, got[3].Escalated)
	require.False(t, got[4].Escalated)

	ns := models.DefaultNotificationSettings()
	ns.Triggers.ThreeDays = false
	ns.Escalation = false
	got = Reminders(rows, ns, testutil.Now)
	require.Len(t, got, 4)
	require.False(t, got[2].Escalated)

	ns.Enabled = false
	require.Empty(t, Reminders(rows, ns, testutil.Now))
}
