package analytics

import (
	"testing"
	"time"

	"github.com/ofirka2/brand-manager/internal/models"
	"github.com/ofirka2/brand-manager/internal/store"
	"github.com/ofirka2/brand-manager/internal/testutil"
	"github.com/stretchr/testify/require"
)

func sampleState() store.State {
	s := store.Initial("UTC")

	acme := testutil.Brand("b1", "Acme")
	acme.PrimaryColor = "#EF4444"
	s = store.Reduce(s, store.AddBrand{Brand: acme})
	s = store.Reduce(s, store.AddBrand{Brand: testutil.Brand("b2", "Globex")})

	p1 := testutil.Project("p1", "b1", 0)
	p1.Tasks = []models.Task{
		testutil.Task("t1", "p1", testutil.Day(-2)),
		testutil.Task("t2", "p1", testutil.Day(3)),
		testutil.Task("t3", "p1", testutil.Day(20)),
		testutil.Task("t4", "p1", testutil.Day(1)),
	}
	p1.Tasks[0].Priority = models.PriorityUrgent
	p1.Tasks[1].Category = models.CategoryDesign
	p1.Tasks[2].Status = models.StatusInProgress
	p1.Tasks[3].Status = models.StatusCompleted
	est := 5.0
	p1.Tasks[1].EstimatedHours = &est

	orphan := testutil.Project("p2", "gone", 1)

	s = store.Reduce(s, store.AddProject{Project: p1})
	s = store.Reduce(s, store.AddProject{Project: orphan})
	return s
}

func TestResolveBrandDisplay_Fallback(t *testing.T) {
	d := ResolveBrandDisplay(nil)
	require.Equal(t, models.DefaultBrandColor, d.Color)
	require.Equal(t, UnknownBrandLabel, d.Label)
	require.False(t, d.Known)

	b := testutil.Brand("b1", "Acme")
	b.PrimaryColor = ""
	d = ResolveBrandDisplay(&b)
	require.Equal(t, models.DefaultBrandColor, d.Color)
	require.Equal(t, "Acme", d.Label)
	require.True(t, d.Known)
}

func TestAllTasks_DanglingBrandTolerated(t *testing.T) {
	rows := AllTasks(sampleState())
	require.Len(t, rows, 5)

	require.Equal(t, "Acme", rows[0].Brand.Label)
	require.Equal(t, "#EF4444", rows[0].Brand.Color)
	require.Equal(t, UnknownBrandLabel, rows[4].Brand.Label)
	require.Equal(t, "p2", rows[4].ProjectID)
}

func TestDashboard(t *testing.T) {
	stats := Dashboard(sampleState(), testutil.Now)

	require.Equal(t, 2, stats.TotalProjects)
	require.Equal(t, 5, stats.TotalTasks)
	require.Equal(t, 1, stats.Overdue)
	require.Equal(t, 2, stats.DueIn7)  // t2 (+3) and the orphan task (+7); t4 is completed
	require.Equal(t, 3, stats.DueIn30) // plus t3 (+20)
	require.Equal(t, 1, stats.Completed)
	require.Equal(t, 20, stats.CompletionRate)
}

func TestBrandSummaries(t *testing.T) {
	sums := BrandSummaries(sampleState())
	require.Len(t, sums, 2)

	require.Equal(t, "b1", sums[0].Brand.ID)
	require.Equal(t, 1, sums[0].Projects)
	require.Equal(t, 4, sums[0].Tasks)
	require.Equal(t, 25, sums[0].CompletionRate)

	require.Equal(t, 0, sums[1].Projects)
	require.Equal(t, 0, sums[1].CompletionRate)
}

func TestBrandDetail(t *testing.T) {
	r, ok := BrandDetail(sampleState(), "b1", testutil.Now)
	require.True(t, ok)

	require.Len(t, r.Projects, 1)
	require.Len(t, r.AllTasks, 4)
	require.Len(t, r.Completed, 1)
	require.Len(t, r.InProgress, 1)
	require.Len(t, r.Overdue, 1)
	require.Len(t, r.Upcoming, 1)
	require.Equal(t, 5.0, r.EstimatedHours)
	require.Equal(t, 0.0, r.ActualHours)
	require.Equal(t, 25, r.CompletionRate)
	require.Equal(t, 25, r.AverageProgress)
	require.Equal(t, models.PriorityUrgent, r.Priorities[0].Key)
	require.Equal(t, 1, r.Priorities[0].Count)
	require.Len(t, r.Recent, 4)

	_, ok = BrandDetail(sampleState(), "nope", testutil.Now)
	require.False(t, ok)
}

func TestProjectSummary(t *testing.T) {
	p, _ := sampleState().Project("p1")
	stats := ProjectSummary(p, testutil.Now)
	require.Equal(t, 25, stats.Progress)
	require.Equal(t, 1, stats.Completed)
	require.Equal(t, 1, stats.Overdue)
}

func TestBreakdowns(t *testing.T) {
	mk := func(c models.Category) models.Task {
		task := testutil.Task("x", "p", "")
		task.Category = c
		return task
	}
	tasks := []models.Task{
		mk(models.CategoryMeeting),
		mk(models.CategoryDesign),
		mk(models.CategoryDesign),
		mk(models.CategoryTesting),
		mk(models.CategoryMeeting),
		mk(models.CategoryResearch),
	}

	cats := CategoryBreakdown(tasks)
	require.Equal(t, models.CategoryMeeting, cats[0].Key)
	require.Len(t, cats, 4)

	top := TopCategories(tasks, 3)
	require.Equal(t, []Count[models.Category]{
		{Key: models.CategoryMeeting, Count: 2},
		{Key: models.CategoryDesign, Count: 2},
		{Key: models.CategoryTesting, Count: 1},
	}, top)

	prio := PriorityBreakdown(tasks)
	require.Len(t, prio, 4)
	require.Equal(t, models.PriorityMedium, prio[2].Key)
	require.Equal(t, 6, prio[2].Count)

	status := StatusBreakdown(tasks)
	require.Equal(t, models.StatusNotStarted, status[0].Key)
	require.Equal(t, 6, status[0].Count)
}

func TestApplyFilters(t *testing.T) {
	rows := AllTasks(sampleState())

	all := ApplyFilters(rows, models.FilterOptions{}, time.UTC)
	require.Len(t, all, 5)
	require.Equal(t, "t1", all[0].Task.ID, "sorted by deadline")

	byBrand := ApplyFilters(rows, models.FilterOptions{Brand: []string{"Acme"}}, time.UTC)
	require.Len(t, byBrand, 4)

	unknown := ApplyFilters(rows, models.FilterOptions{Brand: []string{UnknownBrandLabel}}, time.UTC)
	require.Empty(t, unknown)

	urgent := ApplyFilters(rows, models.FilterOptions{Priority: []string{"Urgent"}}, time.UTC)
	require.Len(t, urgent, 1)

	ranged := ApplyFilters(rows, models.FilterOptions{
		DateRange: &models.DateRange{Start: testutil.Day(1), End: testutil.Day(7)},
	}, time.UTC)
	require.Len(t, ranged, 3) // t4 (+1), t2 (+3), orphan (+7)
	require.Equal(t, "t4", ranged[0].Task.ID)

	combined := ApplyFilters(rows, models.FilterOptions{
		Status:   []string{"Not Started"},
		Category: []string{"Design"},
	}, time.UTC)
	require.Len(t, combined, 1)
	require.Equal(t, "t2", combined[0].Task.ID)
}

func TestNewBrandAndEmptyProject(t *testing.T) {
	b := testutil.Brand("b1", "Acme")
	b.Budget = 1000
	b.SalesGoal = 500

	s := store.Initial("UTC")
	s = store.Reduce(s, store.AddBrand{Brand: b})
	s = store.Reduce(s, store.AddProject{Project: testutil.Project("p1", "b1", 0)})

	p, ok := s.Project("p1")
	require.True(t, ok)
	require.Equal(t, 0, Progress(p))

	sums := BrandSummaries(s)
	require.Len(t, sums, 1)
	require.Equal(t, 1, sums[0].Projects)
	require.Zero(t, sums[0].CompletionRate)
}
