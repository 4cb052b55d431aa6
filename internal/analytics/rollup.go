package analytics

import (
	"sort"
	"time"

	"github.com/ofirka2/brand-manager/internal/models"
	"github.com/ofirka2/brand-manager/internal/store"
)

// TaskRow is a task with the project and brand context needed to display it
type TaskRow struct {
	Task        models.Task
	ProjectID   string
	ProjectName string
	Brand       BrandDisplay
}

// AllTasks flattens every project's tasks, in project then task order
func AllTasks(s store.State) []TaskRow {
	brands := brandIndex(s.Brands)
	var rows []TaskRow
	for _, p := range s.Projects {
		display := ResolveBrandDisplay(brands[p.BrandID])
		for _, t := range p.Tasks {
			rows = append(rows, TaskRow{
				Task:        t,
				ProjectID:   p.ID,
				ProjectName: p.Name,
				Brand:       display,
			})
		}
	}
	return rows
}

// Tasks strips the display context from rows
func Tasks(rows []TaskRow) []models.Task {
	out := make([]models.Task, len(rows))
	for i, r := range rows {
		out[i] = r.Task
	}
	return out
}

func brandIndex(brands []models.Brand) map[string]*models.Brand {
	idx := make(map[string]*models.Brand, len(brands))
	for i := range brands {
		idx[brands[i].ID] = &brands[i]
	}
	return idx
}

// DashboardStats are the headline numbers across every project
type DashboardStats struct {
	TotalProjects  int
	TotalTasks     int
	Overdue        int
	DueIn7         int
	DueIn30        int
	Completed      int
	CompletionRate int
}

// Dashboard computes the headline numbers for the current state
func Dashboard(s store.State, now time.Time) DashboardStats {
	tasks := Tasks(AllTasks(s))
	completed := 0
	for _, t := range tasks {
		if t.Completed() {
			completed++
		}
	}
	return DashboardStats{
		TotalProjects:  len(s.Projects),
		TotalTasks:     len(tasks),
		Overdue:        len(OverdueTasks(tasks, now)),
		DueIn7:         len(DueWithin(tasks, 7, now)),
		DueIn30:        len(DueWithin(tasks, 30, now)),
		Completed:      completed,
		CompletionRate: percent(completed, len(tasks)),
	}
}

// BrandSummary is the per-brand rollup shown on the dashboard and brand list
type BrandSummary struct {
	Brand          models.Brand
	Projects       int
	Tasks          int
	CompletionRate int
}

// BrandSummaries rolls up every brand in display order
func BrandSummaries(s store.State) []BrandSummary {
	out := make([]BrandSummary, 0, len(s.Brands))
	for _, b := range s.Brands {
		projects := brandProjects(s.Projects, b.ID)
		tasks := projectTasks(projects)
		out = append(out, BrandSummary{
			Brand:          b,
			Projects:       len(projects),
			Tasks:          len(tasks),
			CompletionRate: CompletionRate(tasks),
		})
	}
	return out
}

// BrandReport is the detailed breakdown for a single brand
type BrandReport struct {
	Brand           models.Brand
	Projects        []models.Project
	AllTasks        []models.Task
	Completed       []models.Task
	InProgress      []models.Task
	Overdue         []models.Task
	Upcoming        []models.Task // open, due within 7 days
	EstimatedHours  float64
	ActualHours     float64
	Priorities      []Count[models.Priority]
	Categories      []Count[models.Category]
	CompletionRate  int
	AverageProgress int
	Recent          []models.Task // most recently updated first, at most 5
}

// BrandDetail builds the report for brandID. ok is false when the brand does not exist.
func BrandDetail(s store.State, brandID string, now time.Time) (BrandReport, bool) {
	b, ok := s.Brand(brandID)
	if !ok {
		return BrandReport{}, false
	}
	projects := brandProjects(s.Projects, brandID)
	tasks := projectTasks(projects)

	r := BrandReport{
		Brand:           b,
		Projects:        projects,
		AllTasks:        tasks,
		Overdue:         OverdueTasks(tasks, now),
		Upcoming:        DueWithin(tasks, 7, now),
		Priorities:      PriorityBreakdown(tasks),
		Categories:      TopCategories(tasks, 6),
		CompletionRate:  CompletionRate(tasks),
		AverageProgress: AverageProgress(projects),
		Recent:          recentlyUpdated(tasks, 5),
	}
	for _, t := range tasks {
		switch t.Status {
		case models.StatusCompleted:
			r.Completed = append(r.Completed, t)
		case models.StatusInProgress:
			r.InProgress = append(r.InProgress, t)
		}
	}
	r.EstimatedHours, r.ActualHours = TotalHours(tasks)
	return r, true
}

// ProjectStats is the per-project line shown in project lists
type ProjectStats struct {
	Progress  int
	Completed int
	Overdue   int
}

// ProjectSummary computes progress and counts for one project
func ProjectSummary(p models.Project, now time.Time) ProjectStats {
	completed := 0
	for _, t := range p.Tasks {
		if t.Completed() {
			completed++
		}
	}
	return ProjectStats{
		Progress:  Progress(p),
		Completed: completed,
		Overdue:   len(OverdueTasks(p.Tasks, now)),
	}
}

func brandProjects(projects []models.Project, brandID string) []models.Project {
	var out []models.Project
	for _, p := range projects {
		if p.BrandID == brandID {
			out = append(out, p)
		}
	}
	return out
}

func projectTasks(projects []models.Project) []models.Task {
	var out []models.Task
	for _, p := range projects {
		out = append(out, p.Tasks...)
	}
	return out
}

func recentlyUpdated(tasks []models.Task, n int) []models.Task {
	out := append([]models.Task(nil), tasks...)
	sort.SliceStable(out, func(i, j int) bool {
		a, _ := ParseDate(out[i].UpdatedAt, time.UTC)
		b, _ := ParseDate(out[j].UpdatedAt, time.UTC)
		return a.After(b)
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
