package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStampTemplate_FreshTasks(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	est := 4.0
	tpl := ProjectTemplate{
		ID:   "tpl-1",
		Name: "Launch",
		Tasks: []TaskBlueprint{
			{Subject: "Brief", Deadline: "2025-01-01", Priority: PriorityHigh, Category: CategoryResearch, Status: StatusNotStarted, EstimatedHours: &est},
			{Subject: "Design", Priority: PriorityMedium, Category: CategoryDesign, Status: StatusNotStarted},
			{Subject: "Ship", Priority: PriorityUrgent, Category: CategoryDevelopment, Status: StatusNotStarted},
		},
	}

	p := NewProjectFromTemplate("Spring launch", "desc", "b1", tpl, now)
	require.Len(t, p.Tasks, 3)

	seen := map[string]bool{}
	for i, task := range p.Tasks {
		require.NotEmpty(t, task.ID)
		require.False(t, seen[task.ID], "duplicate id %s", task.ID)
		seen[task.ID] = true
		require.Equal(t, p.ID, task.ProjectID)
		require.Equal(t, "", task.Deadline)
		require.Equal(t, tpl.Tasks[i].Subject, task.Subject)
		require.Equal(t, Timestamp(now), task.CreatedAt)
	}

	// hours are copied, not shared with the template
	require.NotNil(t, p.Tasks[0].EstimatedHours)
	*p.Tasks[0].EstimatedHours = 99
	require.Equal(t, 4.0, *tpl.Tasks[0].EstimatedHours)
}

func TestStampTemplate_TwiceYieldsDistinctIDs(t *testing.T) {
	now := time.Now()
	tpl := ProjectTemplate{Tasks: []TaskBlueprint{{Subject: "a"}}}

	first := StampTemplate(tpl, "p1", now)
	second := StampTemplate(tpl, "p1", now)
	require.NotEqual(t, first[0].ID, second[0].ID)
}

func TestNewTemplateFromProject(t *testing.T) {
	now := time.Now()
	p := NewProject("Site", "b1", now)
	p.Tasks = append(p.Tasks, NewTask(p.ID, "Wireframes", now), NewTask(p.ID, "Copy", now))

	tpl := NewTemplateFromProject("Site template", p, now)
	require.Equal(t, "Site template", tpl.Name)
	require.Len(t, tpl.Tasks, 2)
	require.Equal(t, "Wireframes", tpl.Tasks[0].Subject)
	require.NotEqual(t, p.ID, tpl.ID)
}

func TestBrandValidate(t *testing.T) {
	b := NewBrand("Acme", time.Now())
	require.NoError(t, b.Validate())

	b.Budget = -1
	require.ErrorIs(t, b.Validate(), ErrNegativeBudget)

	b.Budget = 0
	b.SalesGoal = -5
	require.ErrorIs(t, b.Validate(), ErrNegativeSalesGoal)

	b.Name = ""
	require.ErrorIs(t, b.Validate(), ErrEmptyName)
}

func TestStatusAndPriorityCycle(t *testing.T) {
	s := StatusNotStarted
	for range Statuses() {
		s = s.Next()
	}
	require.Equal(t, StatusNotStarted, s)

	p := PriorityLow
	for range Priorities() {
		p = p.Next()
	}
	require.Equal(t, PriorityLow, p)
}
