package store

import (
	"testing"

	"github.com/ofirka2/brand-manager/internal/models"
	"github.com/ofirka2/brand-manager/internal/testutil"
	"github.com/stretchr/testify/require"
)

func reduceAll(s State, actions ...Action) State {
	for _, a := range actions {
		s = Reduce(s, a)
	}
	return s
}

func TestReduce_AddBrandAndProject(t *testing.T) {
	b := testutil.Brand("b1", "Acme")
	b.Budget = 1000
	b.SalesGoal = 500
	p := testutil.Project("p1", "b1", 0)

	s := reduceAll(Initial("UTC"), AddBrand{Brand: b}, AddProject{Project: p})

	require.Len(t, s.Brands, 1)
	require.Equal(t, 1000.0, s.Brands[0].Budget)
	require.Len(t, s.Projects, 1)
	require.Empty(t, s.Projects[0].Tasks)
}

func TestReduce_AddPreservesInsertionOrder(t *testing.T) {
	s := reduceAll(Initial("UTC"),
		AddBrand{Brand: testutil.Brand("b1", "One")},
		AddBrand{Brand: testutil.Brand("b2", "Two")},
		AddBrand{Brand: testutil.Brand("b3", "Three")},
	)
	require.Equal(t, "b1", s.Brands[0].ID)
	require.Equal(t, "b2", s.Brands[1].ID)
	require.Equal(t, "b3", s.Brands[2].ID)
}

func TestReduce_DeleteBrandCascades(t *testing.T) {
	s := reduceAll(Initial("UTC"),
		AddBrand{Brand: testutil.Brand("b1", "Acme")},
		AddBrand{Brand: testutil.Brand("b2", "Globex")},
		AddProject{Project: testutil.Project("p1", "b1", 2)},
		AddProject{Project: testutil.Project("p2", "b2", 1)},
		AddProject{Project: testutil.Project("p3", "b1", 0)},
	)

	next := Reduce(s, DeleteBrand{ID: "b1"})

	require.Len(t, next.Brands, 1)
	require.Equal(t, "b2", next.Brands[0].ID)
	for _, p := range next.Projects {
		require.NotEqual(t, "b1", p.BrandID)
	}
	require.Len(t, next.Projects, 1)
	require.Equal(t, "p2", next.Projects[0].ID)

	// previous snapshot untouched
	require.Len(t, s.Brands, 2)
	require.Len(t, s.Projects, 3)
}

func TestReduce_DeleteProjectClearsSelection(t *testing.T) {
	s := reduceAll(Initial("UTC"),
		AddProject{Project: testutil.Project("p1", "b1", 0)},
		AddProject{Project: testutil.Project("p2", "b1", 0)},
		SetSelectedProject{ID: "p1"},
	)

	kept := Reduce(s, DeleteProject{ID: "p2"})
	require.Equal(t, "p1", kept.SelectedProject)

	cleared := Reduce(s, DeleteProject{ID: "p1"})
	require.Equal(t, "", cleared.SelectedProject)
	require.Len(t, cleared.Projects, 1)
}

func TestReduce_AddThenDeleteTaskRestoresTasks(t *testing.T) {
	s := reduceAll(Initial("UTC"), AddProject{Project: testutil.Project("p1", "b1", 2)})
	before := append([]models.Task(nil), s.Projects[0].Tasks...)

	task := testutil.Task("new", "p1", testutil.Day(3))
	s = Reduce(s, AddTask{ProjectID: "p1", Task: task})
	require.Len(t, s.Projects[0].Tasks, 3)

	s = Reduce(s, DeleteTask{ProjectID: "p1", TaskID: "new"})
	require.Equal(t, before, s.Projects[0].Tasks)
}

func TestReduce_UpdateTask(t *testing.T) {
	s := reduceAll(Initial("UTC"), AddProject{Project: testutil.Project("p1", "b1", 3)})

	updated := s.Projects[0].Tasks[1]
	updated.Status = models.StatusCompleted
	next := Reduce(s, UpdateTask{ProjectID: "p1", Task: updated})

	require.Equal(t, models.StatusCompleted, next.Projects[0].Tasks[1].Status)
	require.Equal(t, models.StatusNotStarted, s.Projects[0].Tasks[1].Status)
}

func TestReduce_UpdateUnknownTaskIsNoop(t *testing.T) {
	s := reduceAll(Initial("UTC"), AddProject{Project: testutil.Project("p1", "b1", 3)})
	before := append([]models.Task(nil), s.Projects[0].Tasks...)

	ghost := testutil.Task("ghost", "p1", testutil.Day(1))
	next := Reduce(s, UpdateTask{ProjectID: "p1", Task: ghost})
	require.Equal(t, before, next.Projects[0].Tasks)

	next = Reduce(s, UpdateTask{ProjectID: "missing", Task: before[0]})
	require.Equal(t, s.Projects, next.Projects)

	next = Reduce(s, AddTask{ProjectID: "missing", Task: ghost})
	require.Equal(t, s.Projects, next.Projects)
}

func TestReduce_UpdateUnknownBrandIsNoop(t *testing.T) {
	s := reduceAll(Initial("UTC"), AddBrand{Brand: testutil.Brand("b1", "Acme")})

	next := Reduce(s, UpdateBrand{Brand: testutil.Brand("zz", "Ghost")})
	require.Equal(t, s.Brands, next.Brands)

	renamed := s.Brands[0]
	renamed.Name = "Acme Corp"
	next = Reduce(s, UpdateBrand{Brand: renamed})
	require.Equal(t, "Acme Corp", next.Brands[0].Name)
	require.Equal(t, "Acme", s.Brands[0].Name)
}

func TestReduce_UpdateTemplateReplacesMatch(t *testing.T) {
	t1 := models.ProjectTemplate{ID: "t1", Name: "Launch"}
	t2 := models.ProjectTemplate{ID: "t2", Name: "Audit"}
	s := reduceAll(Initial("UTC"), AddTemplate{Template: t1}, AddTemplate{Template: t2})

	t1.Name = "Launch v2"
	next := Reduce(s, UpdateTemplate{Template: t1})

	require.Len(t, next.Templates, 2)
	require.Equal(t, "Launch v2", next.Templates[0].Name)
	require.Equal(t, "Audit", next.Templates[1].Name)

	next = Reduce(next, DeleteTemplate{ID: "t2"})
	require.Len(t, next.Templates, 1)
}

func TestReduce_AppendDoesNotAliasPreviousSnapshot(t *testing.T) {
	base := Initial("UTC")
	base.Brands = make([]models.Brand, 1, 8) // spare capacity invites aliasing
	base.Brands[0] = testutil.Brand("b0", "Base")

	a := Reduce(base, AddBrand{Brand: testutil.Brand("b1", "A")})
	b := Reduce(base, AddBrand{Brand: testutil.Brand("b2", "B")})

	require.Equal(t, "b1", a.Brands[1].ID)
	require.Equal(t, "b2", b.Brands[1].ID)
	require.Len(t, base.Brands, 1)
}

func TestReduce_UISelectionLeavesCollectionsAlone(t *testing.T) {
	s := reduceAll(Initial("UTC"), AddProject{Project: testutil.Project("p1", "b1", 1)})

	next := reduceAll(s,
		SetCurrentView{View: ViewTimeline},
		SetSelectedProject{ID: "p1"},
		SetFilters{Filters: models.FilterOptions{Priority: []string{"High"}}},
	)
	require.Equal(t, ViewTimeline, next.CurrentView)
	require.Equal(t, "p1", next.SelectedProject)
	require.Equal(t, []string{"High"}, next.Filters.Priority)
	require.Equal(t, s.Projects, next.Projects)
}
