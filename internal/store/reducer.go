package store

import (
	"slices"

	"github.com/ofirka2/brand-manager/internal/models"
)

// Reduce applies action to state and returns the next snapshot.
// The input is never modified; every changed collection is a fresh slice.
func Reduce(state State, action Action) State {
	switch a := action.(type) {
	case SetBrands:
		state.Brands = a.Brands
	case SetProjects:
		state.Projects = a.Projects
	case SetTemplates:
		state.Templates = a.Templates

	case AddBrand:
		state.Brands = appended(state.Brands, a.Brand)
	case AddProject:
		state.Projects = appended(state.Projects, a.Project)
	case AddTemplate:
		state.Templates = appended(state.Templates, a.Template)

	case UpdateBrand:
		state.Brands = replaced(state.Brands, a.Brand, func(b models.Brand) bool { return b.ID == a.Brand.ID })
	case UpdateProject:
		state.Projects = replaced(state.Projects, a.Project, func(p models.Project) bool { return p.ID == a.Project.ID })
	case UpdateTemplate:
		state.Templates = replaced(state.Templates, a.Template, func(t models.ProjectTemplate) bool { return t.ID == a.Template.ID })

	case DeleteBrand:
		state.Brands = removed(state.Brands, func(b models.Brand) bool { return b.ID == a.ID })
		state.Projects = removed(state.Projects, func(p models.Project) bool { return p.BrandID == a.ID })
	case DeleteProject:
		state.Projects = removed(state.Projects, func(p models.Project) bool { return p.ID == a.ID })
		if state.SelectedProject == a.ID {
			state.SelectedProject = ""
		}
	case DeleteTemplate:
		state.Templates = removed(state.Templates, func(t models.ProjectTemplate) bool { return t.ID == a.ID })

	case AddTask:
		state.Projects = withProject(state.Projects, a.ProjectID, func(p models.Project) models.Project {
			p.Tasks = appended(p.Tasks, a.Task)
			return p
		})
	case UpdateTask:
		state.Projects = withProject(state.Projects, a.ProjectID, func(p models.Project) models.Project {
			p.Tasks = replaced(p.Tasks, a.Task, func(t models.Task) bool { return t.ID == a.Task.ID })
			return p
		})
	case DeleteTask:
		state.Projects = withProject(state.Projects, a.ProjectID, func(p models.Project) models.Project {
			p.Tasks = removed(p.Tasks, func(t models.Task) bool { return t.ID == a.TaskID })
			return p
		})

	case SetUserSettings:
		state.UserSettings = a.Settings
	case SetNotifications:
		state.Notifications = a.Settings
	case SetFilters:
		state.Filters = a.Filters
	case SetSelectedProject:
		state.SelectedProject = a.ID
	case SetCurrentView:
		state.CurrentView = a.View
	}
	return state
}

// appended returns a copy of s with v at the end. It never writes into s's backing array.
func appended[T any](s []T, v T) []T {
	out := make([]T, len(s), len(s)+1)
	copy(out, s)
	return append(out, v)
}

// replaced returns a copy of s with the first match swapped for v, or s itself when nothing matches
func replaced[T any](s []T, v T, match func(T) bool) []T {
	i := slices.IndexFunc(s, match)
	if i < 0 {
		return s
	}
	out := slices.Clone(s)
	out[i] = v
	return out
}

// removed returns a copy of s without the matches, or s itself when nothing matches
func removed[T any](s []T, match func(T) bool) []T {
	if !slices.ContainsFunc(s, match) {
		return s
	}
	out := make([]T, 0, len(s))
	for _, v := range s {
		if !match(v) {
			out = append(out, v)
		}
	}
	return out
}

// withProject rewrites the project with id using fn, leaving the collection untouched when absent
func withProject(projects []models.Project, id string, fn func(models.Project) models.Project) []models.Project {
	i := slices.IndexFunc(projects, func(p models.Project) bool { return p.ID == id })
	if i < 0 {
		return projects
	}
	out := slices.Clone(projects)
	out[i] = fn(out[i])
	return out
}
