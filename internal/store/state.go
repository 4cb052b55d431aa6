package store

import "github.com/ofirka2/brand-manager/internal/models"

// View is the tab the UI is showing
type View string

const (
	ViewDashboard View = "dashboard"
	ViewBrands    View = "brands"
	ViewProjects  View = "projects"
	ViewTimeline  View = "timeline"
	ViewTemplates View = "templates"
	ViewSettings  View = "settings"
)

// Views returns every tab in display order
func Views() []View {
	return []View{ViewDashboard, ViewBrands, ViewProjects, ViewTimeline, ViewTemplates, ViewSettings}
}

// Slice names a persisted top-level part of State
type Slice string

const (
	SliceBrands        Slice = "brands"
	SliceProjects      Slice = "projects"
	SliceTemplates     Slice = "templates"
	SliceUserSettings  Slice = "userSettings"
	SliceNotifications Slice = "notifications"
)

// PersistedSlices returns every slice that is written to storage
func PersistedSlices() []Slice {
	return []Slice{SliceBrands, SliceProjects, SliceTemplates, SliceUserSettings, SliceNotifications}
}

// State is one immutable snapshot of everything the application knows.
// Reduce never modifies a State in place; it returns a new one.
type State struct {
	Brands        []models.Brand
	Projects      []models.Project
	Templates     []models.ProjectTemplate
	UserSettings  models.UserSettings
	Notifications models.NotificationSettings

	// Not persisted; reset on every start.
	Filters         models.FilterOptions
	SelectedProject string
	CurrentView     View
}

// Initial returns the defaults used when nothing has been saved
func Initial(timezone string) State {
	return State{
		Brands:        []models.Brand{},
		Projects:      []models.Project{},
		Templates:     []models.ProjectTemplate{},
		UserSettings:  models.UserSettings{Timezone: timezone},
		Notifications: models.DefaultNotificationSettings(),
		CurrentView:   ViewDashboard,
	}
}

// Brand looks up a brand by id
func (s State) Brand(id string) (models.Brand, bool) {
	for _, b := range s.Brands {
		if b.ID == id {
			return b, true
		}
	}
	return models.Brand{}, false
}

// Project looks up a project by id
func (s State) Project(id string) (models.Project, bool) {
	for _, p := range s.Projects {
		if p.ID == id {
			return p, true
		}
	}
	return models.Project{}, false
}

// Template looks up a template by id
func (s State) Template(id string) (models.ProjectTemplate, bool) {
	for _, t := range s.Templates {
		if t.ID == id {
			return t, true
		}
	}
	return models.ProjectTemplate{}, false
}

// sliceValue returns the persisted value for name
func (s State) sliceValue(name Slice) any {
	switch name {
	case SliceBrands:
		return s.Brands
	case SliceProjects:
		return s.Projects
	case SliceTemplates:
		return s.Templates
	case SliceUserSettings:
		return s.UserSettings
	case SliceNotifications:
		return s.Notifications
	}
	return nil
}
