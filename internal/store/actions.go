package store

import "github.com/ofirka2/brand-manager/internal/models"

// Action is a named state transition. The set is closed: only this package defines actions.
type Action interface {
	// touches lists the persisted slices the action may change
	touches() []Slice
}

type SetBrands struct{ Brands []models.Brand }
type SetProjects struct{ Projects []models.Project }
type SetTemplates struct{ Templates []models.ProjectTemplate }

type AddBrand struct{ Brand models.Brand }
type AddProject struct{ Project models.Project }
type AddTemplate struct{ Template models.ProjectTemplate }

// UpdateBrand replaces the brand with the same id. No-op if none matches.
type UpdateBrand struct{ Brand models.Brand }

// UpdateProject replaces the project with the same id. No-op if none matches.
type UpdateProject struct{ Project models.Project }

// UpdateTemplate replaces the template with the same id. No-op if none matches.
type UpdateTemplate struct{ Template models.ProjectTemplate }

// DeleteBrand removes the brand and every project that references it
type DeleteBrand struct{ ID string }

// DeleteProject removes the project and clears the selection if it pointed there
type DeleteProject struct{ ID string }

type DeleteTemplate struct{ ID string }

type AddTask struct {
	ProjectID string
	Task      models.Task
}

type UpdateTask struct {
	ProjectID string
	Task      models.Task
}

type DeleteTask struct {
	ProjectID string
	TaskID    string
}

type SetUserSettings struct{ Settings models.UserSettings }
type SetNotifications struct{ Settings models.NotificationSettings }
type SetFilters struct{ Filters models.FilterOptions }

// SetSelectedProject selects a project; an empty ID clears the selection
type SetSelectedProject struct{ ID string }

type SetCurrentView struct{ View View }

func (SetBrands) touches() []Slice      { return []Slice{SliceBrands} }
func (SetProjects) touches() []Slice    { return []Slice{SliceProjects} }
func (SetTemplates) touches() []Slice   { return []Slice{SliceTemplates} }
func (AddBrand) touches() []Slice       { return []Slice{SliceBrands} }
func (AddProject) touches() []Slice     { return []Slice{SliceProjects} }
func (AddTemplate) touches() []Slice    { return []Slice{SliceTemplates} }
func (UpdateBrand) touches() []Slice    { return []Slice{SliceBrands} }
func (UpdateProject) touches() []Slice  { return []Slice{SliceProjects} }
func (UpdateTemplate) touches() []Slice { return []Slice{SliceTemplates} }
func (DeleteBrand) touches() []Slice    { return []Slice{SliceBrands, SliceProjects} }
func (DeleteProject) touches() []Slice  { return []Slice{SliceProjects} }
func (DeleteTemplate) touches() []Slice { return []Slice{SliceTemplates} }
func (AddTask) touches() []Slice        { return []Slice{SliceProjects} }
func (UpdateTask) touches() []Slice     { return []Slice{SliceProjects} }
func (DeleteTask) touches() []Slice     { return []Slice{SliceProjects} }

func (SetUserSettings) touches() []Slice  { return []Slice{SliceUserSettings} }
func (SetNotifications) touches() []Slice { return []Slice{SliceNotifications} }

func (SetFilters) touches() []Slice         { return nil }
func (SetSelectedProject) touches() []Slice { return nil }
func (SetCurrentView) touches() []Slice     { return nil }
