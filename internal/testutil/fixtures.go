package testutil

import (
	"fmt"
	"time"

	"github.com/ofirka2/brand-manager/internal/models"
)

// Now is the fixed clock used across package tests: Monday 10 March 2025, 14:30 UTC
var Now = time.Date(2025, time.March, 10, 14, 30, 0, 0, time.UTC)

// Day returns Now's calendar date shifted by offset days, formatted as a deadline
func Day(offset int) string {
	return Now.AddDate(0, 0, offset).Format("2006-01-02")
}

// Brand returns a brand with a fixed id
func Brand(id, name string) models.Brand {
	b := models.NewBrand(name, Now)
	b.ID = id
	return b
}

// Project returns a project under brandID with n Not Started tasks due one week out
func Project(id, brandID string, n int) models.Project {
	p := models.NewProject("Project "+id, brandID, Now)
	p.ID = id
	for i := 0; i < n; i++ {
		p.Tasks = append(p.Tasks, Task(fmt.Sprintf("%s-t%d", id, i+1), id, Day(7)))
	}
	return p
}

// Task returns a Not Started task owned by projectID
func Task(id, projectID, deadline string) models.Task {
	t := models.NewTask(projectID, "Task "+id, Now)
	t.ID = id
	t.Deadline = deadline
	return t
}

// MemoryAdapter is an in-memory slice store that records every save
type MemoryAdapter struct {
	Slices  map[string]any
	Saves   []string
	FailOn  string // slice name whose Save returns an error
	Corrupt map[string]bool
}

// NewMemoryAdapter returns an empty adapter
func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{Slices: map[string]any{}, Corrupt: map[string]bool{}}
}

// Save implements store.Adapter
func (m *MemoryAdapter) Save(slice string, value any) error {
	m.Saves = append(m.Saves, slice)
	if slice == m.FailOn {
		return fmt.Errorf("save %s: disk full", slice)
	}
	m.Slices[slice] = value
	return nil
}

// Load implements store.Adapter
func (m *MemoryAdapter) Load(slice string, dst any) error {
	v, ok := m.Slices[slice]
	if !ok || m.Corrupt[slice] {
		return fmt.Errorf("slice %s not found", slice)
	}
	switch d := dst.(type) {
	case *[]models.Brand:
		*d = v.([]models.Brand)
	case *[]models.Project:
		*d = v.([]models.Project)
	case *[]models.ProjectTemplate:
		*d = v.([]models.ProjectTemplate)
	case *models.UserSettings:
		*d = v.(models.UserSettings)
	case *models.NotificationSettings:
		*d = v.(models.NotificationSettings)
	default:
		return fmt.Errorf("unsupported destination %T", dst)
	}
	return nil
}
