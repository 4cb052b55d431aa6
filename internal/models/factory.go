package models

import "time"

// DefaultBrandColor is used when a brand has no color or cannot be found
const DefaultBrandColor = "#3B82F6"

// BrandPalette returns the preset colors offered when creating a brand
func BrandPalette() []string {
	return []string{
		"#3B82F6", // blue
		"#10B981", // emerald
		"#F59E0B", // amber
		"#EF4444", // red
		"#8B5CF6", // violet
		"#06B6D4", // cyan
		"#84CC16", // lime
		"#F97316", // orange
	}
}

// NewBrand creates a brand with a fresh id and palette colors
func NewBrand(name string, now time.Time) Brand {
	palette := BrandPalette()
	ts := Timestamp(now)
	return Brand{
		ID:             NewID(),
		Name:           name,
		PrimaryColor:   palette[0],
		SecondaryColor: palette[1],
		AccentColor:    palette[2],
		CreatedAt:      ts,
		UpdatedAt:      ts,
	}
}

// NewProject creates an empty project under brandID
func NewProject(name, brandID string, now time.Time) Project {
	ts := Timestamp(now)
	return Project{
		ID:        NewID(),
		Name:      name,
		BrandID:   brandID,
		CreatedAt: ts,
		UpdatedAt: ts,
		Tasks:     []Task{},
	}
}

// NewTask creates a task owned by projectID with default classification
func NewTask(projectID, subject string, now time.Time) Task {
	ts := Timestamp(now)
	return Task{
		ID:        NewID(),
		ProjectID: projectID,
		Subject:   subject,
		Priority:  PriorityMedium,
		Category:  CategoryOther,
		Status:    StatusNotStarted,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
}
