package analytics

import "github.com/ofirka2/brand-manager/internal/models"

// UnknownBrandLabel is shown for projects whose brand no longer exists
const UnknownBrandLabel = "Unknown Brand"

// BrandDisplay is how a brand is presented next to its projects and tasks
type BrandDisplay struct {
	Color string
	Label string
	Known bool
}

// ResolveBrandDisplay applies the fallback for missing brands in one place.
// A nil brand (dangling BrandID) gets the default color and "Unknown Brand".
func ResolveBrandDisplay(b *models.Brand) BrandDisplay {
	if b == nil {
		return BrandDisplay{Color: models.DefaultBrandColor, Label: UnknownBrandLabel}
	}
	color := b.PrimaryColor
	if color == "" {
		color = models.DefaultBrandColor
	}
	return BrandDisplay{Color: color, Label: b.Name, Known: true}
}
