package analytics

import (
	"sort"

	"github.com/ofirka2/brand-manager/internal/models"
)

// Count pairs an enumerated value with how many tasks carry it
type Count[K comparable] struct {
	Key   K
	Count int
}

// PriorityBreakdown counts tasks per priority, every priority listed, most urgent first
func PriorityBreakdown(tasks []models.Task) []Count[models.Priority] {
	out := make([]Count[models.Priority], 0, 4)
	for _, p := range models.Priorities() {
		n := 0
		for _, t := range tasks {
			if t.Priority == p {
				n++
			}
		}
		out = append(out, Count[models.Priority]{Key: p, Count: n})
	}
	return out
}

// StatusBreakdown counts tasks per status in workflow order
func StatusBreakdown(tasks []models.Task) []Count[models.Status] {
	out := make([]Count[models.Status], 0, 4)
	for _, s := range models.Statuses() {
		n := 0
		for _, t := range tasks {
			if t.Status == s {
				n++
			}
		}
		out = append(out, Count[models.Status]{Key: s, Count: n})
	}
	return out
}

// CategoryBreakdown counts tasks per category in first-encountered order.
// Categories with no tasks are omitted.
func CategoryBreakdown(tasks []models.Task) []Count[models.Category] {
	var out []Count[models.Category]
	index := map[models.Category]int{}
	for _, t := range tasks {
		i, ok := index[t.Category]
		if !ok {
			i = len(out)
			index[t.Category] = i
			out = append(out, Count[models.Category]{Key: t.Category})
		}
		out[i].Count++
	}
	return out
}

// TopCategories returns the n most common categories, ties broken by first appearance.
// n <= 0 returns them all.
func TopCategories(tasks []models.Task, n int) []Count[models.Category] {
	out := CategoryBreakdown(tasks)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// TotalHours sums estimated and actual hours, treating missing values as zero
func TotalHours(tasks []models.Task) (estimated, actual float64) {
	for _, t := range tasks {
		if t.EstimatedHours != nil {
			estimated += *t.EstimatedHours
		}
		if t.ActualHours != nil {
			actual += *t.ActualHours
		}
	}
	return estimated, actual
}
