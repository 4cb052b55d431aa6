package analytics

import (
	"math"

	"github.com/ofirka2/brand-manager/internal/models"
)

// percent returns round(100*part/total), or 0 when total is 0
func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(part) / float64(total)))
}

// CompletionRate is the share of tasks with status Completed, 0..100
func CompletionRate(tasks []models.Task) int {
	done := 0
	for _, t := range tasks {
		if t.Completed() {
			done++
		}
	}
	return percent(done, len(tasks))
}

// Progress is the completion rate of a project's tasks
func Progress(p models.Project) int {
	return CompletionRate(p.Tasks)
}

// AverageProgress is the rounded mean progress across projects
func AverageProgress(projects []models.Project) int {
	if len(projects) == 0 {
		return 0
	}
	sum := 0
	for _, p := range projects {
		sum += Progress(p)
	}
	return int(math.Round(float64(sum) / float64(len(projects))))
}
