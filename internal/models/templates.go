package models

import "time"

// TaskBlueprint is a task definition without identity or ownership.
// Templates hold these and stamp them into real tasks.
type TaskBlueprint struct {
	Subject        string   `json:"subject" yaml:"subject"`
	Description    string   `json:"description" yaml:"description"`
	Deadline       string   `json:"deadline" yaml:"deadline"`
	Contact        Contact  `json:"contact" yaml:"contact"`
	Priority       Priority `json:"priority" yaml:"priority"`
	Category       Category `json:"category" yaml:"category"`
	Status         Status   `json:"status" yaml:"status"`
	EstimatedHours *float64 `json:"estimatedHours,omitempty" yaml:"estimatedHours,omitempty"`
	ActualHours    *float64 `json:"actualHours,omitempty" yaml:"actualHours,omitempty"`
}

// ProjectTemplate is a reusable set of task blueprints
type ProjectTemplate struct {
	ID          string          `json:"id" yaml:"id"`
	Name        string          `json:"name" yaml:"name"`
	Description string          `json:"description" yaml:"description"`
	Tasks       []TaskBlueprint `json:"tasks" yaml:"tasks"`
	CreatedAt   string          `json:"createdAt" yaml:"createdAt"`
}

// BlueprintOf strips identity and ownership from a task
func BlueprintOf(t Task) TaskBlueprint {
	return TaskBlueprint{
		Subject:        t.Subject,
		Description:    t.Description,
		Deadline:       t.Deadline,
		Contact:        t.Contact,
		Priority:       t.Priority,
		Category:       t.Category,
		Status:         t.Status,
		EstimatedHours: copyHours(t.EstimatedHours),
		ActualHours:    copyHours(t.ActualHours),
	}
}

// NewTemplateFromProject captures a project's tasks as a template
func NewTemplateFromProject(name string, p Project, now time.Time) ProjectTemplate {
	blueprints := make([]TaskBlueprint, len(p.Tasks))
	for i, t := range p.Tasks {
		blueprints[i] = BlueprintOf(t)
	}
	return ProjectTemplate{
		ID:          NewID(),
		Name:        name,
		Description: p.Description,
		Tasks:       blueprints,
		CreatedAt:   Timestamp(now),
	}
}

// StampTemplate clones every blueprint into a fresh task owned by projectID.
// Each task gets a new id, fresh timestamps and an empty deadline.
func StampTemplate(tpl ProjectTemplate, projectID string, now time.Time) []Task {
	ts := Timestamp(now)
	tasks := make([]Task, len(tpl.Tasks))
	for i, bp := range tpl.Tasks {
		tasks[i] = Task{
			ID:             NewID(),
			ProjectID:      projectID,
			Subject:        bp.Subject,
			Description:    bp.Description,
			Deadline:       "",
			Contact:        bp.Contact,
			Priority:       bp.Priority,
			Category:       bp.Category,
			Status:         bp.Status,
			CreatedAt:      ts,
			UpdatedAt:      ts,
			EstimatedHours: copyHours(bp.EstimatedHours),
			ActualHours:    copyHours(bp.ActualHours),
		}
	}
	return tasks
}

// NewProjectFromTemplate creates a project pre-populated from tpl
func NewProjectFromTemplate(name, description, brandID string, tpl ProjectTemplate, now time.Time) Project {
	p := NewProject(name, brandID, now)
	p.Description = description
	p.Tasks = StampTemplate(tpl, p.ID, now)
	return p
}

func copyHours(h *float64) *float64 {
	if h == nil {
		return nil
	}
	v := *h
	return &v
}
