package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Priority ranks how urgent a task is
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
	PriorityUrgent Priority = "Urgent"
)

// Priorities returns every priority, most urgent first
func Priorities() []Priority {
	return []Priority{PriorityUrgent, PriorityHigh, PriorityMedium, PriorityLow}
}

// Next cycles to the following priority (Low -> Medium -> High -> Urgent -> Low)
func (p Priority) Next() Priority {
	switch p {
	case PriorityLow:
		return PriorityMedium
	case PriorityMedium:
		return PriorityHigh
	case PriorityHigh:
		return PriorityUrgent
	default:
		return PriorityLow
	}
}

// Category groups tasks by kind of work
type Category string

const (
	CategoryDevelopment   Category = "Development"
	CategoryDesign        Category = "Design"
	CategoryMarketing     Category = "Marketing"
	CategoryResearch      Category = "Research"
	CategoryTesting       Category = "Testing"
	CategoryDocumentation Category = "Documentation"
	CategoryMeeting       Category = "Meeting"
	CategoryOther         Category = "Other"
)

// Categories returns every category in declaration order
func Categories() []Category {
	return []Category{
		CategoryDevelopment, CategoryDesign, CategoryMarketing, CategoryResearch,
		CategoryTesting, CategoryDocumentation, CategoryMeeting, CategoryOther,
	}
}

// Status is the workflow state of a task
type Status string

const (
	StatusNotStarted  Status = "Not Started"
	StatusInProgress  Status = "In Progress"
	StatusUnderReview Status = "Under Review"
	StatusCompleted   Status = "Completed"
)

// Statuses returns every status in workflow order
func Statuses() []Status {
	return []Status{StatusNotStarted, StatusInProgress, StatusUnderReview, StatusCompleted}
}

// Next cycles to the following workflow status, wrapping back to Not Started
func (s Status) Next() Status {
	switch s {
	case StatusNotStarted:
		return StatusInProgress
	case StatusInProgress:
		return StatusUnderReview
	case StatusUnderReview:
		return StatusCompleted
	default:
		return StatusNotStarted
	}
}

// Contact is the person responsible for a task
type Contact struct {
	Name  string `json:"name" yaml:"name"`
	Role  string `json:"role" yaml:"role"`
	Email string `json:"email" yaml:"email"`
	Phone string `json:"phone,omitempty" yaml:"phone,omitempty"`
}

// Brand is a client or product line that groups projects
type Brand struct {
	ID             string  `json:"id" yaml:"id"`
	Name           string  `json:"name" yaml:"name"`
	Description    string  `json:"description" yaml:"description"`
	PrimaryColor   string  `json:"primaryColor" yaml:"primaryColor"`
	SecondaryColor string  `json:"secondaryColor" yaml:"secondaryColor"`
	AccentColor    string  `json:"accentColor" yaml:"accentColor"`
	Budget         float64 `json:"budget" yaml:"budget"`
	SalesGoal      float64 `json:"salesGoal" yaml:"salesGoal"`
	CreatedAt      string  `json:"createdAt" yaml:"createdAt"`
	UpdatedAt      string  `json:"updatedAt" yaml:"updatedAt"`
}

var (
	ErrNegativeBudget    = errors.New("budget must not be negative")
	ErrNegativeSalesGoal = errors.New("sales goal must not be negative")
	ErrEmptyName         = errors.New("name is required")
)

// Validate checks the fields a brand form must get right before dispatching
func (b Brand) Validate() error {
	if b.Name == "" {
		return ErrEmptyName
	}
	if b.Budget < 0 {
		return ErrNegativeBudget
	}
	if b.SalesGoal < 0 {
		return ErrNegativeSalesGoal
	}
	return nil
}

// Project is a body of work under one brand. It owns its tasks exclusively.
type Project struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	BrandID     string `json:"brandId" yaml:"brandId"`
	CreatedAt   string `json:"createdAt" yaml:"createdAt"`
	UpdatedAt   string `json:"updatedAt" yaml:"updatedAt"`
	Tasks       []Task `json:"tasks" yaml:"tasks"`
}

// Task is a single unit of work inside a project
type Task struct {
	ID             string   `json:"id" yaml:"id"`
	ProjectID      string   `json:"projectId" yaml:"projectId"`
	Subject        string   `json:"subject" yaml:"subject"`
	Description    string   `json:"description" yaml:"description"`
	Deadline       string   `json:"deadline" yaml:"deadline"` // empty for tasks stamped from a template
	Contact        Contact  `json:"contact" yaml:"contact"`
	Priority       Priority `json:"priority" yaml:"priority"`
	Category       Category `json:"category" yaml:"category"`
	Status         Status   `json:"status" yaml:"status"`
	CreatedAt      string   `json:"createdAt" yaml:"createdAt"`
	UpdatedAt      string   `json:"updatedAt" yaml:"updatedAt"`
	EstimatedHours *float64 `json:"estimatedHours,omitempty" yaml:"estimatedHours,omitempty"`
	ActualHours    *float64 `json:"actualHours,omitempty" yaml:"actualHours,omitempty"`
}

// Completed reports whether the task is done
func (t Task) Completed() bool {
	return t.Status == StatusCompleted
}

// UserSettings holds the profile shown in the settings tab
type UserSettings struct {
	Name     string `json:"name" yaml:"name"`
	Email    string `json:"email" yaml:"email"`
	Timezone string `json:"timezone" yaml:"timezone"` // IANA zone identifier
}

// NotificationTriggers toggles individual deadline thresholds
type NotificationTriggers struct {
	SevenDays bool `json:"sevenDays" yaml:"sevenDays"`
	ThreeDays bool `json:"threeDays" yaml:"threeDays"`
	OneDay    bool `json:"oneDay" yaml:"oneDay"`
	Overdue   bool `json:"overdue" yaml:"overdue"`
}

// NotificationSettings controls deadline reminders
type NotificationSettings struct {
	Enabled    bool                 `json:"enabled" yaml:"enabled"`
	Triggers   NotificationTriggers `json:"triggers" yaml:"triggers"`
	Escalation bool                 `json:"escalation" yaml:"escalation"`
}

// DefaultNotificationSettings has every trigger switched on
func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		Enabled: true,
		Triggers: NotificationTriggers{
			SevenDays: true,
			ThreeDays: true,
			OneDay:    true,
			Overdue:   true,
		},
		Escalation: true,
	}
}

// DateRange is an inclusive deadline window
type DateRange struct {
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
}

// FilterOptions narrows the dashboard task list. An empty set means no restriction.
type FilterOptions struct {
	Priority  []string   `json:"priority" yaml:"priority"`
	Status    []string   `json:"status" yaml:"status"`
	Category  []string   `json:"category" yaml:"category"`
	Brand     []string   `json:"brand" yaml:"brand"` // brand names, not ids
	DateRange *DateRange `json:"dateRange" yaml:"dateRange"`
}

// Active reports whether any restriction is set
func (f FilterOptions) Active() bool {
	return len(f.Priority) > 0 || len(f.Status) > 0 || len(f.Category) > 0 ||
		len(f.Brand) > 0 || f.DateRange != nil
}

// NewID returns a fresh identifier. Ids are assigned once and never reassigned.
func NewID() string {
	return uuid.New().String()
}

// Timestamp formats t the way records are persisted
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
