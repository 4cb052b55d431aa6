package views

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ofirka2/brand-manager/internal/analytics"
	"github.com/ofirka2/brand-manager/internal/models"
	"github.com/ofirka2/brand-manager/internal/store"
	"github.com/ofirka2/brand-manager/internal/ui/keys"
	"github.com/ofirka2/brand-manager/internal/ui/styles"
)

const dashboardRows = 8

// DashboardView shows headline numbers, reminders and the filtered task list
type DashboardView struct {
	store  *store.Store
	styles *styles.Styles
	keys   keys.KeyMap
	width  int
	height int
}

// NewDashboardView creates the dashboard tab
func NewDashboardView(st *store.Store) *DashboardView {
	return &DashboardView{store: st, styles: styles.NewStyles(), keys: keys.DefaultKeyMap()}
}

func (v *DashboardView) Init() tea.Cmd { return nil }

// stepFilter moves a single-value filter to the next option. An empty filter
// becomes the first option and the last option becomes empty again.
func stepFilter(current []string, options []string) []string {
	i := -1
	if len(current) == 1 {
		i = slices.Index(options, current[0])
	}
	if len(options) == 0 || i == len(options)-1 {
		return nil
	}
	return []string{options[i+1]}
}

func brandNames(brands []models.Brand) []string {
	names := make([]string, len(brands))
	for i, b := range brands {
		names[i] = b.Name
	}
	return names
}

func (v *DashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height

	case tea.KeyMsg:
		state := v.store.State()
		switch {
		case key.Matches(msg, v.keys.Priority):
			f := state.Filters
			f.Priority = stepFilter(f.Priority, enumLabels(models.Priorities()))
			v.store.Dispatch(store.SetFilters{Filters: f})
		case key.Matches(msg, v.keys.Brand):
			f := state.Filters
			f.Brand = stepFilter(f.Brand, brandNames(state.Brands))
			v.store.Dispatch(store.SetFilters{Filters: f})
		case key.Matches(msg, v.keys.OpenOnly):
			f := state.Filters
			if f.Status == nil {
				f.Status = []string{string(models.StatusNotStarted), string(models.StatusInProgress), string(models.StatusUnderReview)}
			} else {
				f.Status = nil
			}
			v.store.Dispatch(store.SetFilters{Filters: f})
		case key.Matches(msg, v.keys.Clear):
			v.store.Dispatch(store.SetFilters{Filters: models.FilterOptions{}})
		}
	}
	return v, nil
}

func (v *DashboardView) View() string {
	s := v.styles
	state := v.store.State()
	t := now(v.store)
	stats := analytics.Dashboard(state, t)

	card := func(label string, value string, color lipgloss.Color) string {
		return s.Card.Render(s.TitleMuted.Render(label) + "\n" + lipgloss.NewStyle().Foreground(color).Bold(true).Render(value))
	}
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Projects", fmt.Sprint(stats.TotalProjects), styles.Current.Primary),
		card("Tasks", fmt.Sprint(stats.TotalTasks), styles.Current.Primary),
		card("Overdue", fmt.Sprint(stats.Overdue), styles.Current.Error),
		card("Due 7d", fmt.Sprint(stats.DueIn7), styles.Current.Warning),
		card("Due 30d", fmt.Sprint(stats.DueIn30), styles.Current.Info),
		card("Done", fmt.Sprintf("%d%%", stats.CompletionRate), styles.Current.Success),
	)

	lines := []string{s.Title.Render("Dashboard"), "", cards, ""}

	if sums := analytics.BrandSummaries(state); len(sums) > 0 {
		var parts []string
		for _, sum := range sums {
			parts = append(parts, fmt.Sprintf("%s %s %d%%", styles.Swatch(sum.Brand.PrimaryColor), sum.Brand.Name, sum.CompletionRate))
		}
		lines = append(lines, strings.Join(parts, "   "), "")
	}

	rows := analytics.AllTasks(state)
	if reminders := analytics.Reminders(rows, state.Notifications, t); len(reminders) > 0 {
		lines = append(lines, s.HelpKey.Render("Reminders"))
		for i, r := range reminders {
			if i == 5 {
				lines = append(lines, s.TitleMuted.Render(fmt.Sprintf("  … %d more", len(reminders)-5)))
				break
			}
			label := fmt.Sprintf("  %s • %s (%s)", r.Row.Task.Subject, r.Row.ProjectName, r.Kind)
			if r.Kind == analytics.ReminderOverdue {
				label = s.Overdue.Render(label)
				if r.Escalated {
					label += s.Overdue.Render(" !")
				}
			}
			lines = append(lines, label)
		}
		lines = append(lines, "")
	}

	filtered := analytics.ApplyFilters(rows, state.Filters, t.Location())
	header := "Tasks"
	if state.Filters.Active() {
		header = "Tasks " + s.TitleMuted.Render(describeFilters(state.Filters))
	}
	lines = append(lines, s.HelpKey.Render(header))
	if len(filtered) == 0 {
		lines = append(lines, s.TitleMuted.Render("  nothing to show"))
	}
	for i, r := range filtered {
		if i == dashboardRows {
			lines = append(lines, s.TitleMuted.Render(fmt.Sprintf("  … %d more", len(filtered)-dashboardRows)))
			break
		}
		line := fmt.Sprintf("  %s %-28s %-16s %s", styles.Swatch(r.Brand.Color), r.Task.Subject, r.Task.Status, analytics.FormatDate(r.Task.Deadline))
		if !r.Task.Completed() && analytics.IsOverdue(r.Task.Deadline, t) {
			line = s.Overdue.Render(line)
		}
		lines = append(lines, line)
	}

	lines = append(lines, helpLine(s, "p", "priority", "b", "brand", "o", "open only", "c", "clear", "tab", "next tab", "q", "quit"))
	return styles.CenterView(lipgloss.JoinVertical(lipgloss.Left, lines...), v.width, v.height)
}

func describeFilters(f models.FilterOptions) string {
	var parts []string
	if len(f.Priority) > 0 {
		parts = append(parts, "priority: "+strings.Join(f.Priority, ","))
	}
	if len(f.Status) > 0 {
		parts = append(parts, fmt.Sprintf("%d statuses", len(f.Status)))
	}
	if len(f.Category) > 0 {
		parts = append(parts, "category: "+strings.Join(f.Category, ","))
	}
	if len(f.Brand) > 0 {
		parts = append(parts, "brand: "+strings.Join(f.Brand, ","))
	}
	if f.DateRange != nil {
		parts = append(parts, f.DateRange.Start+"…"+f.DateRange.End)
	}
	return "(" + strings.Join(parts, " • ") + ")"
}
