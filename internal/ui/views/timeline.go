package views

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ofirka2/brand-manager/internal/analytics"
	"github.com/ofirka2/brand-manager/internal/store"
	"github.com/ofirka2/brand-manager/internal/ui/keys"
	"github.com/ofirka2/brand-manager/internal/ui/styles"
)

const labelWidth = 24

// BarColumns converts a bar's percentage geometry to terminal columns on a
// track of the given width. Every bar gets at least one column and never
// runs past the end of the track.
func BarColumns(position, width float64, track int) (start, length int) {
	if track <= 0 {
		return 0, 0
	}
	start = clamp(int(math.Floor(position/100*float64(track))), 0, track-1)
	length = max(int(math.Round(width/100*float64(track))), 1)
	if start+length > track {
		length = track - start
	}
	return start, length
}

// TimelineView draws every dated task as a Gantt bar
type TimelineView struct {
	store  *store.Store
	styles *styles.Styles
	keys   keys.KeyMap
	width  int
	height int

	filter analytics.GanttFilter
	scroll int
}

// NewTimelineView creates the timeline tab
func NewTimelineView(st *store.Store) *TimelineView {
	return &TimelineView{store: st, styles: styles.NewStyles(), keys: keys.DefaultKeyMap()}
}

func (v *TimelineView) Init() tea.Cmd { return nil }

func (v *TimelineView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.clampScroll()

	case tea.KeyMsg:
		state := v.store.State()
		switch {
		case key.Matches(msg, v.keys.Brand):
			next := stepFilter(nonEmpty(v.filter.BrandName), brandNames(state.Brands))
			v.filter.BrandName = first(next)
			v.scroll = 0
		case key.Matches(msg, v.keys.Project):
			ids := make([]string, len(state.Projects))
			for i, p := range state.Projects {
				ids[i] = p.ID
			}
			v.filter.ProjectID = first(stepFilter(nonEmpty(v.filter.ProjectID), ids))
			v.scroll = 0
		case key.Matches(msg, v.keys.Clear):
			v.filter = analytics.GanttFilter{}
			v.scroll = 0
		case key.Matches(msg, v.keys.Up):
			v.scroll = max(v.scroll-1, 0)
		case key.Matches(msg, v.keys.Down):
			v.scroll++
		}
		v.clampScroll()
	}
	return v, nil
}

// visibleRows is how many bars fit on screen
func (v *TimelineView) visibleRows() int {
	return max(v.height-10, 3)
}

// maxScroll is the furthest the bar list can scroll for the current data
func (v *TimelineView) maxScroll(bars int) int {
	return max(bars-v.visibleRows(), 0)
}

func (v *TimelineView) clampScroll() {
	tl := analytics.Layout(v.filter.Apply(analytics.AllTasks(v.store.State())), now(v.store))
	v.scroll = clamp(v.scroll, 0, v.maxScroll(len(tl.Bars)))
}

func nonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	return []string{s}
}

func first(s []string) string {
	if len(s) == 0 {
		return ""
	}
	return s[0]
}

func (v *TimelineView) View() string {
	s := v.styles
	state := v.store.State()
	t := now(v.store)

	tl := analytics.Layout(v.filter.Apply(analytics.AllTasks(state)), t)

	title := s.Title.Render("Timeline")
	var scope []string
	if v.filter.BrandName != "" {
		scope = append(scope, "brand: "+v.filter.BrandName)
	}
	if p, ok := state.Project(v.filter.ProjectID); ok {
		scope = append(scope, "project: "+p.Name)
	}
	if len(scope) > 0 {
		title += " " + s.TitleMuted.Render("("+strings.Join(scope, " • ")+")")
	}

	help := helpLine(s, "b", "brand", "p", "project", "c", "clear", "↑/↓", "scroll")
	if tl.Empty() {
		return styles.CenterView(lipgloss.JoinVertical(lipgloss.Left,
			title, "", s.TitleMuted.Render("No tasks with deadlines to show."), help), v.width, v.height)
	}

	track := max(styles.ContentWidth(v.width)-labelWidth-4, 10)
	lines := []string{title, "", strings.Repeat(" ", labelWidth) + v.monthRuler(tl, track)}

	// the data may have shrunk since the last key press
	start := min(v.scroll, v.maxScroll(len(tl.Bars)))
	end := min(start+v.visibleRows(), len(tl.Bars))
	for _, bar := range tl.Bars[start:end] {
		lines = append(lines, v.renderBar(bar, track))
	}
	lines = append(lines, "", s.TitleMuted.Render(fmt.Sprintf("%s – %s • %d tasks",
		tl.Start.Format("Jan 2, 2006"), tl.End.Format("Jan 2, 2006"), len(tl.Bars))), help)

	return styles.CenterView(lipgloss.JoinVertical(lipgloss.Left, lines...), v.width, v.height)
}

// monthRuler marks where each month starts along the track
func (v *TimelineView) monthRuler(tl analytics.Timeline, track int) string {
	ruler := []rune(strings.Repeat(" ", track))
	for _, m := range tl.Months {
		offset := m.Date.Sub(tl.Start).Hours() / 24
		col, _ := BarColumns(offset/float64(tl.TotalDays)*100, 0, track)
		label := []rune("│" + m.Date.Format("Jan"))
		for i, r := range label {
			if col+i < track {
				ruler[col+i] = r
			}
		}
	}
	return v.styles.TitleMuted.Render(string(ruler))
}

func (v *TimelineView) renderBar(bar analytics.Bar, track int) string {
	label := bar.Row.Task.Subject
	if len([]rune(label)) > labelWidth-2 {
		label = string([]rune(label)[:labelWidth-3]) + "…"
	}
	label = lipgloss.NewStyle().Width(labelWidth).Render(label)

	color := lipgloss.Color(bar.Row.Brand.Color)
	switch {
	case bar.Overdue:
		color = styles.Current.Error
	case bar.Completed:
		color = styles.Current.Success
	}

	start, length := BarColumns(bar.Position, bar.Width, track)
	fill := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", length))
	rest := strings.Repeat(" ", max(track-start-length, 0))
	return label + strings.Repeat(" ", start) + fill + rest
}
