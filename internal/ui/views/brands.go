package views

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ofirka2/brand-manager/internal/analytics"
	"github.com/ofirka2/brand-manager/internal/models"
	"github.com/ofirka2/brand-manager/internal/store"
	"github.com/ofirka2/brand-manager/internal/ui/keys"
	"github.com/ofirka2/brand-manager/internal/ui/styles"
)

// BrandListView lists brands with their rollups and opens a detail report
type BrandListView struct {
	store  *store.Store
	styles *styles.Styles
	keys   keys.KeyMap
	width  int
	height int

	summaries []analytics.BrandSummary
	cursor    int

	editing   *form
	editingID string // empty while creating

	viewing bool

	confirmingDelete bool
	deleteTarget     analytics.BrandSummary
}

// NewBrandListView creates the brands tab
func NewBrandListView(st *store.Store) *BrandListView {
	return &BrandListView{store: st, styles: styles.NewStyles(), keys: keys.DefaultKeyMap()}
}

func (v *BrandListView) Init() tea.Cmd {
	v.reload()
	return nil
}

// Capturing reports whether keys belong to a form or popup
func (v *BrandListView) Capturing() bool {
	return v.editing != nil || v.confirmingDelete || v.viewing
}

func (v *BrandListView) reload() {
	v.summaries = analytics.BrandSummaries(v.store.State())
	v.cursor = clamp(v.cursor, 0, max(len(v.summaries)-1, 0))
}

func (v *BrandListView) selected() (analytics.BrandSummary, bool) {
	if len(v.summaries) == 0 {
		return analytics.BrandSummary{}, false
	}
	return v.summaries[v.cursor], true
}

func (v *BrandListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case tea.KeyMsg:
		if v.confirmingDelete {
			if yes, decided := confirmKey(msg); decided {
				if yes {
					v.store.Dispatch(store.DeleteBrand{ID: v.deleteTarget.Brand.ID})
					v.reload()
				}
				v.confirmingDelete = false
			}
			return v, nil
		}
		if v.editing != nil {
			submitted, cancelled, cmd := v.editing.update(msg, v.keys)
			switch {
			case cancelled:
				v.editing = nil
			case submitted:
				v.save()
			}
			return v, cmd
		}
		if v.viewing {
			if key.Matches(msg, v.keys.Back) || key.Matches(msg, v.keys.Enter) {
				v.viewing = false
			}
			return v, nil
		}

		switch {
		case key.Matches(msg, v.keys.Up):
			v.cursor = max(v.cursor-1, 0)
		case key.Matches(msg, v.keys.Down):
			v.cursor = min(v.cursor+1, max(len(v.summaries)-1, 0))
		case key.Matches(msg, v.keys.Enter):
			_, v.viewing = v.selected()
		case key.Matches(msg, v.keys.New):
			v.startEdit(models.Brand{}, "")
			return v, textinput.Blink
		case key.Matches(msg, v.keys.Edit):
			if sum, ok := v.selected(); ok {
				v.startEdit(sum.Brand, sum.Brand.ID)
				return v, textinput.Blink
			}
		case key.Matches(msg, v.keys.Delete):
			if sum, ok := v.selected(); ok {
				v.confirmingDelete = true
				v.deleteTarget = sum
			}
		}
	}
	return v, nil
}

func money(f float64) string {
	if f == 0 {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func (v *BrandListView) startEdit(b models.Brand, id string) {
	title, submit := "New Brand", "Create"
	if id != "" {
		title, submit = "Edit Brand", "Save"
	}
	if b.PrimaryColor == "" {
		palette := models.BrandPalette()
		b.PrimaryColor = palette[len(v.summaries)%len(palette)]
	}
	colors := models.BrandPalette()
	if !slices.Contains(colors, b.PrimaryColor) {
		colors = append([]string{b.PrimaryColor}, colors...)
	}
	v.editingID = id
	v.editing = newForm(title, submit,
		textField("Name", "Brand name", b.Name, 100),
		textField("Description", "Description (optional)", b.Description, 200),
		choiceField("Color", colors, indexOf(colors, b.PrimaryColor)),
		textField("Budget", "0", money(b.Budget), 15),
		textField("Sales goal", "0", money(b.SalesGoal), 15),
	)
}

func parseAmount(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func (v *BrandListView) save() {
	f := v.editing
	budget, err := parseAmount(f.value(3))
	if err != nil {
		f.err = "budget must be a number"
		return
	}
	goal, err := parseAmount(f.value(4))
	if err != nil {
		f.err = "sales goal must be a number"
		return
	}

	t := now(v.store)
	var b models.Brand
	if v.editingID == "" {
		b = models.NewBrand(f.value(0), t)
	} else {
		existing, ok := v.store.State().Brand(v.editingID)
		if !ok {
			v.editing = nil
			return
		}
		b = existing
		b.Name = f.value(0)
		b.UpdatedAt = models.Timestamp(t)
	}
	b.Description = f.value(1)
	b.PrimaryColor = f.value(2)
	b.Budget = budget
	b.SalesGoal = goal

	if err := b.Validate(); err != nil {
		f.err = err.Error()
		return
	}

	if v.editingID == "" {
		v.store.Dispatch(store.AddBrand{Brand: b})
	} else {
		v.store.Dispatch(store.UpdateBrand{Brand: b})
	}
	v.editing = nil
	v.reload()
}

func (v *BrandListView) View() string {
	s := v.styles
	if v.confirmingDelete {
		return renderConfirm(s, v.width, v.height, "Delete Brand?",
			fmt.Sprintf("Are you sure you want to delete %q?", v.deleteTarget.Brand.Name),
			fmt.Sprintf("Its %d project(s) and %d task(s) will be deleted too.", v.deleteTarget.Projects, v.deleteTarget.Tasks),
		)
	}
	if v.editing != nil {
		return v.editing.view(s, v.width, v.height)
	}
	if v.viewing {
		return v.renderDetail()
	}

	if len(v.summaries) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Center,
			s.Title.Render("No Brands"),
			"",
			s.TitleMuted.Render("Press 'n' to create your first brand"),
		)
		return place(content, v.width, v.height)
	}

	width := max(styles.ContentWidth(v.width)-4, 20)
	lines := []string{s.Title.Render("Brands"), ""}
	for i, sum := range v.summaries {
		line := fmt.Sprintf("%s %-24s %2d projects  %3d tasks  %3d%%",
			styles.Swatch(sum.Brand.PrimaryColor), sum.Brand.Name, sum.Projects, sum.Tasks, sum.CompletionRate)
		style := s.ListItem
		if i == v.cursor {
			style = s.ListSelected
		}
		lines = append(lines, style.Width(width).Render(line))
	}
	lines = append(lines, helpLine(s, "↵", "details", "n", "new", "e", "edit", "d", "del", "tab", "next tab"))
	return styles.CenterView(lipgloss.JoinVertical(lipgloss.Left, lines...), v.width, v.height)
}

func (v *BrandListView) renderDetail() string {
	s := v.styles
	sum, _ := v.selected()
	r, ok := analytics.BrandDetail(v.store.State(), sum.Brand.ID, now(v.store))
	if !ok {
		return ""
	}

	card := func(label string, value any) string {
		return s.Card.Render(s.TitleMuted.Render(label) + "\n" + s.Title.Render(fmt.Sprint(value)))
	}
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Projects", len(r.Projects)),
		card("Tasks", len(r.AllTasks)),
		card("Completed", fmt.Sprintf("%d%%", r.CompletionRate)),
		card("Avg progress", fmt.Sprintf("%d%%", r.AverageProgress)),
		card("Overdue", len(r.Overdue)),
	)

	var prio []string
	for _, c := range r.Priorities {
		prio = append(prio, lipgloss.NewStyle().Foreground(styles.PriorityColor(c.Key)).Render(fmt.Sprintf("%s %d", c.Key, c.Count)))
	}
	var cats []string
	for _, c := range r.Categories {
		cats = append(cats, fmt.Sprintf("%s %d", c.Key, c.Count))
	}
	var recent []string
	for _, t := range r.Recent {
		recent = append(recent, fmt.Sprintf("  %s  %s", t.Subject, s.TitleMuted.Render(string(t.Status))))
	}

	lines := []string{
		styles.Swatch(r.Brand.PrimaryColor) + " " + s.Title.Render(r.Brand.Name),
		s.TitleMuted.Render(r.Brand.Description),
		"",
		cards,
		"",
		fmt.Sprintf("Budget %s • Sales goal %s • Hours %.1f est / %.1f actual",
			money(r.Brand.Budget), money(r.Brand.SalesGoal), r.EstimatedHours, r.ActualHours),
		fmt.Sprintf("In progress %d • Due this week %d", len(r.InProgress), len(r.Upcoming)),
		"",
		s.HelpKey.Render("Priorities ") + strings.Join(prio, "  "),
		s.HelpKey.Render("Categories ") + strings.Join(cats, "  "),
		"",
		s.HelpKey.Render("Recently updated"),
	}
	lines = append(lines, recent...)
	lines = append(lines, helpLine(s, "esc", "back"))
	return styles.CenterView(lipgloss.JoinVertical(lipgloss.Left, lines...), v.width, v.height)
}
