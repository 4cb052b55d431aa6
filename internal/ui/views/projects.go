package views

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ofirka2/brand-manager/internal/analytics"
	"github.com/ofirka2/brand-manager/internal/models"
	"github.com/ofirka2/brand-manager/internal/store"
	"github.com/ofirka2/brand-manager/internal/ui/keys"
	"github.com/ofirka2/brand-manager/internal/ui/styles"
)

type projectItem struct {
	project models.Project
	brand   analytics.BrandDisplay
	stats   analytics.ProjectStats
}

func (i projectItem) Title() string { return i.project.Name }
func (i projectItem) Description() string {
	desc := fmt.Sprintf("%s • %d%% • %d/%d done", i.brand.Label, i.stats.Progress, i.stats.Completed, len(i.project.Tasks))
	if i.stats.Overdue > 0 {
		desc += fmt.Sprintf(" • %d overdue", i.stats.Overdue)
	}
	return desc
}
func (i projectItem) FilterValue() string { return i.project.Name }

type projectDelegate struct {
	styles *styles.Styles
	width  int
}

func (d projectDelegate) Height() int                               { return 2 }
func (d projectDelegate) Spacing() int                              { return 1 }
func (d projectDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d projectDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	p, ok := item.(projectItem)
	if !ok {
		return
	}

	selected := index == m.Index()
	width := max(d.width-4, 20)

	var titleStyle, descStyle lipgloss.Style
	if selected {
		titleStyle = d.styles.ListSelected.Width(width)
		descStyle = d.styles.ListSelected.Foreground(styles.Current.ForegroundDim).Width(width)
	} else {
		titleStyle = d.styles.ListItem.Width(width)
		descStyle = d.styles.ListItem.Foreground(styles.Current.ForegroundDim).Width(width)
	}

	title := titleStyle.Render(styles.Swatch(p.brand.Color) + " " + p.Title())
	desc := descStyle.Render(p.Description())

	fmt.Fprintf(w, "%s\n%s", title, desc)
}

// SelectedProject asks the app to open a project's tasks
type SelectedProject struct {
	ID string
}

// ProjectListView lists every project with its brand and progress
type ProjectListView struct {
	store    *store.Store
	list     list.Model
	delegate *projectDelegate
	styles   *styles.Styles
	keys     keys.KeyMap
	width    int
	height   int

	creating *form
	brandIDs []string // parallel to the brand choice options
	tplIDs   []string // parallel to the template choice options, "" for none

	confirmingDelete bool
	deleteTargetID   string
	deleteTargetName string

	showHelpPopup bool
}

// NewProjectListView creates the project list
func NewProjectListView(st *store.Store) *ProjectListView {
	s := styles.NewStyles()

	// Setup custom delegate
	delegate := &projectDelegate{styles: s, width: 80}

	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "Projects"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = s.Title
	l.SetShowHelp(false)

	return &ProjectListView{
		store:    st,
		list:     l,
		delegate: delegate,
		styles:   s,
		keys:     keys.DefaultKeyMap(),
	}
}

// Init loads the list from the store
func (v *ProjectListView) Init() tea.Cmd {
	v.reload()
	return nil
}

// Capturing reports whether keys belong to a form or popup
func (v *ProjectListView) Capturing() bool {
	return v.creating != nil || v.confirmingDelete || v.showHelpPopup || v.list.SettingFilter()
}

func (v *ProjectListView) reload() {
	state := v.store.State()
	t := now(v.store)
	items := make([]list.Item, len(state.Projects))
	for i, p := range state.Projects {
		b, ok := state.Brand(p.BrandID)
		var bp *models.Brand
		if ok {
			bp = &b
		}
		items[i] = projectItem{
			project: p,
			brand:   analytics.ResolveBrandDisplay(bp),
			stats:   analytics.ProjectSummary(p, t),
		}
	}
	v.list.SetItems(items)
}

func (v *ProjectListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		// Use content width (capped at MaxWidth) for internal layout
		contentWidth := styles.ContentWidth(msg.Width)
		v.delegate.width = contentWidth
		v.list.SetSize(contentWidth-4, msg.Height-6)
		return v, nil

	case tea.KeyMsg:
		// Handle help popup first - any key closes it
		if v.showHelpPopup {
			v.showHelpPopup = false
			return v, nil
		}

		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}

		if v.creating != nil {
			return v.updateCreating(msg)
		}

		if v.list.SettingFilter() {
			break
		}

		switch {
		case key.Matches(msg, v.keys.New):
			v.startCreate()
			return v, textinput.Blink
		case key.Matches(msg, v.keys.Help):
			v.showHelpPopup = true
			return v, nil
		case key.Matches(msg, v.keys.Enter):
			if item, ok := v.list.SelectedItem().(projectItem); ok {
				return v, func() tea.Msg {
					return SelectedProject{ID: item.project.ID}
				}
			}
		case key.Matches(msg, v.keys.Delete):
			if item, ok := v.list.SelectedItem().(projectItem); ok {
				v.confirmingDelete = true
				v.deleteTargetID = item.project.ID
				v.deleteTargetName = item.project.Name
				return v, nil
			}
		}
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

func (v *ProjectListView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	yes, decided := confirmKey(msg)
	if !decided {
		return v, nil
	}
	if yes {
		v.store.Dispatch(store.DeleteProject{ID: v.deleteTargetID})
		v.reload()
	}
	v.confirmingDelete = false
	return v, nil
}

func (v *ProjectListView) startCreate() {
	state := v.store.State()

	brandNames := make([]string, len(state.Brands))
	v.brandIDs = make([]string, len(state.Brands))
	for i, b := range state.Brands {
		brandNames[i] = b.Name
		v.brandIDs[i] = b.ID
	}

	tplNames := []string{"None"}
	v.tplIDs = []string{""}
	for _, t := range state.Templates {
		tplNames = append(tplNames, t.Name)
		v.tplIDs = append(v.tplIDs, t.ID)
	}

	v.creating = newForm("New Project", "Create",
		textField("Name", "Project name", "", 100),
		textField("Description", "Description (optional)", "", 200),
		choiceField("Brand", brandNames, 0),
		choiceField("Template", tplNames, 0),
	)
}

func (v *ProjectListView) updateCreating(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	before := v.creating.choice(3)
	submitted, cancelled, cmd := v.creating.update(msg, v.keys)
	if after := v.creating.choice(3); after != before {
		v.prefillFromTemplate(v.tplIDs[after])
	}
	switch {
	case cancelled:
		v.creating = nil
		return v, nil
	case submitted:
		return v, v.create()
	}
	return v, cmd
}

// prefillFromTemplate copies a picked template's name and description into
// whichever of those fields is still empty
func (v *ProjectListView) prefillFromTemplate(tplID string) {
	tpl, ok := v.store.State().Template(tplID)
	if !ok {
		return
	}
	v.creating.fillEmpty(0, tpl.Name)
	v.creating.fillEmpty(1, tpl.Description)
}

func (v *ProjectListView) create() tea.Cmd {
	f := v.creating
	name := f.value(0)
	if name == "" {
		f.err = models.ErrEmptyName.Error()
		return nil
	}
	if len(v.brandIDs) == 0 {
		f.err = "create a brand first"
		return nil
	}
	brandID := v.brandIDs[f.choice(2)]
	t := now(v.store)

	var project models.Project
	if tplID := v.tplIDs[f.choice(3)]; tplID != "" {
		tpl, _ := v.store.State().Template(tplID)
		project = models.NewProjectFromTemplate(name, f.value(1), brandID, tpl, t)
	} else {
		project = models.NewProject(name, brandID, t)
		project.Description = f.value(1)
	}

	v.store.Dispatch(store.AddProject{Project: project})
	v.creating = nil
	v.reload()
	return func() tea.Msg { return SelectedProject{ID: project.ID} }
}

// View renders the view
func (v *ProjectListView) View() string {
	if v.showHelpPopup {
		return v.renderHelpPopup()
	}

	if v.confirmingDelete {
		return renderConfirm(v.styles, v.width, v.height, "Delete Project?",
			fmt.Sprintf("Are you sure you want to delete %q?", v.deleteTargetName),
			"This will also delete all tasks in this project.",
		)
	}

	if v.creating != nil {
		return v.creating.view(v.styles, v.width, v.height)
	}

	if len(v.list.Items()) == 0 {
		return v.renderEmpty()
	}

	content := v.list.View() + "\n" + v.renderHelp()
	return styles.CenterView(content, v.width, v.height)
}

func (v *ProjectListView) renderEmpty() string {
	s := v.styles
	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Render("No Projects"),
		"",
		s.TitleMuted.Render("Press 'n' to create your first project"),
		"",
		s.ButtonPrimary.Render(" New Project "),
	)
	return place(content, v.width, v.height)
}

func (v *ProjectListView) renderHelp() string {
	contentWidth := styles.ContentWidth(v.width)
	// At narrow widths, show hint to press ? for help
	if contentWidth > 0 && contentWidth < 50 {
		return v.styles.Help.Render(v.styles.HelpKey.Render("?") + " help")
	}
	return helpLine(v.styles, "↵", "open", "n", "new", "d", "del", "/", "filter", "q", "quit")
}

func (v *ProjectListView) renderHelpPopup() string {
	s := v.styles

	helpItems := []string{
		s.HelpKey.Render("↵") + "      open project tasks",
		s.HelpKey.Render("n") + "      new project (optionally from a template)",
		s.HelpKey.Render("d") + "      delete project",
		s.HelpKey.Render("/") + "      filter by name",
		s.HelpKey.Render("tab") + "    next tab",
		s.HelpKey.Render("q") + "      quit",
		"",
		s.TitleMuted.Render("Press any key to close"),
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		append([]string{s.Title.Render("Keyboard Shortcuts"), ""}, helpItems...)...,
	)
	return place(s.Popup.Render(content), v.width, v.height)
}
