package views

import (
	"fmt"

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

// TemplateListView manages reusable project templates
type TemplateListView struct {
	store  *store.Store
	styles *styles.Styles
	keys   keys.KeyMap
	width  int
	height int

	cursor int

	editing    *form
	editingID  string   // empty while creating
	projectIDs []string // parallel to the project choice options

	viewing bool

	confirmingDelete bool
	deleteTarget     models.ProjectTemplate
}

// NewTemplateListView creates the templates tab
func NewTemplateListView(st *store.Store) *TemplateListView {
	return &TemplateListView{store: st, styles: styles.NewStyles(), keys: keys.DefaultKeyMap()}
}

func (v *TemplateListView) Init() tea.Cmd { return nil }

// Capturing reports whether keys belong to a form or popup
func (v *TemplateListView) Capturing() bool {
	return v.editing != nil || v.confirmingDelete || v.viewing
}

func (v *TemplateListView) selected() (models.ProjectTemplate, bool) {
	tpls := v.store.State().Templates
	if len(tpls) == 0 {
		return models.ProjectTemplate{}, false
	}
	v.cursor = clamp(v.cursor, 0, len(tpls)-1)
	return tpls[v.cursor], true
}

func (v *TemplateListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case tea.KeyMsg:
		if v.confirmingDelete {
			if yes, decided := confirmKey(msg); decided {
				if yes {
					v.store.Dispatch(store.DeleteTemplate{ID: v.deleteTarget.ID})
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
			v.cursor = min(v.cursor+1, max(len(v.store.State().Templates)-1, 0))
		case key.Matches(msg, v.keys.Enter):
			_, v.viewing = v.selected()
		case key.Matches(msg, v.keys.New):
			v.startCreate()
			return v, textinput.Blink
		case key.Matches(msg, v.keys.Edit):
			if tpl, ok := v.selected(); ok {
				v.editingID = tpl.ID
				v.editing = newForm("Edit Template", "Save",
					textField("Name", "Template name", tpl.Name, 100),
					textField("Description", "Description (optional)", tpl.Description, 200),
				)
				return v, textinput.Blink
			}
		case key.Matches(msg, v.keys.Delete):
			if tpl, ok := v.selected(); ok {
				v.confirmingDelete = true
				v.deleteTarget = tpl
			}
		}
	}
	return v, nil
}

// startCreate offers every project as a source, preselecting the open one
func (v *TemplateListView) startCreate() {
	state := v.store.State()
	names := make([]string, len(state.Projects))
	v.projectIDs = make([]string, len(state.Projects))
	selected := 0
	for i, p := range state.Projects {
		names[i] = p.Name
		v.projectIDs[i] = p.ID
		if p.ID == state.SelectedProject {
			selected = i
		}
	}
	v.editingID = ""
	v.editing = newForm("Save Project as Template", "Create",
		textField("Name", "Template name", "", 100),
		choiceField("From project", names, selected),
	)
}

func (v *TemplateListView) save() {
	f := v.editing
	name := f.value(0)
	if name == "" {
		f.err = models.ErrEmptyName.Error()
		return
	}

	if v.editingID != "" {
		tpl, ok := v.store.State().Template(v.editingID)
		if ok {
			tpl.Name = name
			tpl.Description = f.value(1)
			v.store.Dispatch(store.UpdateTemplate{Template: tpl})
		}
		v.editing = nil
		return
	}

	if len(v.projectIDs) == 0 {
		f.err = "create a project first"
		return
	}
	p, ok := v.store.State().Project(v.projectIDs[f.choice(1)])
	if !ok {
		v.editing = nil
		return
	}
	v.store.Dispatch(store.AddTemplate{Template: models.NewTemplateFromProject(name, p, now(v.store))})
	v.editing = nil
}

func (v *TemplateListView) View() string {
	s := v.styles
	if v.confirmingDelete {
		return renderConfirm(s, v.width, v.height, "Delete Template?",
			fmt.Sprintf("Are you sure you want to delete %q?", v.deleteTarget.Name),
			"Projects created from it are not affected.",
		)
	}
	if v.editing != nil {
		return v.editing.view(s, v.width, v.height)
	}
	if v.viewing {
		return v.renderDetail()
	}

	tpls := v.store.State().Templates
	if len(tpls) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Center,
			s.Title.Render("No Templates"),
			"",
			s.TitleMuted.Render("Press 'n' to save a project's tasks as a template"),
		)
		return place(content, v.width, v.height)
	}

	width := max(styles.ContentWidth(v.width)-4, 20)
	lines := []string{s.Title.Render("Templates"), ""}
	for i, tpl := range tpls {
		line := fmt.Sprintf("%-32s %3d tasks  created %s", tpl.Name, len(tpl.Tasks), analytics.FormatDate(tpl.CreatedAt))
		style := s.ListItem
		if i == v.cursor {
			style = s.ListSelected
		}
		lines = append(lines, style.Width(width).Render(line))
	}
	lines = append(lines, helpLine(s, "↵", "view", "n", "new", "e", "rename", "d", "del", "tab", "next tab"))
	return styles.CenterView(lipgloss.JoinVertical(lipgloss.Left, lines...), v.width, v.height)
}

func (v *TemplateListView) renderDetail() string {
	s := v.styles
	tpl, ok := v.selected()
	if !ok {
		return ""
	}
	lines := []string{s.Title.Render(tpl.Name), s.TitleMuted.Render(tpl.Description), ""}
	for _, bp := range tpl.Tasks {
		dot := lipgloss.NewStyle().Foreground(styles.PriorityColor(bp.Priority)).Render("●")
		lines = append(lines, fmt.Sprintf("%s %-32s %s", dot, bp.Subject, s.TitleMuted.Render(string(bp.Category))))
	}
	if len(tpl.Tasks) == 0 {
		lines = append(lines, s.TitleMuted.Render("This template has no tasks."))
	}
	lines = append(lines, helpLine(s, "esc", "back"))
	return place(s.Popup.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)), v.width, v.height)
}
