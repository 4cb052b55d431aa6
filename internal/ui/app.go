package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ofirka2/brand-manager/internal/store"
	"github.com/ofirka2/brand-manager/internal/ui/keys"
	"github.com/ofirka2/brand-manager/internal/ui/styles"
	"github.com/ofirka2/brand-manager/internal/ui/views"
)

// tabBarHeight is the tab row plus its bottom border
const tabBarHeight = 2

var tabTitles = map[store.View]string{
	store.ViewDashboard: "Dashboard",
	store.ViewBrands:    "Brands",
	store.ViewProjects:  "Projects",
	store.ViewTimeline:  "Timeline",
	store.ViewTemplates: "Templates",
	store.ViewSettings:  "Settings",
}

// App is the root model. It owns one view per tab and reads everything else from the store.
type App struct {
	store  *store.Store
	styles *styles.Styles
	keys   keys.KeyMap
	tabs   map[store.View]tea.Model

	// Open while a project's tasks are shown inside the Projects tab
	taskList *views.TaskListView

	width  int
	height int
}

// NewApp creates a new application
func NewApp(st *store.Store) *App {
	return &App{
		store:  st,
		styles: styles.NewStyles(),
		keys:   keys.DefaultKeyMap(),
		tabs: map[store.View]tea.Model{
			store.ViewDashboard: views.NewDashboardView(st),
			store.ViewBrands:    views.NewBrandListView(st),
			store.ViewProjects:  views.NewProjectListView(st),
			store.ViewTimeline:  views.NewTimelineView(st),
			store.ViewTemplates: views.NewTemplateListView(st),
			store.ViewSettings:  views.NewSettingsView(st),
		},
	}
}

func (a *App) Init() tea.Cmd {
	return a.active().Init()
}

func (a *App) current() store.View {
	v := a.store.State().CurrentView
	if _, ok := a.tabs[v]; !ok {
		return store.ViewDashboard
	}
	return v
}

func (a *App) active() tea.Model {
	v := a.current()
	if v == store.ViewProjects && a.taskList != nil {
		return a.taskList
	}
	return a.tabs[v]
}

func (a *App) resize() tea.Cmd {
	return func() tea.Msg {
		return tea.WindowSizeMsg{Width: a.width, Height: a.height}
	}
}

// switchTab moves by delta through the tabs in display order
func (a *App) switchTab(delta int) tea.Cmd {
	all := store.Views()
	i := 0
	for j, v := range all {
		if v == a.current() {
			i = j
		}
	}
	next := all[(i+delta+len(all))%len(all)]
	a.store.Dispatch(store.SetCurrentView{View: next})

	// The open project may have gone away with a brand cascade
	if a.taskList != nil {
		if _, ok := a.store.State().Project(a.store.State().SelectedProject); !ok {
			a.taskList = nil
		}
	}
	return tea.Batch(a.active().Init(), a.resize())
}

func (a *App) openProject(id string) tea.Cmd {
	a.store.Dispatch(store.SetSelectedProject{ID: id})
	a.store.Dispatch(store.SetCurrentView{View: store.ViewProjects})
	a.taskList = views.NewTaskListView(a.store, id)
	return tea.Batch(a.taskList.Init(), a.resize())
}

func (a *App) capturing() bool {
	c, ok := a.active().(views.Capturer)
	return ok && c.Capturing()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		inner := tea.WindowSizeMsg{Width: msg.Width, Height: max(msg.Height-tabBarHeight, 0)}
		// Every tab keeps its size so switching does not flash
		for _, t := range a.tabs {
			t.Update(inner)
		}
		if a.taskList != nil {
			a.taskList.Update(inner)
		}
		return a, nil

	case views.SelectedProject:
		return a, a.openProject(msg.ID)

	case views.BackToProjects:
		a.taskList = nil
		a.store.Dispatch(store.SetSelectedProject{ID: ""})
		return a, tea.Batch(a.active().Init(), a.resize())

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if !a.capturing() {
			switch {
			case key.Matches(msg, a.keys.Quit):
				return a, tea.Quit
			case key.Matches(msg, a.keys.Tab):
				return a, a.switchTab(1)
			case key.Matches(msg, a.keys.PrevTab):
				return a, a.switchTab(-1)
			}
		}
	}

	_, cmd := a.active().Update(msg)
	return a, cmd
}

func (a *App) renderTabs() string {
	current := a.current()
	var tabs []string
	for _, v := range store.Views() {
		style := a.styles.Tab
		if v == current {
			style = a.styles.TabActive
		}
		tabs = append(tabs, style.Render(tabTitles[v]))
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	return a.styles.TabBar.Width(styles.ContentWidth(a.width)).Render(bar)
}

func (a *App) View() string {
	var b strings.Builder
	b.WriteString(styles.CenterView(a.renderTabs(), a.width, 0))
	b.WriteString("\n")
	b.WriteString(a.active().View())
	return b.String()
}
