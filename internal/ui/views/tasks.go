package views

import (
	"fmt"
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

// BackToProjects signals to go back to project list
type BackToProjects struct{}

// TaskListView shows one project's tasks, earliest deadline first
type TaskListView struct {
	store     *store.Store
	projectID string
	tasks     []models.Task
	styles    *styles.Styles
	keys      keys.KeyMap

	width  int
	height int

	cursor  int
	scrollY int

	// Task creation/editing
	editing    *form
	editingNew bool

	// Read-only detail view
	viewingTask bool

	// Delete confirmation
	confirmingDelete bool
	deleteTargetID   string
	deleteTargetName string

	// Help popup (shown with ? at narrow widths)
	showHelpPopup bool
}

// NewTaskListView creates a new task list view
func NewTaskListView(st *store.Store, projectID string) *TaskListView {
	return &TaskListView{
		store:     st,
		projectID: projectID,
		styles:    styles.NewStyles(),
		keys:      keys.DefaultKeyMap(),
	}
}

// Init initializes the view
func (v *TaskListView) Init() tea.Cmd {
	v.reload()
	return nil
}

// Capturing reports whether keys belong to a form or popup
func (v *TaskListView) Capturing() bool {
	return v.editing != nil || v.confirmingDelete || v.showHelpPopup || v.viewingTask
}

func (v *TaskListView) project() (models.Project, bool) {
	return v.store.State().Project(v.projectID)
}

func (v *TaskListView) reload() {
	p, ok := v.project()
	if !ok {
		v.tasks = nil
		v.cursor = 0
		return
	}
	v.tasks = analytics.SortByDeadline(p.Tasks, now(v.store).Location())
	v.cursor = clamp(v.cursor, 0, max(len(v.tasks)-1, 0))
	v.ensureVisible()
}

func (v *TaskListView) selected() (models.Task, bool) {
	if len(v.tasks) == 0 {
		return models.Task{}, false
	}
	return v.tasks[v.cursor], true
}

// Update handles a message
func (v *TaskListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ensureVisible()
		return v, nil

	case tea.KeyMsg:
		if v.showHelpPopup {
			v.showHelpPopup = false
			return v, nil
		}
		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}
		if v.editing != nil {
			return v.updateEditing(msg)
		}
		if v.viewingTask {
			return v.updateViewingTask(msg)
		}
		return v.updateNormal(msg)
	}
	return v, nil
}

func (v *TaskListView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		return v, func() tea.Msg { return BackToProjects{} }

	case key.Matches(msg, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
			v.ensureVisible()
		}

	case key.Matches(msg, v.keys.Down):
		if v.cursor < len(v.tasks)-1 {
			v.cursor++
			v.ensureVisible()
		}

	case key.Matches(msg, v.keys.Enter):
		if len(v.tasks) > 0 {
			v.viewingTask = true
		}

	case key.Matches(msg, v.keys.New):
		v.startNewTask()
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Edit):
		if task, ok := v.selected(); ok {
			v.startEditTask(task)
			return v, textinput.Blink
		}

	case key.Matches(msg, v.keys.Status):
		if task, ok := v.selected(); ok {
			task.Status = task.Status.Next()
			v.dispatchUpdate(task)
		}

	case key.Matches(msg, v.keys.Priority):
		if task, ok := v.selected(); ok {
			task.Priority = task.Priority.Next()
			v.dispatchUpdate(task)
		}

	case key.Matches(msg, v.keys.Delete):
		if task, ok := v.selected(); ok {
			v.confirmingDelete = true
			v.deleteTargetID = task.ID
			v.deleteTargetName = task.Subject
		}

	case key.Matches(msg, v.keys.Help):
		v.showHelpPopup = true
	}
	return v, nil
}

func (v *TaskListView) dispatchUpdate(task models.Task) {
	task.UpdatedAt = models.Timestamp(now(v.store))
	v.store.Dispatch(store.UpdateTask{ProjectID: v.projectID, Task: task})
	v.reload()
}

func (v *TaskListView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	yes, decided := confirmKey(msg)
	if !decided {
		return v, nil
	}
	if yes {
		v.store.Dispatch(store.DeleteTask{ProjectID: v.projectID, TaskID: v.deleteTargetID})
		v.reload()
	}
	v.confirmingDelete = false
	return v, nil
}

func (v *TaskListView) updateViewingTask(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back), key.Matches(msg, v.keys.Enter):
		v.viewingTask = false
	case key.Matches(msg, v.keys.Edit):
		if task, ok := v.selected(); ok {
			v.viewingTask = false
			v.startEditTask(task)
			return v, textinput.Blink
		}
	}
	return v, nil
}

func indexOf[T comparable](items []T, want T) int {
	for i, it := range items {
		if it == want {
			return i
		}
	}
	return 0
}

func enumLabels[T ~string](items []T) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = string(it)
	}
	return out
}

func hoursString(h *float64) string {
	if h == nil {
		return ""
	}
	return strconv.FormatFloat(*h, 'f', -1, 64)
}

func (v *TaskListView) taskForm(title, submit string, task models.Task) *form {
	return newForm(title, submit,
		textField("Subject", "What needs doing", task.Subject, 200),
		textField("Description", "Description (optional)", task.Description, 1000),
		textField("Deadline", "YYYY-MM-DD", task.Deadline, 10),
		choiceField("Priority", enumLabels(models.Priorities()), indexOf(models.Priorities(), task.Priority)),
		choiceField("Category", enumLabels(models.Categories()), indexOf(models.Categories(), task.Category)),
		textField("Contact", "Contact name", task.Contact.Name, 100),
		textField("Role", "Contact role", task.Contact.Role, 100),
		textField("Email", "name@example.com", task.Contact.Email, 200),
		textField("Phone", "Phone (optional)", task.Contact.Phone, 40),
		textField("Estimated hours", "e.g. 4.5", hoursString(task.EstimatedHours), 8),
		textField("Actual hours", "e.g. 3", hoursString(task.ActualHours), 8),
	)
}

func (v *TaskListView) startNewTask() {
	v.editingNew = true
	v.editing = v.taskForm("New Task", "Create", models.NewTask(v.projectID, "", now(v.store)))
}

func (v *TaskListView) startEditTask(task models.Task) {
	v.editingNew = false
	v.editing = v.taskForm("Edit Task", "Save", task)
}

func (v *TaskListView) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	submitted, cancelled, cmd := v.editing.update(msg, v.keys)
	switch {
	case cancelled:
		v.editing = nil
	case submitted:
		v.saveTask()
	}
	return v, cmd
}

func parseHours(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	h, err := strconv.ParseFloat(s, 64)
	if err != nil || h < 0 {
		return nil, fmt.Errorf("hours must be a non-negative number")
	}
	return &h, nil
}

func (v *TaskListView) saveTask() {
	f := v.editing
	subject := f.value(0)
	if subject == "" {
		f.err = "subject is required"
		return
	}
	deadline := f.value(2)
	if deadline != "" {
		if _, ok := analytics.ParseDate(deadline, now(v.store).Location()); !ok {
			f.err = "deadline must look like 2025-10-30"
			return
		}
	}
	estimated, err := parseHours(f.value(9))
	if err != nil {
		f.err = err.Error()
		return
	}
	actual, err := parseHours(f.value(10))
	if err != nil {
		f.err = err.Error()
		return
	}

	t := now(v.store)
	var task models.Task
	if v.editingNew {
		task = models.NewTask(v.projectID, subject, t)
	} else if current, ok := v.selected(); ok {
		task = current
	} else {
		v.editing = nil
		return
	}
	task.Subject = subject
	task.Description = f.value(1)
	task.Deadline = deadline
	task.Priority = models.Priorities()[f.choice(3)]
	task.Category = models.Categories()[f.choice(4)]
	task.Contact = models.Contact{
		Name:  f.value(5),
		Role:  f.value(6),
		Email: f.value(7),
		Phone: f.value(8),
	}
	task.EstimatedHours = estimated
	task.ActualHours = actual
	task.UpdatedAt = models.Timestamp(t)

	if v.editingNew {
		v.store.Dispatch(store.AddTask{ProjectID: v.projectID, Task: task})
	} else {
		v.store.Dispatch(store.UpdateTask{ProjectID: v.projectID, Task: task})
	}
	v.editing = nil
	v.reload()
}

func (v *TaskListView) ensureVisible() {
	visibleItems := v.visibleItems()
	if v.cursor < v.scrollY {
		v.scrollY = v.cursor
	} else if v.cursor >= v.scrollY+visibleItems {
		v.scrollY = v.cursor - visibleItems + 1
	}
}

// visibleItems is how many two-line task items fit below the header
func (v *TaskListView) visibleItems() int {
	availableHeight := max(v.height-10, 3)
	return max(availableHeight/3, 1)
}

// View renders the view
func (v *TaskListView) View() string {
	if v.showHelpPopup {
		return v.renderHelpPopup()
	}
	if v.confirmingDelete {
		return renderConfirm(v.styles, v.width, v.height, "Delete Task?",
			fmt.Sprintf("Are you sure you want to delete %q?", v.deleteTargetName))
	}
	if v.editing != nil {
		return v.editing.view(v.styles, v.width, v.height)
	}
	if v.viewingTask {
		return v.renderTaskView()
	}

	var b strings.Builder
	b.WriteString(v.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(v.renderTaskList())
	b.WriteString("\n")
	b.WriteString(v.renderHelp())

	return styles.CenterView(b.String(), v.width, v.height)
}

func (v *TaskListView) renderHeader() string {
	s := v.styles
	p, ok := v.project()
	if !ok {
		return s.Title.Render("Project not found")
	}
	brand, known := v.store.State().Brand(p.BrandID)
	var bp *models.Brand
	if known {
		bp = &brand
	}
	display := analytics.ResolveBrandDisplay(bp)
	stats := analytics.ProjectSummary(p, now(v.store))

	title := s.Title.Render(p.Name)
	meta := s.TitleMuted.Render(fmt.Sprintf("%s %s • %d%% complete", styles.Swatch(display.Color), display.Label, stats.Progress))
	if stats.Overdue > 0 {
		meta += "  " + s.Overdue.Render(fmt.Sprintf("%d overdue", stats.Overdue))
	}
	return lipgloss.JoinVertical(lipgloss.Left, s.Button.Render("← Projects")+"  "+title, meta)
}

func (v *TaskListView) renderTaskList() string {
	s := v.styles
	if len(v.tasks) == 0 {
		return s.TitleMuted.Render("No tasks. Press 'n' to create one.")
	}

	var items []string
	endIdx := min(v.scrollY+v.visibleItems(), len(v.tasks))
	for i := v.scrollY; i < endIdx; i++ {
		items = append(items, v.renderTaskItem(v.tasks[i], i == v.cursor))
	}
	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

func (v *TaskListView) renderTaskItem(task models.Task, selected bool) string {
	s := v.styles
	width := max(styles.ContentWidth(v.width)-4, 20)
	t := now(v.store)

	priority := lipgloss.NewStyle().Foreground(styles.PriorityColor(task.Priority)).Render("● ")
	titleLine := priority + task.Subject

	status := lipgloss.NewStyle().Foreground(styles.StatusColor(task.Status)).Render(string(task.Status))
	due := "no deadline"
	if task.Deadline != "" {
		due = "due " + analytics.FormatDate(task.Deadline)
	}
	metaLine := fmt.Sprintf("%s • %s • %s", status, task.Category, due)
	if !task.Completed() && analytics.IsOverdue(task.Deadline, t) {
		metaLine += " " + s.Overdue.Render("OVERDUE")
	} else if days, ok := analytics.DaysUntil(task.Deadline, t); ok && !task.Completed() && days <= 7 {
		metaLine += " " + s.TitleMuted.Render(fmt.Sprintf("(%dd left)", days))
	}

	itemStyle := s.ListItem
	if selected {
		itemStyle = s.ListSelected
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		itemStyle.Width(width).Render(titleLine),
		itemStyle.Width(width).Render(metaLine),
	) + "\n"
}

// contactLabel renders "name (role)", or whichever half is set
func contactLabel(c models.Contact) string {
	switch {
	case c.Name != "" && c.Role != "":
		return fmt.Sprintf("%s (%s)", c.Name, c.Role)
	case c.Name != "":
		return c.Name
	default:
		return c.Role
	}
}

func (v *TaskListView) renderTaskView() string {
	s := v.styles
	task, ok := v.selected()
	if !ok {
		return ""
	}

	row := func(label, value string) string {
		if value == "" {
			value = "—"
		}
		return s.HelpKey.Render(fmt.Sprintf("%-16s", label)) + value
	}
	lines := []string{
		s.Title.Render(task.Subject),
		"",
		row("Status", string(task.Status)),
		row("Priority", string(task.Priority)),
		row("Category", string(task.Category)),
		row("Deadline", analytics.FormatDate(task.Deadline)),
		row("Contact", contactLabel(task.Contact)),
		row("Email", task.Contact.Email),
		row("Phone", task.Contact.Phone),
		row("Estimated hours", hoursString(task.EstimatedHours)),
		row("Actual hours", hoursString(task.ActualHours)),
		row("Created", analytics.FormatDate(task.CreatedAt)),
		row("Updated", analytics.FormatDate(task.UpdatedAt)),
	}
	if task.Description != "" {
		lines = append(lines, "", task.Description)
	}
	lines = append(lines, "", helpLine(s, "e", "edit", "esc", "back"))

	return place(s.Popup.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)), v.width, v.height)
}

func (v *TaskListView) renderHelp() string {
	contentWidth := styles.ContentWidth(v.width)
	if contentWidth > 0 && contentWidth < 60 {
		return v.styles.Help.Render(v.styles.HelpKey.Render("?") + " help")
	}
	return helpLine(v.styles, "n", "new", "e", "edit", "s", "status", "p", "priority", "d", "del", "esc", "back")
}

func (v *TaskListView) renderHelpPopup() string {
	s := v.styles

	helpItems := []string{
		s.HelpKey.Render("↑/↓") + "    navigate tasks",
		s.HelpKey.Render("↵") + "      view task",
		s.HelpKey.Render("n") + "      new task",
		s.HelpKey.Render("e") + "      edit task",
		s.HelpKey.Render("s") + "      cycle status",
		s.HelpKey.Render("p") + "      cycle priority",
		s.HelpKey.Render("d") + "      delete task",
		s.HelpKey.Render("esc") + "    back to projects",
		"",
		s.TitleMuted.Render("Press any key to close"),
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		append([]string{s.Title.Render("Keyboard Shortcuts"), ""}, helpItems...)...,
	)
	return place(s.Popup.Render(content), v.width, v.height)
}
