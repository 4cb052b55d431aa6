package views

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ofirka2/brand-manager/internal/models"
	"github.com/ofirka2/brand-manager/internal/store"
	"github.com/ofirka2/brand-manager/internal/ui/keys"
	"github.com/ofirka2/brand-manager/internal/ui/styles"
)

// SettingsView edits the user profile and notification preferences
type SettingsView struct {
	store  *store.Store
	styles *styles.Styles
	keys   keys.KeyMap
	width  int
	height int

	editing *form
}

// NewSettingsView creates the settings tab
func NewSettingsView(st *store.Store) *SettingsView {
	return &SettingsView{store: st, styles: styles.NewStyles(), keys: keys.DefaultKeyMap()}
}

func (v *SettingsView) Init() tea.Cmd { return nil }

// Capturing reports whether keys belong to the profile form
func (v *SettingsView) Capturing() bool {
	return v.editing != nil
}

// toggleNotification flips one notification switch. Unknown keys change nothing.
func toggleNotification(ns models.NotificationSettings, k string) (models.NotificationSettings, bool) {
	switch k {
	case "t":
		ns.Enabled = !ns.Enabled
	case "1":
		ns.Triggers.SevenDays = !ns.Triggers.SevenDays
	case "2":
		ns.Triggers.ThreeDays = !ns.Triggers.ThreeDays
	case "3":
		ns.Triggers.OneDay = !ns.Triggers.OneDay
	case "4":
		ns.Triggers.Overdue = !ns.Triggers.Overdue
	case "x":
		ns.Escalation = !ns.Escalation
	default:
		return ns, false
	}
	return ns, true
}

func (v *SettingsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height

	case tea.KeyMsg:
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

		if key.Matches(msg, v.keys.Edit) {
			us := v.store.State().UserSettings
			v.editing = newForm("Profile", "Save",
				textField("Name", "Your name", us.Name, 100),
				textField("Email", "you@example.com", us.Email, 200),
				textField("Timezone", "e.g. Europe/Berlin", us.Timezone, 64),
			)
			return v, textinput.Blink
		}
		if ns, ok := toggleNotification(v.store.State().Notifications, msg.String()); ok {
			v.store.Dispatch(store.SetNotifications{Settings: ns})
		}
	}
	return v, nil
}

func (v *SettingsView) save() {
	f := v.editing
	tz := f.value(2)
	if tz == "" {
		tz = "UTC"
	}
	if _, err := time.LoadLocation(tz); err != nil {
		f.err = fmt.Sprintf("unknown timezone %q", tz)
		return
	}
	v.store.Dispatch(store.SetUserSettings{Settings: models.UserSettings{
		Name:     f.value(0),
		Email:    f.value(1),
		Timezone: tz,
	}})
	v.editing = nil
}

func (v *SettingsView) View() string {
	s := v.styles
	if v.editing != nil {
		return v.editing.view(s, v.width, v.height)
	}

	state := v.store.State()
	us, ns := state.UserSettings, state.Notifications

	row := func(label, value string) string {
		if value == "" {
			value = s.TitleMuted.Render("not set")
		}
		return s.HelpKey.Render(fmt.Sprintf("  %-12s", label)) + value
	}
	check := func(k, label string, on bool) string {
		box := "[ ]"
		if on {
			box = s.Completed.Render("[x]")
		}
		return fmt.Sprintf("  %s %s %s", s.HelpKey.Render(k), box, label)
	}

	lines := []string{
		s.Title.Render("Settings"),
		"",
		s.HelpKey.Render("Profile"),
		row("Name", us.Name),
		row("Email", us.Email),
		row("Timezone", us.Timezone),
		"",
		s.HelpKey.Render("Notifications"),
		check("t", "Deadline reminders", ns.Enabled),
		check("1", "7 days before", ns.Triggers.SevenDays),
		check("2", "3 days before", ns.Triggers.ThreeDays),
		check("3", "1 day before", ns.Triggers.OneDay),
		check("4", "When overdue", ns.Triggers.Overdue),
		check("x", "Escalate overdue High/Urgent tasks", ns.Escalation),
		"",
		helpLine(s, "e", "edit profile", "t/1-4/x", "toggle", "tab", "next tab", "q", "quit"),
	}
	return styles.CenterView(lipgloss.JoinVertical(lipgloss.Left, lines...), v.width, v.height)
}
