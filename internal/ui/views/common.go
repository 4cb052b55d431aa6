package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ofirka2/brand-manager/internal/analytics"
	"github.com/ofirka2/brand-manager/internal/store"
	"github.com/ofirka2/brand-manager/internal/ui/keys"
	"github.com/ofirka2/brand-manager/internal/ui/styles"
)

// clock is swapped in tests
var clock = time.Now

// now returns the current time in the user's configured zone
func now(st *store.Store) time.Time {
	return clock().In(analytics.Location(st.State().UserSettings.Timezone))
}

// clamp returns val clamped between minVal and maxVal
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// cycle moves i by delta within [0, n), wrapping at both ends
func cycle(i, delta, n int) int {
	if n == 0 {
		return 0
	}
	return ((i+delta)%n + n) % n
}

// Capturer is implemented by views that are collecting text input, so the
// app stops treating keys like tab and q as navigation.
type Capturer interface {
	Capturing() bool
}

// place centers content within the content width, then in the terminal
func place(content string, width, height int) string {
	centered := lipgloss.Place(styles.ContentWidth(width), height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, width, height)
}

// helpLine renders "key desc • key desc" pairs
func helpLine(s *styles.Styles, pairs ...string) string {
	var parts []string
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, s.HelpKey.Render(pairs[i])+" "+pairs[i+1])
	}
	return s.Help.Render(strings.Join(parts, " • "))
}

func renderConfirm(s *styles.Styles, width, height int, title string, details ...string) string {
	lines := []string{s.Title.Foreground(styles.Current.Error).Render(title), ""}
	for _, d := range details {
		lines = append(lines, s.TitleMuted.Render(d))
	}
	lines = append(lines, "",
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.ButtonPrimary.Render(" Y - Yes "),
			"  ",
			s.Button.Render(" N - No "),
		),
	)
	return place(lipgloss.JoinVertical(lipgloss.Center, lines...), width, height)
}

// confirmKey reads a y/n answer. decided is false for any other key.
func confirmKey(msg tea.KeyMsg) (yes, decided bool) {
	switch msg.String() {
	case "y", "Y":
		return true, true
	case "n", "N", "esc":
		return false, true
	}
	return false, false
}

// formField is either a text input or, when options is set, a choice cycled with left/right
type formField struct {
	label   string
	input   textinput.Model
	options []string
	choice  int
}

func textField(label, placeholder, value string, limit int) formField {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.SetValue(value)
	return formField{label: label, input: in}
}

func choiceField(label string, options []string, selected int) formField {
	return formField{label: label, options: options, choice: clamp(selected, 0, max(len(options)-1, 0))}
}

// form is a vertical stack of fields followed by a submit button
type form struct {
	title  string
	submit string
	fields []formField
	focus  int // len(fields) is the button
	err    string
}

func newForm(title, submit string, fields ...formField) *form {
	f := &form{title: title, submit: submit, fields: fields}
	f.updateFocus()
	return f
}

func (f *form) value(i int) string {
	fl := f.fields[i]
	if fl.options != nil {
		if len(fl.options) == 0 {
			return ""
		}
		return fl.options[fl.choice]
	}
	return strings.TrimSpace(fl.input.Value())
}

func (f *form) choice(i int) int {
	return f.fields[i].choice
}

// fillEmpty sets text field i to value unless the user already typed something
func (f *form) fillEmpty(i int, value string) {
	fl := &f.fields[i]
	if fl.options != nil || f.value(i) != "" {
		return
	}
	fl.input.SetValue(value)
}

func (f *form) updateFocus() {
	for i := range f.fields {
		f.fields[i].input.Blur()
	}
	if f.focus < len(f.fields) && f.fields[f.focus].options == nil {
		f.fields[f.focus].input.Focus()
	}
}

// update handles a key. submitted or cancelled report the user's decision.
func (f *form) update(msg tea.KeyMsg, km keys.KeyMap) (submitted, cancelled bool, cmd tea.Cmd) {
	n := len(f.fields) + 1
	switch {
	case key.Matches(msg, km.Back):
		return false, true, nil
	case key.Matches(msg, km.Save):
		return true, false, nil
	case key.Matches(msg, km.PrevTab), msg.String() == "up":
		f.focus = cycle(f.focus, -1, n)
		f.updateFocus()
		return false, false, nil
	case key.Matches(msg, km.Tab), msg.String() == "down":
		f.focus = cycle(f.focus, 1, n)
		f.updateFocus()
		return false, false, nil
	case key.Matches(msg, km.Enter):
		if f.focus == len(f.fields) {
			return true, false, nil
		}
		f.focus++
		f.updateFocus()
		return false, false, nil
	}

	if f.focus >= len(f.fields) {
		return false, false, nil
	}
	fl := &f.fields[f.focus]
	if fl.options != nil {
		switch {
		case key.Matches(msg, km.Left):
			fl.choice = cycle(fl.choice, -1, len(fl.options))
		case key.Matches(msg, km.Right), msg.String() == " ":
			fl.choice = cycle(fl.choice, 1, len(fl.options))
		}
		return false, false, nil
	}
	fl.input, cmd = fl.input.Update(msg)
	return false, false, cmd
}

func (f *form) view(s *styles.Styles, width, height int) string {
	inputWidth := clamp(styles.ContentWidth(width)-6, 20, 50)

	lines := []string{s.Title.Render(f.title), ""}
	for i, fl := range f.fields {
		style := s.Input
		if i == f.focus {
			style = s.InputFocused
		}
		lines = append(lines, fl.label+":")
		if fl.options != nil {
			label := "(none)"
			if len(fl.options) > 0 {
				label = fl.options[fl.choice]
			}
			lines = append(lines, style.Width(inputWidth).Render("◀ "+label+" ▶"))
		} else {
			lines = append(lines, style.Width(inputWidth).Render(fl.input.View()))
		}
	}

	btn := s.Button
	if f.focus == len(f.fields) {
		btn = s.ButtonFocused
	}
	lines = append(lines, "", btn.Render(fmt.Sprintf(" %s ", f.submit)))
	if f.err != "" {
		lines = append(lines, s.Error.Render(f.err))
	}
	lines = append(lines, "", s.TitleMuted.Render("Tab: next • ←/→: choose • Ctrl+S: save • Esc: cancel"))

	return place(lipgloss.JoinVertical(lipgloss.Left, lines...), width, height)
}
