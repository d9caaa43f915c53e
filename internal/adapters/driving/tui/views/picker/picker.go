// Package picker provides the source directory selection view for the TUI.
package picker

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/shelve-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/shelve-cli/internal/adapters/driving/tui/styles"
)

// View lets the user type the directory to organize.
type View struct {
	styles    *styles.Styles
	textinput textinput.Model
	err       error
	width     int
}

// NewView creates a new picker view with an initial directory.
func NewView(s *styles.Styles, initialDir string) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "Directory to organize..."
	ti.SetValue(initialDir)
	ti.Focus()
	ti.CharLimit = 512
	ti.Width = 50

	return &View{
		styles:    s,
		textinput: ti,
		width:     80,
	}
}

// Init initialises the picker view.
func (v *View) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the picker view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		return v, nil

	case messages.PlanReady:
		// Only an error lands here; a usable plan switches views first.
		v.err = msg.Err
		return v, nil

	case tea.KeyMsg:
		if msg.String() == "enter" {
			dir := strings.TrimSpace(v.textinput.Value())
			if dir == "" {
				return v, nil
			}
			v.err = nil
			return v, func() tea.Msg {
				return messages.PlanRequested{SourceDir: dir}
			}
		}
	}

	var cmd tea.Cmd
	v.textinput, cmd = v.textinput.Update(msg)
	return v, cmd
}

// View renders the picker.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Shelve"))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Muted.Render("Organize files into category folders"))
	b.WriteString("\n\n")
	b.WriteString(v.styles.InputField.Render(v.textinput.View()))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n\n")
	}

	b.WriteString(v.styles.Help.Render("enter preview · ctrl+c quit"))
	return b.String()
}

// Value returns the currently entered directory.
func (v *View) Value() string {
	return strings.TrimSpace(v.textinput.Value())
}
