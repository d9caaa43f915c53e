// Package summary shows the report of an applied organize pass.
package summary

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/custodia-labs/shelve-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/shelve-cli/internal/core/domain"
)

// View renders the report of an applied pass.
type View struct {
	styles *styles.Styles
	report *domain.Report
	width  int
	height int
}

// NewView creates a new summary view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles: s,
		width:  80,
		height: 24,
	}
}

// SetReport loads a report into the view.
func (v *View) SetReport(report *domain.Report) {
	v.report = report
}

// Init initialises the summary view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the summary view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		v.width = msg.Width
		v.height = msg.Height
	}
	return v, nil
}

// View renders the summary.
func (v *View) View() string {
	if v.report == nil {
		return v.styles.Muted.Render("No report.")
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Organization complete"))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Success.Render(fmt.Sprintf("Files moved: %d (%s)",
		v.report.Moved, humanize.Bytes(uint64(v.report.BytesMoved)))))
	b.WriteString("\n\n")

	for _, category := range v.report.Categories() {
		b.WriteString(v.styles.Normal.Render(
			fmt.Sprintf("  %s: %d file(s)", category, v.report.PerCategory[category])))
		b.WriteString("\n")
	}

	if len(v.report.Errors) > 0 {
		b.WriteString("\n")
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Errors: %d", len(v.report.Errors))))
		b.WriteString("\n")
		for _, e := range v.report.Errors {
			b.WriteString(v.styles.Error.Render(fmt.Sprintf("  - %s: %s", e.File, e.Message)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("esc organize another · q quit"))
	return b.String()
}
