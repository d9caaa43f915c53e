// Package preview shows the planned moves before they are applied.
package preview

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/custodia-labs/shelve-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/shelve-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/shelve-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/shelve-cli/internal/core/domain"
)

// line is one rendered row: either a category header or a move.
type line struct {
	text   string
	header bool
}

// View renders a plan and lets the user apply it.
type View struct {
	styles   *styles.Styles
	keys     *keymap.KeyMap
	plan     *domain.Plan
	lines    []line
	offset   int
	applying bool
	width    int
	height   int
}

// NewView creates a new preview view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles: s,
		keys:   keymap.DefaultKeyMap(),
		width:  80,
		height: 24,
	}
}

// SetPlan loads a plan into the view.
func (v *View) SetPlan(plan *domain.Plan) {
	v.plan = plan
	v.offset = 0
	v.applying = false
	v.lines = nil

	if plan == nil {
		return
	}

	grouped := plan.ByCategory()
	categories := make([]string, 0, len(grouped))
	for category := range grouped {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	for _, category := range categories {
		moves := grouped[category]
		v.lines = append(v.lines, line{
			text:   fmt.Sprintf("%s (%d)", category, len(moves)),
			header: true,
		})
		for _, move := range moves {
			text := fmt.Sprintf("  %s (%s)", filepath.Base(move.From), humanize.Bytes(uint64(move.Size)))
			if move.Renamed {
				text += " -> " + filepath.Base(move.To)
			}
			v.lines = append(v.lines, line{text: text})
		}
	}
}

// Init initialises the preview view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the preview view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case tea.KeyMsg:
		if v.applying {
			return v, nil
		}
		switch {
		case key.Matches(msg, v.keys.Up):
			if v.offset > 0 {
				v.offset--
			}
			return v, nil
		case key.Matches(msg, v.keys.Down):
			if v.offset < len(v.lines)-1 {
				v.offset++
			}
			return v, nil
		case key.Matches(msg, v.keys.Apply), key.Matches(msg, v.keys.Select):
			v.applying = true
			return v, func() tea.Msg {
				return messages.ApplyRequested{}
			}
		case key.Matches(msg, v.keys.Refresh):
			source := v.plan.SourceDir
			return v, func() tea.Msg {
				return messages.PlanRequested{SourceDir: source}
			}
		}
	}

	return v, nil
}

// View renders the preview.
func (v *View) View() string {
	if v.plan == nil {
		return v.styles.Muted.Render("No plan loaded.")
	}

	var b strings.Builder

	title := fmt.Sprintf("Preview: %d file(s), %s",
		len(v.plan.Moves), humanize.Bytes(uint64(v.plan.TotalBytes())))
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(v.plan.SourceDir))
	b.WriteString("\n\n")

	visible := v.height - 7
	if visible < 3 {
		visible = 3
	}

	end := v.offset + visible
	if end > len(v.lines) {
		end = len(v.lines)
	}

	for _, ln := range v.lines[v.offset:end] {
		if ln.header {
			b.WriteString(v.styles.Subtitle.Render(ln.text))
		} else {
			b.WriteString(v.styles.Normal.Render(ln.text))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if v.applying {
		b.WriteString(v.styles.Warning.Render("Applying..."))
	} else {
		b.WriteString(v.styles.Help.Render("a/enter apply · ↑/↓ scroll · r refresh · esc back · q quit"))
	}
	return b.String()
}
