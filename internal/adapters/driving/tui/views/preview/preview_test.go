package preview

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/shelve-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/shelve-cli/internal/core/domain"
)

func testPlan() *domain.Plan {
	return &domain.Plan{
		SourceDir: "/tmp/downloads",
		DestDir:   "/tmp/downloads",
		Moves: []domain.PlannedMove{
			{From: "/tmp/downloads/song.mp3", To: "/tmp/downloads/Music/song.mp3", Category: "Music", Size: 4096},
			{From: "/tmp/downloads/photo.jpg", To: "/tmp/downloads/Images/photo.jpg", Category: "Images", Size: 2048},
			{From: "/tmp/downloads/copy.jpg", To: "/tmp/downloads/Images/copy_20250101_120000.jpg", Category: "Images", Size: 1024, Renamed: true},
		},
	}
}

func TestSetPlan_GroupsByCategory(t *testing.T) {
	v := NewView(nil)
	v.SetPlan(testPlan())

	out := v.View()

	assert.Contains(t, out, "Preview: 3 file(s)")
	assert.Contains(t, out, "Images (2)")
	assert.Contains(t, out, "Music (1)")
	// Categories render alphabetically
	assert.Less(t, strings.Index(out, "Images"), strings.Index(out, "Music"))
}

func TestSetPlan_ShowsRenamedDestination(t *testing.T) {
	v := NewView(nil)
	v.SetPlan(testPlan())

	out := v.View()

	assert.Contains(t, out, "copy.jpg")
	assert.Contains(t, out, "copy_20250101_120000.jpg")
}

func TestView_NoPlan(t *testing.T) {
	v := NewView(nil)

	assert.Contains(t, v.View(), "No plan loaded.")
}

func TestUpdate_ApplyRequestsApply(t *testing.T) {
	v := NewView(nil)
	v.SetPlan(testPlan())

	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})

	require.NotNil(t, cmd)
	_, ok := cmd().(messages.ApplyRequested)
	assert.True(t, ok)
	assert.Contains(t, v.View(), "Applying...")
}

func TestUpdate_IgnoresKeysWhileApplying(t *testing.T) {
	v := NewView(nil)
	v.SetPlan(testPlan())
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
}

func TestUpdate_Scroll(t *testing.T) {
	v := NewView(nil)
	v.SetPlan(testPlan())

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, 1, v.offset)

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, 0, v.offset)

	// Never scrolls above the first line
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, 0, v.offset)
}
