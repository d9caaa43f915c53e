package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/shelve-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/shelve-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/shelve-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/shelve-cli/internal/adapters/driving/tui/views/picker"
	"github.com/custodia-labs/shelve-cli/internal/adapters/driving/tui/views/preview"
	"github.com/custodia-labs/shelve-cli/internal/adapters/driving/tui/views/summary"
	"github.com/custodia-labs/shelve-cli/internal/core/domain"
	"github.com/custodia-labs/shelve-cli/internal/core/ports/driving"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// keys holds the global keybindings.
	keys *keymap.KeyMap

	// pickerView selects the directory to organize.
	pickerView *picker.View

	// previewView shows the plan before applying.
	previewView *preview.View

	// summaryView shows the applied report.
	summaryView *summary.View

	// plan is the currently previewed plan.
	plan *domain.Plan

	// currentView tracks which view is active.
	currentView messages.ViewType

	// width and height are terminal dimensions.
	width  int
	height int
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
// initialDir pre-fills the directory picker.
func NewApp(ports *Ports, initialDir string) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keys:        keymap.DefaultKeyMap(),
		pickerView:  picker.NewView(s, initialDir),
		previewView: preview.NewView(s),
		summaryView: summary.NewView(s),
		currentView: messages.ViewPicker,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return a.pickerView.Init()
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// All views track dimensions
		a.pickerView, _ = a.pickerView.Update(msg)
		a.previewView, _ = a.previewView.Update(msg)
		a.summaryView, _ = a.summaryView.Update(msg)
		return a, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, a.keys.Quit):
			// "q" stays typeable while the picker has focus
			if msg.String() == "ctrl+c" || a.currentView != messages.ViewPicker {
				return a, tea.Quit
			}
		case key.Matches(msg, a.keys.Back):
			if a.currentView != messages.ViewPicker {
				a.currentView = messages.ViewPicker
				return a, nil
			}
		}

	case messages.PlanRequested:
		return a, a.planCmd(msg.SourceDir)

	case messages.PlanReady:
		if msg.Err != nil {
			// Route the error to the picker for display
			a.currentView = messages.ViewPicker
			a.pickerView, _ = a.pickerView.Update(msg)
			return a, nil
		}
		a.plan = msg.Plan
		a.previewView.SetPlan(msg.Plan)
		a.currentView = messages.ViewPreview
		return a, nil

	case messages.ApplyRequested:
		return a, a.applyCmd()

	case messages.ApplyCompleted:
		if msg.Err != nil {
			a.currentView = messages.ViewPicker
			a.pickerView, _ = a.pickerView.Update(messages.PlanReady{Err: msg.Err})
			return a, nil
		}
		a.summaryView.SetReport(msg.Report)
		a.currentView = messages.ViewSummary
		return a, nil
	}

	// Delegate remaining messages to the active view
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewPicker:
		a.pickerView, cmd = a.pickerView.Update(msg)
	case messages.ViewPreview:
		a.previewView, cmd = a.previewView.Update(msg)
	case messages.ViewSummary:
		a.summaryView, cmd = a.summaryView.Update(msg)
	}
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	switch a.currentView {
	case messages.ViewPreview:
		return a.previewView.View()
	case messages.ViewSummary:
		return a.summaryView.View()
	default:
		return a.pickerView.View()
	}
}

// planCmd computes a plan off the UI loop.
func (a *App) planCmd(sourceDir string) tea.Cmd {
	return func() tea.Msg {
		plan, err := a.ports.Organizer.Plan(a.ctx, sourceDir, "", driving.PlanOptions{})
		return messages.PlanReady{Plan: plan, Err: err}
	}
}

// applyCmd applies the current plan off the UI loop.
func (a *App) applyCmd() tea.Cmd {
	plan := a.plan
	return func() tea.Msg {
		if plan == nil {
			return messages.ApplyCompleted{Err: domain.ErrNothingToOrganize}
		}
		report, err := a.ports.Organizer.Apply(a.ctx, plan)
		return messages.ApplyCompleted{Report: report, Err: err}
	}
}
