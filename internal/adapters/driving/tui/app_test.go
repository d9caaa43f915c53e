package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/shelve-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/shelve-cli/internal/core/domain"
	"github.com/custodia-labs/shelve-cli/internal/core/ports/driving"
)

// mockOrganizer implements driving.Organizer for testing.
type mockOrganizer struct {
	plan     *domain.Plan
	planErr  error
	report   *domain.Report
	applyErr error
}

func (m *mockOrganizer) Plan(_ context.Context, sourceDir, destDir string, _ driving.PlanOptions) (*domain.Plan, error) {
	if m.planErr != nil {
		return nil, m.planErr
	}
	if m.plan != nil {
		return m.plan, nil
	}
	if destDir == "" {
		destDir = sourceDir
	}
	return &domain.Plan{
		SourceDir: sourceDir,
		DestDir:   destDir,
		Moves: []domain.PlannedMove{
			{From: sourceDir + "/photo.jpg", To: destDir + "/Images/photo.jpg", Category: "Images", Size: 2048},
		},
	}, nil
}

func (m *mockOrganizer) Apply(_ context.Context, plan *domain.Plan) (*domain.Report, error) {
	if m.applyErr != nil {
		return nil, m.applyErr
	}
	if m.report != nil {
		return m.report, nil
	}
	report := domain.NewReport("batch-123", false)
	for i := range plan.Moves {
		report.AddMove(plan.Moves[i].Category, plan.Moves[i].Size)
	}
	return report, nil
}

func (m *mockOrganizer) Preview(plan *domain.Plan) *domain.Report {
	report := domain.NewReport("", true)
	if plan == nil {
		return report
	}
	for i := range plan.Moves {
		report.AddMove(plan.Moves[i].Category, plan.Moves[i].Size)
	}
	return report
}

func newTestApp(t *testing.T, org driving.Organizer) *App {
	t.Helper()
	app, err := NewApp(&Ports{Organizer: org}, "/tmp/downloads")
	require.NoError(t, err)
	return app
}

func TestNewApp(t *testing.T) {
	t.Run("valid ports", func(t *testing.T) {
		app, err := NewApp(&Ports{Organizer: &mockOrganizer{}}, "")

		require.NoError(t, err)
		assert.NotNil(t, app)
		assert.Equal(t, messages.ViewPicker, app.currentView)
	})

	t.Run("missing organizer", func(t *testing.T) {
		app, err := NewApp(&Ports{}, "")

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMissingOrganizer)
		assert.Nil(t, app)
	})
}

func TestApp_PlanReadySwitchesToPreview(t *testing.T) {
	app := newTestApp(t, &mockOrganizer{})

	plan := &domain.Plan{
		SourceDir: "/tmp/downloads",
		DestDir:   "/tmp/downloads",
		Moves: []domain.PlannedMove{
			{From: "/tmp/downloads/a.jpg", To: "/tmp/downloads/Images/a.jpg", Category: "Images", Size: 1},
		},
	}
	model, _ := app.Update(messages.PlanReady{Plan: plan})

	app = model.(*App)
	assert.Equal(t, messages.ViewPreview, app.currentView)
	assert.Equal(t, plan, app.plan)
	assert.Contains(t, app.View(), "a.jpg")
}

func TestApp_PlanErrorStaysOnPicker(t *testing.T) {
	app := newTestApp(t, &mockOrganizer{})

	model, _ := app.Update(messages.PlanReady{Err: domain.ErrSourceMissing})

	app = model.(*App)
	assert.Equal(t, messages.ViewPicker, app.currentView)
}

func TestApp_PlanCmdReportsError(t *testing.T) {
	app := newTestApp(t, &mockOrganizer{planErr: domain.ErrNothingToOrganize})

	msg := app.planCmd("/tmp/empty")()

	ready, ok := msg.(messages.PlanReady)
	require.True(t, ok)
	assert.ErrorIs(t, ready.Err, domain.ErrNothingToOrganize)
}

func TestApp_ApplyCompletedSwitchesToSummary(t *testing.T) {
	app := newTestApp(t, &mockOrganizer{})

	report := domain.NewReport("batch-123", false)
	report.AddMove("Images", 2048)
	model, _ := app.Update(messages.ApplyCompleted{Report: report})

	app = model.(*App)
	assert.Equal(t, messages.ViewSummary, app.currentView)
	assert.Contains(t, app.View(), "Images")
}

func TestApp_ApplyCmdWithoutPlan(t *testing.T) {
	app := newTestApp(t, &mockOrganizer{})

	msg := app.applyCmd()()

	completed, ok := msg.(messages.ApplyCompleted)
	require.True(t, ok)
	assert.ErrorIs(t, completed.Err, domain.ErrNothingToOrganize)
}

func TestApp_ApplyCmdRunsOrganizer(t *testing.T) {
	app := newTestApp(t, &mockOrganizer{})
	app.plan = &domain.Plan{
		Moves: []domain.PlannedMove{
			{From: "/tmp/a.jpg", To: "/tmp/Images/a.jpg", Category: "Images", Size: 1},
		},
	}

	msg := app.applyCmd()()

	completed, ok := msg.(messages.ApplyCompleted)
	require.True(t, ok)
	require.NoError(t, completed.Err)
	assert.Equal(t, "batch-123", completed.Report.BatchID)
}

func TestApp_ApplyErrorReturnsToPicker(t *testing.T) {
	app := newTestApp(t, &mockOrganizer{})
	app.currentView = messages.ViewPreview

	model, _ := app.Update(messages.ApplyCompleted{Err: errors.New("disk full")})

	app = model.(*App)
	assert.Equal(t, messages.ViewPicker, app.currentView)
}

func TestApp_EscReturnsToPicker(t *testing.T) {
	app := newTestApp(t, &mockOrganizer{})
	app.currentView = messages.ViewPreview

	model, _ := app.Update(tea.KeyMsg{Type: tea.KeyEsc})

	app = model.(*App)
	assert.Equal(t, messages.ViewPicker, app.currentView)
}

func TestApp_QuitOutsidePicker(t *testing.T) {
	app := newTestApp(t, &mockOrganizer{})
	app.currentView = messages.ViewSummary

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
