// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/shelve-cli/internal/core/domain"
)

// PlanRequested is a command to compute a plan for a directory.
type PlanRequested struct {
	SourceDir string
}

// PlanReady carries a computed plan back to the model.
type PlanReady struct {
	Plan *domain.Plan
	Err  error
}

// ApplyRequested is a command to apply the current plan.
type ApplyRequested struct{}

// ApplyCompleted carries the report of an applied plan.
type ApplyCompleted struct {
	Report *domain.Report
	Err    error
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewPicker is the source directory selection view.
	ViewPicker ViewType = iota
	// ViewPreview shows the planned moves before applying.
	ViewPreview
	// ViewSummary shows the report of an applied pass.
	ViewSummary
)
