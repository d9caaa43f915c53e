// Package tui provides an interactive terminal user interface for shelve.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/shelve-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Organizer plans and applies organize passes.
	Organizer driving.Organizer

	// History lists applied batches.
	History driving.HistoryService

	// Rules exposes the active category rules.
	Rules driving.RulesService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Organizer == nil {
		return ErrMissingOrganizer
	}
	// History and Rules are optional for the preview/apply flow
	return nil
}
