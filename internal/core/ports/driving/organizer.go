package driving

import (
	"context"

	"github.com/custodia-labs/shelve-cli/internal/core/domain"
)

// PlanOptions control how an organize plan is computed.
type PlanOptions struct {
	// IncludeHidden includes dotfiles in the plan.
	IncludeHidden bool
}

// Organizer plans and applies organize passes over a directory.
type Organizer interface {
	// Plan computes the moves for organizing sourceDir into destDir.
	// An empty destDir means organize in place.
	// Returns domain.ErrSourceMissing if sourceDir does not exist and
	// domain.ErrNothingToOrganize if no files qualify.
	Plan(ctx context.Context, sourceDir, destDir string, opts PlanOptions) (*domain.Plan, error)

	// Apply executes a plan, recording the moves as a batch.
	// Per-file failures are collected in the report, not returned
	// as an error.
	Apply(ctx context.Context, plan *domain.Plan) (*domain.Report, error)

	// Preview returns the report a plan would produce without
	// moving anything.
	Preview(plan *domain.Plan) *domain.Report
}
