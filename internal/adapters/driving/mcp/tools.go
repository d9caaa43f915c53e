package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/shelve-cli/internal/core/domain"
	"github.com/custodia-labs/shelve-cli/internal/core/ports/driving"
)

// OrganizeInput is the input schema for the organize tools.
type OrganizeInput struct {
	Source        string `json:"source" jsonschema:"the directory to organize"`
	Destination   string `json:"destination,omitempty" jsonschema:"destination directory (defaults to source)"`
	IncludeHidden bool   `json:"include_hidden,omitempty" jsonschema:"also organize dotfiles"`
}

// MoveOutput describes a single planned or applied move.
type MoveOutput struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Category string `json:"category"`
	Size     int64  `json:"size"`
}

// OrganizeOutput is the output schema for the organize tools.
type OrganizeOutput struct {
	BatchID     string         `json:"batch_id,omitempty"`
	DryRun      bool           `json:"dry_run"`
	Moves       []MoveOutput   `json:"moves"`
	PerCategory map[string]int `json:"per_category"`
	Errors      []string       `json:"errors,omitempty"`
}

// HistoryInput is the input schema for the list_history tool.
type HistoryInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of batches to return (default 10)"`
}

// BatchOutput describes one recorded batch.
type BatchOutput struct {
	ID         string `json:"id"`
	SourceDir  string `json:"source_dir"`
	DestDir    string `json:"dest_dir"`
	FinishedAt string `json:"finished_at"`
	MoveCount  int    `json:"move_count"`
	ErrorCount int    `json:"error_count"`
	Undone     bool   `json:"undone"`
}

// HistoryOutput is the output schema for the list_history tool.
type HistoryOutput struct {
	Batches []BatchOutput `json:"batches"`
	Count   int           `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "organize_preview",
		Description: "Preview how files in a directory would be organized into category folders",
	}, s.handlePreview)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "organize_apply",
		Description: "Organize files in a directory into category folders",
	}, s.handleApply)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_history",
		Description: "List recorded organize batches",
	}, s.handleHistory)
}

// handlePreview plans an organize pass without applying it.
func (s *Server) handlePreview(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input OrganizeInput,
) (*mcp.CallToolResult, OrganizeOutput, error) {
	plan, err := s.plan(ctx, input)
	if err != nil {
		if errors.Is(err, domain.ErrNothingToOrganize) {
			return nil, OrganizeOutput{DryRun: true, PerCategory: map[string]int{}}, nil
		}
		return nil, OrganizeOutput{}, err
	}

	report := s.ports.Organizer.Preview(plan)
	return nil, buildOutput(plan, report), nil
}

// handleApply plans and applies an organize pass.
func (s *Server) handleApply(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input OrganizeInput,
) (*mcp.CallToolResult, OrganizeOutput, error) {
	plan, err := s.plan(ctx, input)
	if err != nil {
		if errors.Is(err, domain.ErrNothingToOrganize) {
			return nil, OrganizeOutput{PerCategory: map[string]int{}}, nil
		}
		return nil, OrganizeOutput{}, err
	}

	report, err := s.ports.Organizer.Apply(ctx, plan)
	if err != nil {
		return nil, OrganizeOutput{}, err
	}
	return nil, buildOutput(plan, report), nil
}

// handleHistory lists recorded batches.
func (s *Server) handleHistory(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input HistoryInput,
) (*mcp.CallToolResult, HistoryOutput, error) {
	if s.ports.History == nil {
		return nil, HistoryOutput{}, errors.New("history is not available")
	}

	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}

	batches, err := s.ports.History.ListBatches(ctx, limit)
	if err != nil {
		return nil, HistoryOutput{}, err
	}

	output := HistoryOutput{
		Batches: make([]BatchOutput, len(batches)),
		Count:   len(batches),
	}
	for i := range batches {
		output.Batches[i] = BatchOutput{
			ID:         batches[i].ID,
			SourceDir:  batches[i].SourceDir,
			DestDir:    batches[i].DestDir,
			FinishedAt: batches[i].FinishedAt.Format("2006-01-02T15:04:05Z07:00"),
			MoveCount:  batches[i].MoveCount,
			ErrorCount: batches[i].ErrorCount,
			Undone:     batches[i].Undone,
		}
	}
	return nil, output, nil
}

func (s *Server) plan(ctx context.Context, input OrganizeInput) (*domain.Plan, error) {
	opts := driving.PlanOptions{IncludeHidden: input.IncludeHidden}
	return s.ports.Organizer.Plan(ctx, input.Source, input.Destination, opts)
}

func buildOutput(plan *domain.Plan, report *domain.Report) OrganizeOutput {
	output := OrganizeOutput{
		BatchID:     report.BatchID,
		DryRun:      report.DryRun,
		Moves:       make([]MoveOutput, len(plan.Moves)),
		PerCategory: report.PerCategory,
	}
	for i := range plan.Moves {
		output.Moves[i] = MoveOutput{
			From:     plan.Moves[i].From,
			To:       plan.Moves[i].To,
			Category: plan.Moves[i].Category,
			Size:     plan.Moves[i].Size,
		}
	}
	for _, e := range report.Errors {
		output.Errors = append(output.Errors, e.File+": "+e.Message)
	}
	return output
}
