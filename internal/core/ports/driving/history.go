package driving

import (
	"context"

	"github.com/custodia-labs/shelve-cli/internal/core/domain"
)

// UndoResult reports the outcome of reversing a batch.
type UndoResult struct {
	// BatchID is the batch that was reversed.
	BatchID string

	// Restored is the number of files moved back.
	Restored int

	// Skipped lists files that could not be moved back, with reasons.
	Skipped []domain.MoveError
}

// HistoryService exposes applied batches and the undo operation.
type HistoryService interface {
	// ListBatches returns recent batches, most recent first.
	ListBatches(ctx context.Context, limit int) ([]domain.Batch, error)

	// GetBatch retrieves a batch and its moves.
	GetBatch(ctx context.Context, batchID string) (*domain.Batch, []domain.MoveRecord, error)

	// Undo reverses a batch. An empty batchID reverses the most
	// recent batch that has not been undone.
	Undo(ctx context.Context, batchID string) (*UndoResult, error)
}
