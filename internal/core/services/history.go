package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/shelve-cli/internal/core/domain"
	"github.com/custodia-labs/shelve-cli/internal/core/ports/driven"
	"github.com/custodia-labs/shelve-cli/internal/core/ports/driving"
	"github.com/custodia-labs/shelve-cli/internal/logger"
)

// Ensure History implements the interface.
var _ driving.HistoryService = (*History)(nil)

// History exposes applied batches and undo.
type History struct {
	store driven.HistoryStore
}

// NewHistory creates a history service.
func NewHistory(store driven.HistoryStore) *History {
	return &History{store: store}
}

// ListBatches returns recent batches, most recent first.
func (h *History) ListBatches(ctx context.Context, limit int) ([]domain.Batch, error) {
	return h.store.ListBatches(ctx, limit)
}

// GetBatch retrieves a batch and its moves.
func (h *History) GetBatch(ctx context.Context, batchID string) (*domain.Batch, []domain.MoveRecord, error) {
	batch, err := h.store.GetBatch(ctx, batchID)
	if err != nil {
		return nil, nil, err
	}
	moves, err := h.store.ListMoves(ctx, batchID)
	if err != nil {
		return nil, nil, err
	}
	return batch, moves, nil
}

// Undo reverses a batch by moving each recorded file back.
// Files that vanished from their destination, or whose original path
// is occupied again, are skipped and reported.
func (h *History) Undo(ctx context.Context, batchID string) (*driving.UndoResult, error) {
	var batch *domain.Batch
	var err error

	if batchID == "" {
		batch, err = h.store.LastBatch(ctx)
	} else {
		batch, err = h.store.GetBatch(ctx, batchID)
	}
	if err != nil {
		return nil, err
	}
	if batch.Undone {
		return nil, domain.ErrBatchUndone
	}

	moves, err := h.store.ListMoves(ctx, batch.ID)
	if err != nil {
		return nil, fmt.Errorf("listing moves: %w", err)
	}

	result := &driving.UndoResult{BatchID: batch.ID}
	touched := make(map[string]bool)

	for i := range moves {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		move := moves[i]
		name := filepath.Base(move.To)

		if !fileExists(move.To) {
			result.Skipped = append(result.Skipped, domain.MoveError{
				File: name, Message: "no longer at destination",
			})
			continue
		}
		if fileExists(move.From) {
			result.Skipped = append(result.Skipped, domain.MoveError{
				File: name, Message: "original path occupied",
			})
			continue
		}

		if err := moveFile(move.To, move.From); err != nil {
			result.Skipped = append(result.Skipped, domain.MoveError{
				File: name, Message: err.Error(),
			})
			continue
		}
		logger.Debug("restored %s -> %s", move.To, move.From)
		result.Restored++
		touched[filepath.Dir(move.To)] = true
	}

	// Category folders the undo emptied are not worth keeping around.
	for dir := range touched {
		removeIfEmpty(dir)
	}

	if err := h.store.MarkUndone(ctx, batch.ID); err != nil {
		return result, fmt.Errorf("marking batch undone: %w", err)
	}

	logger.Info("undid batch %s: %d restored, %d skipped", batch.ID, result.Restored, len(result.Skipped))
	return result, nil
}

// removeIfEmpty removes a directory when it contains no entries.
func removeIfEmpty(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) > 0 {
		return
	}
	if err := os.Remove(dir); err != nil {
		logger.Warn("removing empty category dir %s: %v", dir, err)
	}
}
