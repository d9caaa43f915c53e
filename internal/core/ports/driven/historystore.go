package driven

import (
	"context"

	"github.com/custodia-labs/shelve-cli/internal/core/domain"
)

// HistoryStore persists applied batches and their moves.
// It is the record the undo operation replays in reverse.
type HistoryStore interface {
	// SaveBatch creates or updates a batch.
	SaveBatch(ctx context.Context, batch *domain.Batch) error

	// GetBatch retrieves a batch by ID.
	// Returns domain.ErrNotFound if the batch does not exist.
	GetBatch(ctx context.Context, batchID string) (*domain.Batch, error)

	// LastBatch returns the most recently finished batch that has
	// not been undone. Returns domain.ErrNotFound when none exists.
	LastBatch(ctx context.Context) (*domain.Batch, error)

	// ListBatches returns batches ordered most recent first,
	// up to limit. A limit of 0 means no limit.
	ListBatches(ctx context.Context, limit int) ([]domain.Batch, error)

	// SaveMove records a single applied move.
	SaveMove(ctx context.Context, move *domain.MoveRecord) error

	// ListMoves returns the moves of a batch in applied order.
	ListMoves(ctx context.Context, batchID string) ([]domain.MoveRecord, error)

	// MarkUndone flags a batch as reversed.
	// Returns domain.ErrNotFound if the batch does not exist.
	MarkUndone(ctx context.Context, batchID string) error

	// Close releases the underlying storage.
	Close() error
}
