package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/shelve-cli/internal/core/domain"
	"github.com/custodia-labs/shelve-cli/internal/core/ports/driven"
)

// Ensure HistoryStore implements the interface.
var _ driven.HistoryStore = (*HistoryStore)(nil)

// HistoryStore is an in-memory implementation of driven.HistoryStore.
type HistoryStore struct {
	mu      sync.RWMutex
	batches map[string]domain.Batch
	moves   map[string][]domain.MoveRecord
}

// NewHistoryStore creates a new in-memory history store.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{
		batches: make(map[string]domain.Batch),
		moves:   make(map[string][]domain.MoveRecord),
	}
}

// SaveBatch creates or updates a batch.
func (s *HistoryStore) SaveBatch(_ context.Context, batch *domain.Batch) error {
	if batch == nil || batch.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches[batch.ID] = *batch
	return nil
}

// GetBatch retrieves a batch by ID.
func (s *HistoryStore) GetBatch(_ context.Context, batchID string) (*domain.Batch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	batch, ok := s.batches[batchID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &batch, nil
}

// LastBatch returns the most recently finished batch not yet undone.
func (s *HistoryStore) LastBatch(_ context.Context) (*domain.Batch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var last *domain.Batch
	for id := range s.batches {
		batch := s.batches[id]
		if batch.Undone {
			continue
		}
		if last == nil || batch.FinishedAt.After(last.FinishedAt) {
			last = &batch
		}
	}
	if last == nil {
		return nil, domain.ErrNotFound
	}
	return last, nil
}

// ListBatches returns batches ordered most recent first.
func (s *HistoryStore) ListBatches(_ context.Context, limit int) ([]domain.Batch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	batches := make([]domain.Batch, 0, len(s.batches))
	for id := range s.batches {
		batches = append(batches, s.batches[id])
	}
	sort.Slice(batches, func(i, j int) bool {
		return batches[i].FinishedAt.After(batches[j].FinishedAt)
	})

	if limit > 0 && len(batches) > limit {
		batches = batches[:limit]
	}
	return batches, nil
}

// SaveMove records a single applied move.
func (s *HistoryStore) SaveMove(_ context.Context, move *domain.MoveRecord) error {
	if move == nil || move.BatchID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.moves[move.BatchID] = append(s.moves[move.BatchID], *move)
	return nil
}

// ListMoves returns the moves of a batch in applied order.
func (s *HistoryStore) ListMoves(_ context.Context, batchID string) ([]domain.MoveRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	moves := make([]domain.MoveRecord, len(s.moves[batchID]))
	copy(moves, s.moves[batchID])
	return moves, nil
}

// MarkUndone flags a batch as reversed.
func (s *HistoryStore) MarkUndone(_ context.Context, batchID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	batch, ok := s.batches[batchID]
	if !ok {
		return domain.ErrNotFound
	}
	batch.Undone = true
	s.batches[batchID] = batch
	return nil
}

// Close is a no-op for the in-memory store.
func (s *HistoryStore) Close() error {
	return nil
}
