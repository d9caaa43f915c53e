package cli

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/shelve-cli/internal/core/domain"
	"github.com/custodia-labs/shelve-cli/internal/core/ports/driving"
)

// mockHistory implements driving.HistoryService for testing.
type mockHistory struct {
	batches []domain.Batch
	moves   []domain.MoveRecord
	listErr error
	getErr  error

	undoResult *driving.UndoResult
	undoErr    error
	undoneID   string
}

func (m *mockHistory) ListBatches(_ context.Context, limit int) ([]domain.Batch, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	if limit > 0 && limit < len(m.batches) {
		return m.batches[:limit], nil
	}
	return m.batches, nil
}

func (m *mockHistory) GetBatch(_ context.Context, batchID string) (*domain.Batch, []domain.MoveRecord, error) {
	if m.getErr != nil {
		return nil, nil, m.getErr
	}
	for i := range m.batches {
		if m.batches[i].ID == batchID {
			return &m.batches[i], m.moves, nil
		}
	}
	return nil, nil, domain.ErrNotFound
}

func (m *mockHistory) Undo(_ context.Context, batchID string) (*driving.UndoResult, error) {
	m.undoneID = batchID
	if m.undoErr != nil {
		return nil, m.undoErr
	}
	if m.undoResult != nil {
		return m.undoResult, nil
	}
	return &driving.UndoResult{BatchID: batchID, Restored: 3}, nil
}

func setupHistoryTest(history driving.HistoryService) func() {
	oldHistory := historyService
	historyService = history
	return func() {
		historyService = oldHistory
	}
}

func testBatch(id string) domain.Batch {
	return domain.Batch{
		ID:         id,
		SourceDir:  "/tmp/downloads",
		DestDir:    "/tmp/downloads",
		StartedAt:  time.Now().Add(-time.Minute),
		FinishedAt: time.Now(),
		MoveCount:  3,
	}
}

func TestUndoCmd_Use(t *testing.T) {
	assert.Equal(t, "undo [batch-id]", undoCmd.Use)
}

func TestUndoCmd_RestoresLastBatch(t *testing.T) {
	history := &mockHistory{
		undoResult: &driving.UndoResult{BatchID: "abcdef12-3456", Restored: 2},
	}
	cleanup := setupHistoryTest(history)
	defer cleanup()

	out, err := execute(t, "undo", "--yes")
	defer func() { undoYes = false }()

	require.NoError(t, err)
	assert.Empty(t, history.undoneID)
	assert.Contains(t, out, "Restored 2 file(s) from batch abcdef12.")
}

func TestUndoCmd_SpecificBatch(t *testing.T) {
	history := &mockHistory{}
	cleanup := setupHistoryTest(history)
	defer cleanup()

	_, err := execute(t, "undo", "batch-42", "--yes")
	defer func() { undoYes = false }()

	require.NoError(t, err)
	assert.Equal(t, "batch-42", history.undoneID)
}

func TestUndoCmd_ReportsSkipped(t *testing.T) {
	history := &mockHistory{
		undoResult: &driving.UndoResult{
			BatchID:  "abcdef12-3456",
			Restored: 1,
			Skipped: []domain.MoveError{
				{File: "photo.jpg", Message: "no longer at destination"},
			},
		},
	}
	cleanup := setupHistoryTest(history)
	defer cleanup()

	out, err := execute(t, "undo", "--yes")
	defer func() { undoYes = false }()

	require.NoError(t, err)
	assert.Contains(t, out, "Skipped 1 file(s):")
	assert.Contains(t, out, "photo.jpg: no longer at destination")
}

func TestUndoCmd_NothingToUndo(t *testing.T) {
	cleanup := setupHistoryTest(&mockHistory{undoErr: domain.ErrNotFound})
	defer cleanup()

	out, err := execute(t, "undo", "--yes")
	defer func() { undoYes = false }()

	require.NoError(t, err)
	assert.Contains(t, out, "Nothing to undo.")
}

func TestUndoCmd_AlreadyUndone(t *testing.T) {
	cleanup := setupHistoryTest(&mockHistory{undoErr: domain.ErrBatchUndone})
	defer cleanup()

	_, err := execute(t, "undo", "batch-42", "--yes")
	defer func() { undoYes = false }()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "already been undone")
}

func TestUndoCmd_UndoError(t *testing.T) {
	cleanup := setupHistoryTest(&mockHistory{undoErr: errors.New("database locked")})
	defer cleanup()

	_, err := execute(t, "undo", "--yes")
	defer func() { undoYes = false }()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "undo failed")
}

func TestUndoCmd_NotConfigured(t *testing.T) {
	cleanup := setupHistoryTest(nil)
	defer cleanup()

	_, err := execute(t, "undo", "--yes")
	defer func() { undoYes = false }()

	assert.Error(t, err)
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "abcdef12", shortID("abcdef12-3456-7890"))
	assert.Equal(t, "short", shortID("short"))
}
