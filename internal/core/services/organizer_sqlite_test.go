package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/shelve-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/shelve-cli/internal/core/ports/driving"
)

// Applies a pass against the real store so the batch/move foreign key
// relation is exercised, not just the in-memory double.
func TestOrganizer_Apply_SQLiteStore(t *testing.T) {
	ctx := context.Background()

	store, err := sqlite.NewStore(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	dir := t.TempDir()
	writeFile(t, dir, "photo.jpg", "image-bytes")
	writeFile(t, dir, "report.pdf", "pdf-bytes")

	org := NewOrganizer(&stubRules{}, store)
	plan, err := org.Plan(ctx, dir, "", driving.PlanOptions{})
	require.NoError(t, err)

	report, err := org.Apply(ctx, plan)
	require.NoError(t, err)
	require.Equal(t, 2, report.Moved)
	require.Empty(t, report.Errors)

	batch, err := store.GetBatch(ctx, report.BatchID)
	require.NoError(t, err)
	assert.Equal(t, 2, batch.MoveCount)
	assert.Equal(t, 0, batch.ErrorCount)

	moves, err := store.ListMoves(ctx, report.BatchID)
	require.NoError(t, err)
	require.Len(t, moves, 2)
	for _, move := range moves {
		assert.Equal(t, report.BatchID, move.BatchID)
		assert.FileExists(t, move.To)
	}
}

func TestHistory_Undo_SQLiteStore(t *testing.T) {
	ctx := context.Background()

	store, err := sqlite.NewStore(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	dir := t.TempDir()
	writeFile(t, dir, "song.mp3", "audio-bytes")

	org := NewOrganizer(&stubRules{}, store)
	plan, err := org.Plan(ctx, dir, "", driving.PlanOptions{})
	require.NoError(t, err)
	report, err := org.Apply(ctx, plan)
	require.NoError(t, err)

	history := NewHistory(store)
	result, err := history.Undo(ctx, "")
	require.NoError(t, err)

	assert.Equal(t, report.BatchID, result.BatchID)
	assert.Equal(t, 1, result.Restored)
	assert.Empty(t, result.Skipped)
	assert.FileExists(t, filepath.Join(dir, "song.mp3"))
	assert.NoFileExists(t, filepath.Join(dir, "Music", "song.mp3"))

	_, err = os.Stat(filepath.Join(dir, "Music"))
	assert.True(t, os.IsNotExist(err))
}
