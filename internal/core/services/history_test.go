package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/shelve-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/shelve-cli/internal/core/domain"
	"github.com/custodia-labs/shelve-cli/internal/core/ports/driving"
)

// organizeFixture applies one pass over a temp dir and returns the
// source dir, the store, and the applied report.
func organizeFixture(t *testing.T, names ...string) (string, *memory.HistoryStore, *domain.Report) {
	t.Helper()
	ctx := context.Background()

	dir := t.TempDir()
	for _, name := range names {
		writeFile(t, dir, name, "content")
	}

	store := memory.NewHistoryStore()
	org := NewOrganizer(&stubRules{}, store)

	plan, err := org.Plan(ctx, dir, "", driving.PlanOptions{})
	require.NoError(t, err)
	report, err := org.Apply(ctx, plan)
	require.NoError(t, err)

	return dir, store, report
}

func TestHistory_Undo(t *testing.T) {
	ctx := context.Background()

	t.Run("restores files to their original paths", func(t *testing.T) {
		dir, store, report := organizeFixture(t, "photo.jpg", "song.mp3")
		history := NewHistory(store)

		result, err := history.Undo(ctx, report.BatchID)
		require.NoError(t, err)

		assert.Equal(t, 2, result.Restored)
		assert.Empty(t, result.Skipped)
		assert.FileExists(t, filepath.Join(dir, "photo.jpg"))
		assert.FileExists(t, filepath.Join(dir, "song.mp3"))
		assert.NoDirExists(t, filepath.Join(dir, "Images"))
		assert.NoDirExists(t, filepath.Join(dir, "Music"))
	})

	t.Run("empty batch id undoes the last batch", func(t *testing.T) {
		dir, store, report := organizeFixture(t, "photo.jpg")
		history := NewHistory(store)

		result, err := history.Undo(ctx, "")
		require.NoError(t, err)

		assert.Equal(t, report.BatchID, result.BatchID)
		assert.FileExists(t, filepath.Join(dir, "photo.jpg"))
	})

	t.Run("a batch can only be undone once", func(t *testing.T) {
		_, store, report := organizeFixture(t, "photo.jpg")
		history := NewHistory(store)

		_, err := history.Undo(ctx, report.BatchID)
		require.NoError(t, err)

		_, err = history.Undo(ctx, report.BatchID)
		assert.ErrorIs(t, err, domain.ErrBatchUndone)
	})

	t.Run("skips files that vanished from the destination", func(t *testing.T) {
		dir, store, report := organizeFixture(t, "photo.jpg")
		require.NoError(t, os.Remove(filepath.Join(dir, "Images", "photo.jpg")))

		history := NewHistory(store)
		result, err := history.Undo(ctx, report.BatchID)
		require.NoError(t, err)

		assert.Equal(t, 0, result.Restored)
		require.Len(t, result.Skipped, 1)
		assert.Contains(t, result.Skipped[0].Message, "no longer at destination")
	})

	t.Run("skips files whose original path is occupied", func(t *testing.T) {
		dir, store, report := organizeFixture(t, "photo.jpg")
		writeFile(t, dir, "photo.jpg", "someone else")

		history := NewHistory(store)
		result, err := history.Undo(ctx, report.BatchID)
		require.NoError(t, err)

		assert.Equal(t, 0, result.Restored)
		require.Len(t, result.Skipped, 1)
		assert.Contains(t, result.Skipped[0].Message, "occupied")
		// The moved copy stays where it is
		assert.FileExists(t, filepath.Join(dir, "Images", "photo.jpg"))
	})

	t.Run("nothing to undo returns ErrNotFound", func(t *testing.T) {
		history := NewHistory(memory.NewHistoryStore())
		_, err := history.Undo(ctx, "")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestHistory_ListBatches(t *testing.T) {
	ctx := context.Background()
	_, store, report := organizeFixture(t, "photo.jpg")
	history := NewHistory(store)

	batches, err := history.ListBatches(ctx, 10)
	require.NoError(t, err)

	require.Len(t, batches, 1)
	assert.Equal(t, report.BatchID, batches[0].ID)
}

func TestHistory_GetBatch(t *testing.T) {
	ctx := context.Background()
	_, store, report := organizeFixture(t, "photo.jpg", "song.mp3")
	history := NewHistory(store)

	batch, moves, err := history.GetBatch(ctx, report.BatchID)
	require.NoError(t, err)

	assert.Equal(t, report.BatchID, batch.ID)
	assert.Len(t, moves, 2)
}
