package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/shelve-cli/internal/core/domain"
	"github.com/custodia-labs/shelve-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.HistoryStore = (*Store)(nil)

// SaveBatch creates or updates a batch.
func (s *Store) SaveBatch(ctx context.Context, batch *domain.Batch) error {
	if batch == nil || batch.ID == "" {
		return domain.ErrInvalidInput
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO batches (id, source_dir, dest_dir, started_at, finished_at, move_count, error_count, undone)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			source_dir = excluded.source_dir,
			dest_dir = excluded.dest_dir,
			started_at = excluded.started_at,
			finished_at = excluded.finished_at,
			move_count = excluded.move_count,
			error_count = excluded.error_count,
			undone = excluded.undone
	`, batch.ID, batch.SourceDir, batch.DestDir,
		formatTime(batch.StartedAt), formatTime(batch.FinishedAt),
		batch.MoveCount, batch.ErrorCount, boolToInt(batch.Undone))

	if err != nil {
		return fmt.Errorf("saving batch: %w", err)
	}
	return nil
}

// GetBatch retrieves a batch by ID.
func (s *Store) GetBatch(ctx context.Context, batchID string) (*domain.Batch, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, source_dir, dest_dir, started_at, finished_at, move_count, error_count, undone
		FROM batches WHERE id = ?
	`, batchID)

	return scanBatch(row)
}

// LastBatch returns the most recently finished batch not yet undone.
func (s *Store) LastBatch(ctx context.Context) (*domain.Batch, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, source_dir, dest_dir, started_at, finished_at, move_count, error_count, undone
		FROM batches WHERE undone = 0
		ORDER BY finished_at DESC LIMIT 1
	`)

	return scanBatch(row)
}

// ListBatches returns batches ordered most recent first.
func (s *Store) ListBatches(ctx context.Context, limit int) ([]domain.Batch, error) {
	query := `
		SELECT id, source_dir, dest_dir, started_at, finished_at, move_count, error_count, undone
		FROM batches ORDER BY finished_at DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying batches: %w", err)
	}
	defer rows.Close()

	var batches []domain.Batch //nolint:prealloc // size unknown from query
	for rows.Next() {
		batch, err := scanBatchRows(rows)
		if err != nil {
			return nil, err
		}
		batches = append(batches, *batch)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating batches: %w", err)
	}

	return batches, nil
}

// SaveMove records a single applied move.
func (s *Store) SaveMove(ctx context.Context, move *domain.MoveRecord) error {
	if move == nil || move.ID == "" || move.BatchID == "" {
		return domain.ErrInvalidInput
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO moves (id, batch_id, from_path, to_path, category, size, moved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, move.ID, move.BatchID, move.From, move.To, move.Category, move.Size, formatTime(move.MovedAt))

	if err != nil {
		return fmt.Errorf("saving move: %w", err)
	}
	return nil
}

// ListMoves returns the moves of a batch in applied order.
func (s *Store) ListMoves(ctx context.Context, batchID string) ([]domain.MoveRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, batch_id, from_path, to_path, category, size, moved_at
		FROM moves WHERE batch_id = ?
		ORDER BY moved_at, id
	`, batchID)
	if err != nil {
		return nil, fmt.Errorf("querying moves: %w", err)
	}
	defer rows.Close()

	var moves []domain.MoveRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		var move domain.MoveRecord
		var movedAt string
		if err := rows.Scan(&move.ID, &move.BatchID, &move.From, &move.To,
			&move.Category, &move.Size, &movedAt); err != nil {
			return nil, fmt.Errorf("scanning move: %w", err)
		}
		move.MovedAt = parseTime(movedAt)
		moves = append(moves, move)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating moves: %w", err)
	}

	return moves, nil
}

// MarkUndone flags a batch as reversed.
func (s *Store) MarkUndone(ctx context.Context, batchID string) error {
	result, err := s.db.ExecContext(ctx, "UPDATE batches SET undone = 1 WHERE id = ?", batchID)
	if err != nil {
		return fmt.Errorf("marking batch undone: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// rowScanner abstracts sql.Row and sql.Rows for shared scanning.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanBatch(row *sql.Row) (*domain.Batch, error) {
	batch, err := scanBatchFrom(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return batch, err
}

func scanBatchRows(rows *sql.Rows) (*domain.Batch, error) {
	return scanBatchFrom(rows)
}

func scanBatchFrom(scanner rowScanner) (*domain.Batch, error) {
	var batch domain.Batch
	var startedAt, finishedAt string
	var undone int

	err := scanner.Scan(&batch.ID, &batch.SourceDir, &batch.DestDir,
		&startedAt, &finishedAt, &batch.MoveCount, &batch.ErrorCount, &undone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning batch: %w", err)
	}

	batch.StartedAt = parseTime(startedAt)
	batch.FinishedAt = parseTime(finishedAt)
	batch.Undone = undone != 0
	return &batch, nil
}

// formatTime formats a time as RFC3339 in UTC for storage.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// parseTime parses a stored RFC3339 timestamp. Unparseable values
// yield the zero time.
func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
