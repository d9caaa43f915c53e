package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/shelve-cli/internal/core/domain"
	"github.com/custodia-labs/shelve-cli/internal/core/ports/driven"
	"github.com/custodia-labs/shelve-cli/internal/core/ports/driving"
	"github.com/custodia-labs/shelve-cli/internal/logger"
)

// Ensure Organizer implements the interface.
var _ driving.Organizer = (*Organizer)(nil)

// applyWorkers bounds the number of concurrent file moves.
const applyWorkers = 4

// Organizer plans and applies organize passes.
type Organizer struct {
	rules   driving.RulesService
	history driven.HistoryStore

	// now is replaceable for tests of collision naming.
	now func() time.Time
}

// NewOrganizer creates an organizer. The history store is optional;
// when nil, applied batches are not recorded and undo is unavailable.
func NewOrganizer(rules driving.RulesService, history driven.HistoryStore) *Organizer {
	return &Organizer{
		rules:   rules,
		history: history,
		now:     time.Now,
	}
}

// Plan computes the moves for organizing sourceDir into destDir.
func (o *Organizer) Plan(
	ctx context.Context,
	sourceDir, destDir string,
	opts driving.PlanOptions,
) (*domain.Plan, error) {
	sourceDir, err := filepath.Abs(sourceDir)
	if err != nil {
		return nil, fmt.Errorf("resolving source: %w", err)
	}

	if destDir == "" {
		destDir = sourceDir
	} else if destDir, err = filepath.Abs(destDir); err != nil {
		return nil, fmt.Errorf("resolving destination: %w", err)
	}

	info, err := os.Stat(sourceDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrSourceMissing
		}
		return nil, fmt.Errorf("checking source: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", domain.ErrInvalidInput, sourceDir)
	}

	ruleSet, err := o.rules.Rules()
	if err != nil {
		return nil, fmt.Errorf("loading rules: %w", err)
	}

	entries, err := os.ReadDir(sourceDir)
	if err != nil {
		return nil, fmt.Errorf("reading source: %w", err)
	}

	plan := &domain.Plan{
		SourceDir: sourceDir,
		DestDir:   destDir,
		CreatedAt: o.now(),
	}

	// Destinations claimed by earlier moves in this plan. A second
	// file landing on the same name must also be renamed.
	claimed := make(map[string]bool)

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !entry.Type().IsRegular() {
			continue
		}

		name := entry.Name()
		if !opts.IncludeHidden && strings.HasPrefix(name, ".") {
			logger.Debug("skipping hidden file: %s", name)
			continue
		}

		fi, err := entry.Info()
		if err != nil {
			logger.Warn("skipping %s: %v", name, err)
			continue
		}

		category := ruleSet.Categorize(name)
		target := filepath.Join(destDir, category, name)
		renamed := false

		if claimed[target] || fileExists(target) {
			target = o.collisionName(destDir, category, name, claimed)
			renamed = true
		}
		claimed[target] = true

		plan.Moves = append(plan.Moves, domain.PlannedMove{
			From:     filepath.Join(sourceDir, name),
			To:       target,
			Category: category,
			Size:     fi.Size(),
			Renamed:  renamed,
		})
	}

	if len(plan.Moves) == 0 {
		return nil, domain.ErrNothingToOrganize
	}

	logger.Info("planned %d moves from %s", len(plan.Moves), sourceDir)
	return plan, nil
}

// Apply executes a plan, recording the moves as a batch.
func (o *Organizer) Apply(ctx context.Context, plan *domain.Plan) (*domain.Report, error) {
	if plan == nil || len(plan.Moves) == 0 {
		return nil, domain.ErrNothingToOrganize
	}

	batch := &domain.Batch{
		ID:        uuid.New().String(),
		SourceDir: plan.SourceDir,
		DestDir:   plan.DestDir,
		StartedAt: o.now(),
	}

	// Category directories are created up front so workers never race
	// on MkdirAll.
	for category := range plan.ByCategory() {
		dir := filepath.Join(plan.DestDir, category)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating category directory %s: %w", dir, err)
		}
	}

	report := domain.NewReport(batch.ID, false)

	// Records are collected by the workers and persisted after the
	// batch row exists; moves reference their batch in storage.
	var (
		mu      sync.Mutex
		records []*domain.MoveRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(applyWorkers)

	for i := range plan.Moves {
		move := plan.Moves[i]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			if err := moveFile(move.From, move.To); err != nil {
				logger.Warn("move failed for %s: %v", move.From, err)
				mu.Lock()
				report.AddError(filepath.Base(move.From), err.Error())
				mu.Unlock()
				return nil // Per-file errors never abort the batch
			}

			logger.Debug("moved %s -> %s", move.From, move.To)

			record := &domain.MoveRecord{
				ID:       uuid.New().String(),
				BatchID:  batch.ID,
				From:     move.From,
				To:       move.To,
				Category: move.Category,
				Size:     move.Size,
				MovedAt:  o.now(),
			}

			mu.Lock()
			report.AddMove(move.Category, move.Size)
			records = append(records, record)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return report, err
	}

	batch.FinishedAt = o.now()
	batch.MoveCount = report.Moved
	batch.ErrorCount = len(report.Errors)

	if o.history != nil && report.Moved > 0 {
		if err := o.history.SaveBatch(ctx, batch); err != nil {
			return report, fmt.Errorf("recording batch: %w", err)
		}
		for _, record := range records {
			if err := o.history.SaveMove(ctx, record); err != nil {
				return report, fmt.Errorf("recording move for %s: %w", record.To, err)
			}
		}
	}

	logger.Info("applied batch %s: %d moved, %d errors", batch.ID, report.Moved, len(report.Errors))
	return report, nil
}

// Preview returns the report a plan would produce without moving anything.
func (o *Organizer) Preview(plan *domain.Plan) *domain.Report {
	report := domain.NewReport("", true)
	if plan == nil {
		return report
	}
	for i := range plan.Moves {
		report.AddMove(plan.Moves[i].Category, plan.Moves[i].Size)
	}
	return report
}

// collisionName produces a destination path that collides neither with
// files on disk nor with destinations already claimed by this plan.
// The first attempt appends a timestamp before the extension; further
// attempts append a counter.
func (o *Organizer) collisionName(destDir, category, name string, claimed map[string]bool) string {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	stamp := o.now().Format("20060102_150405")

	candidate := filepath.Join(destDir, category, fmt.Sprintf("%s_%s%s", stem, stamp, ext))
	for n := 2; claimed[candidate] || fileExists(candidate); n++ {
		candidate = filepath.Join(destDir, category, fmt.Sprintf("%s_%s_%d%s", stem, stamp, n, ext))
	}
	return candidate
}

// fileExists reports whether a path exists.
func fileExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// moveFile renames a file, falling back to copy-and-remove when the
// destination is on a different filesystem.
func moveFile(from, to string) error {
	err := os.Rename(from, to)
	if err == nil {
		return nil
	}

	var linkErr *os.LinkError
	if !errors.As(err, &linkErr) {
		return err
	}

	if copyErr := copyFile(from, to); copyErr != nil {
		return copyErr
	}
	return os.Remove(from)
}

// copyFile copies from to to, preserving the file mode.
func copyFile(from, to string) error {
	src, err := os.Open(from)
	if err != nil {
		return err
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return err
	}

	dst, err := os.OpenFile(to, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(to)
		return err
	}
	return dst.Close()
}
