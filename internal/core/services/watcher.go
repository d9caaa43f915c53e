package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/shelve-cli/internal/core/domain"
	"github.com/custodia-labs/shelve-cli/internal/core/ports/driving"
	"github.com/custodia-labs/shelve-cli/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driving.Watcher = (*Watcher)(nil)

const (
	// defaultPassInterval is the minimum spacing between organize
	// passes triggered by filesystem events.
	defaultPassInterval = 2 * time.Second

	// defaultSettleDelay gives a newly created file time to finish
	// writing before it is moved.
	defaultSettleDelay = 500 * time.Millisecond
)

// Watcher organizes a directory whenever new files appear in it.
type Watcher struct {
	organizer driving.Organizer
	opts      driving.PlanOptions

	// PassInterval overrides the minimum spacing between passes.
	PassInterval time.Duration

	// SettleDelay overrides the pause before a triggered pass runs.
	SettleDelay time.Duration

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
}

// NewWatcher creates a watcher that runs passes through the organizer.
func NewWatcher(organizer driving.Organizer, opts driving.PlanOptions) *Watcher {
	return &Watcher{
		organizer:    organizer,
		opts:         opts,
		PassInterval: defaultPassInterval,
		SettleDelay:  defaultSettleDelay,
	}
}

// Watch blocks, organizing sourceDir whenever files are created or
// renamed into it, until the context is cancelled or Stop is called.
func (w *Watcher) Watch(ctx context.Context, sourceDir, destDir string) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return domain.ErrWatchInProgress
	}
	w.running = true
	w.stopCh = make(chan struct{})
	stopCh := w.stopCh
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
	}()

	if info, err := os.Stat(sourceDir); err != nil {
		if os.IsNotExist(err) {
			return domain.ErrSourceMissing
		}
		return fmt.Errorf("checking source: %w", err)
	} else if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", domain.ErrInvalidInput, sourceDir)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(sourceDir); err != nil {
		return fmt.Errorf("watching %s: %w", sourceDir, err)
	}

	ctx, cancel := context.WithCancel(ctx)

	// trigger coalesces bursts of events into at most one pending pass.
	trigger := make(chan struct{}, 1)
	limiter := rate.NewLimiter(rate.Every(w.PassInterval), 1)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		w.passLoop(ctx, limiter, trigger, sourceDir, destDir)
	}()
	defer func() {
		cancel()
		wg.Wait()
	}()

	// Organize whatever is already sitting in the directory.
	trigger <- struct{}{}

	logger.Info("watching %s", sourceDir)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-stopCh:
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("event: %s", event)
			select {
			case trigger <- struct{}{}:
			default: // A pass is already pending
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)
		}
	}
}

// Stop terminates a running watch.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		close(w.stopCh)
		w.running = false
	}
	return nil
}

// passLoop consumes triggers and runs organize passes, spaced by the
// rate limiter and delayed long enough for files to settle.
func (w *Watcher) passLoop(
	ctx context.Context,
	limiter *rate.Limiter,
	trigger <-chan struct{},
	sourceDir, destDir string,
) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-trigger:
		}

		if err := limiter.Wait(ctx); err != nil {
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(w.SettleDelay):
		}

		w.runPass(ctx, sourceDir, destDir)
	}
}

// runPass executes one plan-and-apply cycle. Failures are logged,
// never fatal to the watch.
func (w *Watcher) runPass(ctx context.Context, sourceDir, destDir string) {
	plan, err := w.organizer.Plan(ctx, sourceDir, destDir, w.opts)
	if err != nil {
		if errors.Is(err, domain.ErrNothingToOrganize) {
			logger.Debug("pass found nothing to organize")
		} else {
			logger.Warn("planning pass: %v", err)
		}
		return
	}

	report, err := w.organizer.Apply(ctx, plan)
	if err != nil {
		logger.Warn("applying pass: %v", err)
		return
	}
	logger.Info("pass moved %d files (%d errors)", report.Moved, len(report.Errors))
}
