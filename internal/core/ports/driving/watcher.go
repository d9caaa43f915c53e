package driving

import "context"

// Watcher runs organize passes in response to filesystem events.
type Watcher interface {
	// Watch blocks, organizing sourceDir whenever new files appear,
	// until the context is cancelled or Stop is called.
	// Returns domain.ErrWatchInProgress if already watching.
	Watch(ctx context.Context, sourceDir, destDir string) error

	// Stop terminates a running watch. Safe to call when not watching.
	Stop() error
}
