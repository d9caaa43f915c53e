package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/shelve-cli/internal/core/ports/driving"
)

// mockWatcher implements driving.Watcher for testing.
type mockWatcher struct {
	source string
	dest   string
	err    error
}

func (m *mockWatcher) Watch(_ context.Context, sourceDir, destDir string) error {
	m.source = sourceDir
	m.dest = destDir
	return m.err
}

func (m *mockWatcher) Stop() error { return nil }

func setupWatchTest(watcher driving.Watcher) func() {
	oldWatcher := watcherService
	oldConfig := configStore
	watcherService = watcher
	configStore = nil
	return func() {
		watcherService = oldWatcher
		configStore = oldConfig
	}
}

func TestWatchCmd_Use(t *testing.T) {
	assert.Equal(t, "watch [source]", watchCmd.Use)
}

func TestWatchCmd_WatchesSource(t *testing.T) {
	watcher := &mockWatcher{}
	cleanup := setupWatchTest(watcher)
	defer cleanup()

	out, err := execute(t, "watch", "/tmp/downloads")

	require.NoError(t, err)
	assert.Equal(t, "/tmp/downloads", watcher.source)
	assert.Empty(t, watcher.dest)
	assert.Contains(t, out, "Watching /tmp/downloads")
	assert.Contains(t, out, "Watch stopped.")
}

func TestWatchCmd_Destination(t *testing.T) {
	watcher := &mockWatcher{}
	cleanup := setupWatchTest(watcher)
	defer cleanup()

	_, err := execute(t, "watch", "/tmp/downloads", "--destination", "/tmp/sorted")
	defer func() { watchDest = "" }()

	require.NoError(t, err)
	assert.Equal(t, "/tmp/sorted", watcher.dest)
}

func TestWatchCmd_WatchError(t *testing.T) {
	cleanup := setupWatchTest(&mockWatcher{err: errors.New("source missing")})
	defer cleanup()

	_, err := execute(t, "watch", "/tmp/downloads")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "watch failed")
}

func TestWatchCmd_NotConfigured(t *testing.T) {
	cleanup := setupWatchTest(nil)
	defer cleanup()

	_, err := execute(t, "watch", "/tmp/downloads")

	assert.Error(t, err)
}
