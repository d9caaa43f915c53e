package cli

import (
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var watchDest string

var watchCmd = &cobra.Command{
	Use:   "watch [source]",
	Short: "Watch a directory and organize new files automatically",
	Long: `Watches a directory and runs an organize pass whenever new
files appear. Runs until interrupted with Ctrl-C.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchDest, "destination", "d", "", "destination directory (default: same as source)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if watcherService == nil {
		return errors.New("watcher service not configured")
	}

	source := defaultSource()
	if len(args) > 0 {
		source = args[0]
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd.Printf("Watching %s (Ctrl-C to stop)...\n", source)

	if err := watcherService.Watch(ctx, source, watchDest); err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}

	cmd.Println("Watch stopped.")
	return nil
}
