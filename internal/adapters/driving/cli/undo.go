package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/shelve-cli/internal/core/domain"
)

var undoYes bool

var undoCmd = &cobra.Command{
	Use:   "undo [batch-id]",
	Short: "Undo an organize pass",
	Long: `Moves the files of a recorded batch back to where they came
from. Without a batch ID, the most recent batch is undone. Each
batch can be undone once.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runUndo,
}

func init() {
	undoCmd.Flags().BoolVarP(&undoYes, "yes", "y", false, "skip confirmation prompt")
	rootCmd.AddCommand(undoCmd)
}

func runUndo(cmd *cobra.Command, args []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	batchID := ""
	if len(args) > 0 {
		batchID = args[0]
	}

	if !undoYes && !confirmUndo(cmd, batchID) {
		cmd.Println("Aborted.")
		return nil
	}

	result, err := historyService.Undo(cmd.Context(), batchID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			cmd.Println("Nothing to undo.")
			return nil
		case errors.Is(err, domain.ErrBatchUndone):
			return fmt.Errorf("batch %s has already been undone", batchID)
		default:
			return fmt.Errorf("undo failed: %w", err)
		}
	}

	cmd.Printf("Restored %d file(s) from batch %s.\n", result.Restored, shortID(result.BatchID))
	if len(result.Skipped) > 0 {
		cmd.Printf("Skipped %d file(s):\n", len(result.Skipped))
		for _, skip := range result.Skipped {
			cmd.Printf("  - %s: %s\n", skip.File, skip.Message)
		}
	}
	return nil
}

// confirmUndo prompts for confirmation when stdin is a terminal.
// Non-interactive invocations (scripts, pipes) proceed without one.
func confirmUndo(cmd *cobra.Command, batchID string) bool {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return true
	}

	target := "the last batch"
	if batchID != "" {
		target = "batch " + shortID(batchID)
	}
	cmd.Printf("Undo %s? [y/N] ", target)

	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n') //nolint:errcheck // CLI prompt, empty input means no
	input = strings.ToLower(strings.TrimSpace(input))
	return input == "y" || input == "yes"
}

// shortID abbreviates a batch UUID for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
