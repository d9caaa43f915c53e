package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var (
	historyLimit int
	historyJSON  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded organize batches",
	Long: `Lists recent organize batches, most recent first. Use
"shelve history show <batch-id>" to see the moves of one batch.`,
	RunE: runHistory,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <batch-id>",
	Short: "Show the moves of a batch",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "maximum number of batches")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output batches as JSON")
	historyCmd.AddCommand(historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	batches, err := historyService.ListBatches(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("listing history: %w", err)
	}

	if historyJSON {
		data, err := json.MarshalIndent(batches, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal batches: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(batches) == 0 {
		cmd.Println("No batches recorded.")
		return nil
	}

	for _, batch := range batches {
		marker := ""
		if batch.Undone {
			marker = " (undone)"
		}
		cmd.Printf("%s  %s  %s  %d moved, %d errors%s\n",
			shortID(batch.ID),
			humanize.Time(batch.FinishedAt),
			batch.SourceDir,
			batch.MoveCount, batch.ErrorCount, marker)
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	batch, moves, err := historyService.GetBatch(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("loading batch: %w", err)
	}

	cmd.Printf("Batch %s\n", batch.ID)
	cmd.Printf("  Source:   %s\n", batch.SourceDir)
	cmd.Printf("  Dest:     %s\n", batch.DestDir)
	cmd.Printf("  Finished: %s\n", batch.FinishedAt.Local().Format("2006-01-02 15:04:05"))
	if batch.Undone {
		cmd.Println("  Status:   undone")
	}
	cmd.Println()

	for _, move := range moves {
		cmd.Printf("  %s -> %s/%s (%s)\n",
			filepath.Base(move.From), move.Category, filepath.Base(move.To),
			humanize.Bytes(uint64(move.Size)))
	}
	return nil
}
