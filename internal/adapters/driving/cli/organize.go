package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/shelve-cli/internal/core/domain"
	"github.com/custodia-labs/shelve-cli/internal/core/ports/driving"
)

var (
	organizeDest          string
	organizeDryRun        bool
	organizeJSON          bool
	organizeIncludeHidden bool
)

var organizeCmd = &cobra.Command{
	Use:   "organize [source]",
	Short: "Organize files by type into categorized folders",
	Long: `Moves the files in a directory into category folders based on
their extension. If no source is given, the configured default
directory is used, falling back to the current directory.

Use --dry-run to preview the moves without touching anything.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runOrganize,
}

func init() {
	organizeCmd.Flags().StringVarP(&organizeDest, "destination", "d", "", "destination directory (default: same as source)")
	organizeCmd.Flags().BoolVar(&organizeDryRun, "dry-run", false, "preview moves without applying them")
	organizeCmd.Flags().BoolVar(&organizeJSON, "json", false, "output the report as JSON")
	organizeCmd.Flags().BoolVar(&organizeIncludeHidden, "include-hidden", false, "also organize dotfiles")
	rootCmd.AddCommand(organizeCmd)
}

func runOrganize(cmd *cobra.Command, args []string) error {
	if organizerService == nil {
		return errors.New("organizer service not configured")
	}

	source := defaultSource()
	if len(args) > 0 {
		source = args[0]
	}

	ctx := cmd.Context()
	opts := driving.PlanOptions{IncludeHidden: organizeIncludeHidden}

	plan, err := organizerService.Plan(ctx, source, organizeDest, opts)
	if err != nil {
		if errors.Is(err, domain.ErrNothingToOrganize) {
			cmd.Println("No files found to organize.")
			return nil
		}
		return fmt.Errorf("planning: %w", err)
	}

	if organizeDryRun {
		report := organizerService.Preview(plan)
		if organizeJSON {
			return outputReportJSON(cmd, report)
		}
		for _, move := range plan.Moves {
			cmd.Printf("Would move: %s -> %s/\n", filepath.Base(move.From), move.Category)
		}
		cmd.Println()
		cmd.Println("Dry run complete - no files were moved.")
		printSummary(cmd, report)
		return nil
	}

	report, err := organizerService.Apply(ctx, plan)
	if err != nil {
		return fmt.Errorf("organizing: %w", err)
	}

	if organizeJSON {
		return outputReportJSON(cmd, report)
	}

	failed := make(map[string]bool, len(report.Errors))
	for _, e := range report.Errors {
		failed[e.File] = true
	}
	for _, move := range plan.Moves {
		name := filepath.Base(move.From)
		if failed[name] {
			continue // Listed under errors in the summary
		}
		cmd.Printf("Moved: %s -> %s/\n", name, move.Category)
	}
	cmd.Println()
	printSummary(cmd, report)
	return nil
}

// defaultSource returns the configured default directory, or "."
// when none is set.
func defaultSource() string {
	if configStore != nil {
		if dir := configStore.GetString("organize.default_source"); dir != "" {
			return dir
		}
	}
	return "."
}

func outputReportJSON(cmd *cobra.Command, report *domain.Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func printSummary(cmd *cobra.Command, report *domain.Report) {
	cmd.Printf("Files moved: %d (%s)\n", report.Moved, humanize.Bytes(uint64(report.BytesMoved)))

	if len(report.PerCategory) > 0 {
		cmd.Println()
		cmd.Println("Files by category:")
		for _, category := range report.Categories() {
			cmd.Printf("  %s: %d file(s)\n", category, report.PerCategory[category])
		}
	}

	if len(report.Errors) > 0 {
		cmd.Println()
		cmd.Printf("Errors: %d\n", len(report.Errors))
		for _, e := range report.Errors {
			cmd.Printf("  - %s: %s\n", e.File, e.Message)
		}
	}
}
