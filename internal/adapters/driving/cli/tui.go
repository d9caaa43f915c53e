package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/shelve-cli/internal/adapters/driving/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for shelve.

Pick a directory, preview where its files would go, and apply the
moves with keyboard navigation.

Controls:
  ↑/k, ↓/j - Scroll
  Enter    - Preview / Apply
  Esc      - Back
  q        - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ports := &tui.Ports{
		Organizer: organizerService,
		History:   historyService,
		Rules:     rulesService,
	}

	app, err := tui.NewApp(ports, defaultSource())
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
