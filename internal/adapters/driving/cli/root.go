// Package cli implements the cobra command tree for shelve.
// It is a driving adapter: commands call core services through the
// driving ports and render the results for a human operator.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/shelve-cli/internal/core/ports/driven"
	"github.com/custodia-labs/shelve-cli/internal/core/ports/driving"
	"github.com/custodia-labs/shelve-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services injected by the composition root before Execute.
var (
	organizerService driving.Organizer
	historyService   driving.HistoryService
	rulesService     driving.RulesService
	watcherService   driving.Watcher
	configStore      driven.ConfigStore
)

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "shelve",
	Short: "Organize files into category folders",
	Long: `Shelve keeps messy directories tidy by moving files into
category folders (Images, Documents, Music, ...) based on their
extension. Passes can be previewed, applied, watched for, and undone.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
}

// Services aggregates everything the commands need.
// This provides a single injection point for dependency injection.
type Services struct {
	Organizer driving.Organizer
	History   driving.HistoryService
	Rules     driving.RulesService
	Watcher   driving.Watcher
	Config    driven.ConfigStore
}

// SetServices injects the core services into the command tree.
func SetServices(s Services) {
	organizerService = s.Organizer
	historyService = s.History
	rulesService = s.Rules
	watcherService = s.Watcher
	configStore = s.Config
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
