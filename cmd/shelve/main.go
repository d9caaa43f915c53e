// Command shelve organizes files into category folders by extension.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/shelve-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/shelve-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/shelve-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/shelve-cli/internal/core/ports/driving"
	"github.com/custodia-labs/shelve-cli/internal/core/services"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	homeDir := os.Getenv("SHELVE_HOME")

	configStore, err := file.NewConfigStore(homeDir)
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}

	dataDir := ""
	if homeDir != "" {
		dataDir = filepath.Join(homeDir, "data")
	}
	historyStore, err := sqlite.NewStore(dataDir)
	if err != nil {
		return fmt.Errorf("opening history store: %w", err)
	}
	defer historyStore.Close()

	rulesService := services.NewRules(configStore)
	organizer := services.NewOrganizer(rulesService, historyStore)
	history := services.NewHistory(historyStore)
	watcher := services.NewWatcher(organizer, driving.PlanOptions{
		IncludeHidden: configStore.GetBool("organize.include_hidden"),
	})

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Organizer: organizer,
		History:   history,
		Rules:     rulesService,
		Watcher:   watcher,
		Config:    configStore,
	})

	return cli.Execute()
}
