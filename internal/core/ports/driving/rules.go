package driving

import "github.com/custodia-labs/shelve-cli/internal/core/domain"

// RulesService manages the extension-to-category mapping.
type RulesService interface {
	// Rules returns the active rule set (user overrides merged over
	// the defaults).
	Rules() (*domain.RuleSet, error)

	// Add assigns an extension to a category, replacing any
	// existing assignment.
	Add(ext, category string) error

	// Remove deletes the rule for an extension.
	Remove(ext string) error

	// Reset discards all user rules, restoring the defaults.
	Reset() error
}
