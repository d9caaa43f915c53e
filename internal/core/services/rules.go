package services

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/shelve-cli/internal/core/domain"
	"github.com/custodia-labs/shelve-cli/internal/core/ports/driven"
	"github.com/custodia-labs/shelve-cli/internal/core/ports/driving"
)

// Ensure Rules implements the interface.
var _ driving.RulesService = (*Rules)(nil)

// rulesPrefix is the config key namespace for category rules.
// Each key is "rules.<Category>" holding a list of extensions.
const rulesPrefix = "rules."

// Rules manages the extension-to-category mapping on top of the
// config store. User rules replace the defaults entirely once any
// rule key exists; Reset deletes them all.
type Rules struct {
	config driven.ConfigStore
}

// NewRules creates a rules service backed by the config store.
func NewRules(config driven.ConfigStore) *Rules {
	return &Rules{config: config}
}

// Rules returns the active rule set.
func (r *Rules) Rules() (*domain.RuleSet, error) {
	keys := r.config.Keys(rulesPrefix)
	if len(keys) == 0 {
		return domain.DefaultRules(), nil
	}

	rs := domain.NewRuleSet()
	for _, key := range keys {
		category := strings.TrimPrefix(key, rulesPrefix)
		for _, ext := range r.config.GetStringSlice(key) {
			if err := rs.Set(ext, category); err != nil {
				return nil, fmt.Errorf("invalid rule %q for %s: %w", ext, category, err)
			}
		}
	}
	return rs, nil
}

// Add assigns an extension to a category, replacing any existing
// assignment, and persists the full rule set.
func (r *Rules) Add(ext, category string) error {
	ruleSet, err := r.Rules()
	if err != nil {
		return err
	}
	if err := ruleSet.Set(ext, category); err != nil {
		return err
	}
	return r.persist(ruleSet)
}

// Remove deletes the rule for an extension.
func (r *Rules) Remove(ext string) error {
	ruleSet, err := r.Rules()
	if err != nil {
		return err
	}
	if err := ruleSet.Remove(ext); err != nil {
		return err
	}
	return r.persist(ruleSet)
}

// Reset discards all user rules, restoring the defaults.
func (r *Rules) Reset() error {
	for _, key := range r.config.Keys(rulesPrefix) {
		if err := r.config.Delete(key); err != nil {
			return fmt.Errorf("deleting rule key %s: %w", key, err)
		}
	}
	return nil
}

// persist writes the whole rule set under the rules namespace,
// removing keys for categories that no longer exist.
func (r *Rules) persist(ruleSet *domain.RuleSet) error {
	live := make(map[string]bool)
	for _, category := range ruleSet.Categories() {
		key := rulesPrefix + category
		live[key] = true
		if err := r.config.Set(key, ruleSet.Extensions(category)); err != nil {
			return fmt.Errorf("saving rules for %s: %w", category, err)
		}
	}

	for _, key := range r.config.Keys(rulesPrefix) {
		if !live[key] {
			if err := r.config.Delete(key); err != nil {
				return fmt.Errorf("deleting rule key %s: %w", key, err)
			}
		}
	}
	return nil
}
