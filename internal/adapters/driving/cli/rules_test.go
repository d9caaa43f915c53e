package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/shelve-cli/internal/core/domain"
	"github.com/custodia-labs/shelve-cli/internal/core/ports/driving"
)

// mockRules implements driving.RulesService for testing.
type mockRules struct {
	ruleSet  *domain.RuleSet
	rulesErr error

	added   [][2]string
	removed []string
	reset   bool
	err     error
}

func (m *mockRules) Rules() (*domain.RuleSet, error) {
	if m.rulesErr != nil {
		return nil, m.rulesErr
	}
	if m.ruleSet != nil {
		return m.ruleSet, nil
	}
	return domain.DefaultRules(), nil
}

func (m *mockRules) Add(ext, category string) error {
	if m.err != nil {
		return m.err
	}
	m.added = append(m.added, [2]string{ext, category})
	return nil
}

func (m *mockRules) Remove(ext string) error {
	if m.err != nil {
		return m.err
	}
	m.removed = append(m.removed, ext)
	return nil
}

func (m *mockRules) Reset() error {
	if m.err != nil {
		return m.err
	}
	m.reset = true
	return nil
}

func setupRulesTest(rules driving.RulesService) func() {
	oldRules := rulesService
	rulesService = rules
	return func() {
		rulesService = oldRules
	}
}

func TestRulesCmd_Use(t *testing.T) {
	assert.Equal(t, "rules", rulesCmd.Use)
}

func TestRulesCmd_ListsCategories(t *testing.T) {
	cleanup := setupRulesTest(&mockRules{})
	defer cleanup()

	out, err := execute(t, "rules")

	require.NoError(t, err)
	assert.Contains(t, out, "Images:")
	assert.Contains(t, out, ".jpg")
	assert.Contains(t, out, "Documents:")
	assert.Contains(t, out, ".pdf")
}

func TestRulesCmd_ListError(t *testing.T) {
	cleanup := setupRulesTest(&mockRules{rulesErr: errors.New("config unreadable")})
	defer cleanup()

	_, err := execute(t, "rules")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading rules")
}

func TestRulesAddCmd(t *testing.T) {
	rules := &mockRules{}
	cleanup := setupRulesTest(rules)
	defer cleanup()

	out, err := execute(t, "rules", "add", ".heic", "Images")

	require.NoError(t, err)
	require.Len(t, rules.added, 1)
	assert.Equal(t, [2]string{".heic", "Images"}, rules.added[0])
	assert.Contains(t, out, "Rule added: .heic -> Images")
}

func TestRulesAddCmd_Invalid(t *testing.T) {
	cleanup := setupRulesTest(&mockRules{err: domain.ErrInvalidInput})
	defer cleanup()

	_, err := execute(t, "rules", "add", "", "Images")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRulesRemoveCmd(t *testing.T) {
	rules := &mockRules{}
	cleanup := setupRulesTest(rules)
	defer cleanup()

	out, err := execute(t, "rules", "remove", ".jpg")

	require.NoError(t, err)
	assert.Equal(t, []string{".jpg"}, rules.removed)
	assert.Contains(t, out, "Rule removed: .jpg")
}

func TestRulesResetCmd(t *testing.T) {
	rules := &mockRules{}
	cleanup := setupRulesTest(rules)
	defer cleanup()

	out, err := execute(t, "rules", "reset")

	require.NoError(t, err)
	assert.True(t, rules.reset)
	assert.Contains(t, out, "Rules reset to defaults.")
}

func TestRulesCmd_NotConfigured(t *testing.T) {
	cleanup := setupRulesTest(nil)
	defer cleanup()

	_, err := execute(t, "rules")

	assert.Error(t, err)
}
