package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "shelve", rootCmd.Use)
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}

	for _, want := range []string{"organize", "undo", "history", "rules", "watch", "tui", "mcp", "version"} {
		assert.True(t, names[want], "missing subcommand %q", want)
	}
}

func TestVersionCmd(t *testing.T) {
	SetVersion("1.2.3")
	defer func() { version = "dev" }()

	out, err := execute(t, "version")

	require.NoError(t, err)
	assert.Contains(t, out, "shelve version 1.2.3")
}

func TestSetVersion_IgnoresEmpty(t *testing.T) {
	SetVersion("")
	assert.Equal(t, "dev", version)
}

func TestSetServices(t *testing.T) {
	org := &mockOrganizer{}
	history := &mockHistory{}
	rules := &mockRules{}
	defer SetServices(Services{})

	SetServices(Services{Organizer: org, History: history, Rules: rules})

	assert.Equal(t, org, organizerService)
	assert.Equal(t, history, historyService)
	assert.Equal(t, rules, rulesService)
}
