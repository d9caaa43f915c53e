package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Manage extension-to-category rules",
	Long: `Lists and edits the rules that decide which category folder a
file belongs to. Without user rules, a built-in default set is used.`,
	RunE: runRulesList,
}

var rulesAddCmd = &cobra.Command{
	Use:   "add <extension> <category>",
	Short: "Assign an extension to a category",
	Args:  cobra.ExactArgs(2),
	RunE:  runRulesAdd,
}

var rulesRemoveCmd = &cobra.Command{
	Use:   "remove <extension>",
	Short: "Delete the rule for an extension",
	Args:  cobra.ExactArgs(1),
	RunE:  runRulesRemove,
}

var rulesResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard user rules and restore the defaults",
	RunE:  runRulesReset,
}

func init() {
	rulesCmd.AddCommand(rulesAddCmd)
	rulesCmd.AddCommand(rulesRemoveCmd)
	rulesCmd.AddCommand(rulesResetCmd)
	rootCmd.AddCommand(rulesCmd)
}

func runRulesList(cmd *cobra.Command, _ []string) error {
	if rulesService == nil {
		return errors.New("rules service not configured")
	}

	ruleSet, err := rulesService.Rules()
	if err != nil {
		return fmt.Errorf("loading rules: %w", err)
	}

	for _, category := range ruleSet.Categories() {
		cmd.Printf("%s: %s\n", category, strings.Join(ruleSet.Extensions(category), " "))
	}
	return nil
}

func runRulesAdd(cmd *cobra.Command, args []string) error {
	if rulesService == nil {
		return errors.New("rules service not configured")
	}

	ext, category := args[0], args[1]
	if err := rulesService.Add(ext, category); err != nil {
		return fmt.Errorf("adding rule: %w", err)
	}
	cmd.Printf("Rule added: %s -> %s\n", ext, category)
	return nil
}

func runRulesRemove(cmd *cobra.Command, args []string) error {
	if rulesService == nil {
		return errors.New("rules service not configured")
	}

	if err := rulesService.Remove(args[0]); err != nil {
		return fmt.Errorf("removing rule: %w", err)
	}
	cmd.Printf("Rule removed: %s\n", args[0])
	return nil
}

func runRulesReset(cmd *cobra.Command, _ []string) error {
	if rulesService == nil {
		return errors.New("rules service not configured")
	}

	if err := rulesService.Reset(); err != nil {
		return fmt.Errorf("resetting rules: %w", err)
	}
	cmd.Println("Rules reset to defaults.")
	return nil
}
