// Package cmd - knowledge base commands
package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"stacksafe/core/kb"
)

// kbCmd groups knowledge base subcommands
var kbCmd = &cobra.Command{
	Use:   "kb",
	Short: "Inspect and validate the knowledge base",
}

// kbInfoCmd prints knowledge base statistics
var kbInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print knowledge base statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		knowledgeBase, err := loadKnowledgeBase()
		if err != nil {
			return err
		}

		stats := knowledgeBase.Stats()
		fmt.Printf("Knowledge base %s\n", stats.Version)
		fmt.Printf("  Rules:       %d\n", stats.Rules)

		severities := make([]string, 0, len(stats.RulesBySeverity))
		for severity := range stats.RulesBySeverity {
			severities = append(severities, severity)
		}
		sort.Strings(severities)
		for _, severity := range severities {
			fmt.Printf("    %-10s %d\n", severity+":", stats.RulesBySeverity[severity])
		}

		fmt.Printf("  Limits:      %d\n", stats.Limits)
		fmt.Printf("  Synonyms:    %d\n", stats.Synonyms)
		fmt.Printf("  Ingredients: %d\n", stats.Ingredients)
		return nil
	},
}

// kbValidateCmd validates an overlay directory
var kbValidateCmd = &cobra.Command{
	Use:   "validate <overlay-dir>",
	Short: "Validate a knowledge base overlay directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		knowledgeBase, err := kb.Load(args[0])
		if err != nil {
			return err
		}

		stats := knowledgeBase.Stats()
		fmt.Printf("OK: %d rules, %d limits, %d synonyms\n", stats.Rules, stats.Limits, stats.Synonyms)
		return nil
	},
}

func init() {
	kbCmd.AddCommand(kbInfoCmd)
	kbCmd.AddCommand(kbValidateCmd)
}
