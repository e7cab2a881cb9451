// Package cmd provides the CLI commands for stacksafe.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"stacksafe/internal/config"
	"stacksafe/internal/logging"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "stacksafe",
	Short: "Analyze a supplement and medication stack for safety",
	Long: `stacksafe analyzes a stack of supplements and medications against a
curated knowledge base of interaction rules and nutrient upper limits.

It reports pairwise interaction risks, cumulative nutrient exposure, an
overall risk verdict, and a 0-100 stack health score.

Examples:
  stacksafe analyze ./my-stack.yaml
  stacksafe analyze --format json ./my-stack.yaml
  stacksafe kb info`,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.stacksafe.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	// Add subcommands
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(kbCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(cfg)
	}

	// Initialize logging
	cfg := config.Get()
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("stacksafe version 0.1.0")
	},
}
