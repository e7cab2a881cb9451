// Package cmd - history command
package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"stacksafe/adapters/storage"
	"stacksafe/internal/config"
)

var historyLimit int

// historyCmd lists recorded analyses
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded analyses",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := storage.NewHistoryStore(config.Get().History.DatabasePath)
		if err != nil {
			return err
		}
		defer store.Close()

		entries, err := store.List(historyLimit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No recorded analyses.")
			return nil
		}

		for _, entry := range entries {
			fmt.Printf("%s  %s  risk=%-8s score=%3d  items=%d  interactions=%d  warnings=%d\n",
				entry.CreatedAt.Format(time.RFC3339),
				entry.ID[:8],
				entry.OverallRisk,
				entry.Score,
				entry.StackSize,
				entry.Interactions,
				entry.Warnings)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum entries to list")
}
