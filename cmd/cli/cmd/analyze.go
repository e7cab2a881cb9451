// Package cmd - analyze command
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"stacksafe/adapters/storage"
	"stacksafe/core/engine"
	"stacksafe/core/kb"
	"stacksafe/core/output"
	"stacksafe/core/types"
	"stacksafe/internal/config"
	"stacksafe/internal/logging"
)

var (
	outputFormat  string
	kbOverlayDir  string
	recordHistory bool
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <stack-file>",
	Short: "Analyze a stack file for interactions and nutrient overages",
	Long: `Analyze a stack of supplements and medications described in a YAML file.

The stack file lists items with a name, declared dose, unit, and role:

  items:
    - name: Vitamin D3
      dose: "5000"
      unit: iu
      role: supplement
    - name: Warfarin
      dose: "5"
      unit: mg
      role: medication

Examples:
  stacksafe analyze ./stack.yaml
  stacksafe analyze --format json ./stack.yaml
  stacksafe analyze --kb-dir ./kb-overlays ./stack.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&outputFormat, "format", "f", "cli", "output format (cli, json)")
	analyzeCmd.Flags().StringVar(&kbOverlayDir, "kb-dir", "", "knowledge base overlay directory")
	analyzeCmd.Flags().BoolVar(&recordHistory, "history", false, "record this analysis in the history database")
}

type stackFile struct {
	Items []stackFileItem `yaml:"items"`
}

type stackFileItem struct {
	Name string `yaml:"name"`
	Dose string `yaml:"dose"`
	Unit string `yaml:"unit"`
	Role string `yaml:"role"`
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	path := args[0]

	items, err := loadStackFile(path)
	if err != nil {
		return err
	}

	knowledgeBase, err := loadKnowledgeBase()
	if err != nil {
		return err
	}
	logging.Debug("knowledge base loaded", zap.String("version", knowledgeBase.Version()))

	analyzer := engine.NewAnalyzer(knowledgeBase, engine.Config{})
	report, err := analyzer.Analyze(ctx, items)
	if err != nil {
		return err
	}

	if recordHistory {
		if err := saveHistory(report, engine.StackHash(items)); err != nil {
			logging.Warn("failed to record history", zap.Error(err))
		}
	}

	return output.Render(os.Stdout, output.Format(outputFormat), report)
}

func loadStackFile(path string) ([]engine.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read stack file: %w", err)
	}

	var stack stackFile
	if err := yaml.Unmarshal(data, &stack); err != nil {
		return nil, fmt.Errorf("failed to parse stack file: %w", err)
	}
	if len(stack.Items) == 0 {
		fmt.Println("Stack file contains no items.")
	}

	items := make([]engine.Item, 0, len(stack.Items))
	for i, raw := range stack.Items {
		unit, err := types.ParseUnit(raw.Unit)
		if err != nil {
			return nil, fmt.Errorf("item %d (%s): %w", i, raw.Name, err)
		}
		dose, err := types.NewDose(raw.Dose, unit)
		if err != nil {
			return nil, fmt.Errorf("item %d (%s): invalid dose %q", i, raw.Name, raw.Dose)
		}
		items = append(items, engine.Item{
			Name: raw.Name,
			Dose: dose,
			Role: types.Role(raw.Role),
		})
	}
	return items, nil
}

func loadKnowledgeBase() (*kb.KnowledgeBase, error) {
	overlayDir := kbOverlayDir
	if overlayDir == "" {
		overlayDir = config.Get().KnowledgeBase.OverlayDir
	}
	return kb.Load(overlayDir)
}

func saveHistory(report *engine.Report, stackHash string) error {
	store, err := storage.NewHistoryStore(config.Get().History.DatabasePath)
	if err != nil {
		return err
	}
	defer store.Close()

	entry, err := store.Save(report, stackHash)
	if err != nil {
		return err
	}
	logging.Info("analysis recorded", zap.String("id", entry.ID))
	return nil
}
