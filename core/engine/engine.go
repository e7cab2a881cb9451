// Package engine provides the API-primary analysis engine.
// CLI and HTTP layers are thin wrappers around Analyzer.
package engine

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"stacksafe/core/interaction"
	"stacksafe/core/kb"
	"stacksafe/core/normalize"
	"stacksafe/core/nutrient"
	"stacksafe/core/risk"
	"stacksafe/core/score"
	"stacksafe/core/types"
	"stacksafe/internal/errors"
	"stacksafe/internal/logging"
)

// Item is one raw stack entry before normalization
type Item struct {
	Name string     `json:"name"`
	Dose types.Dose `json:"dose"`
	Role types.Role `json:"role"`
}

// UnresolvedItem reports an item excluded from matching and aggregation
// because its name did not resolve to a canonical ingredient
type UnresolvedItem struct {
	RawName string     `json:"raw_name"`
	Role    types.Role `json:"role"`
}

// Report is the complete output of one analysis call. For an unchanged
// stack snapshot the report is byte-identical across calls; it carries no
// timestamps and no engine state.
type Report struct {
	Result         risk.Result      `json:"result"`
	Score          int              `json:"score"`
	StackSize      int              `json:"stack_size"`
	Unresolved     []UnresolvedItem `json:"unresolved,omitempty"`
	NutrientErrors []nutrient.Error `json:"nutrient_errors,omitempty"`
	KBVersion      string           `json:"kb_version"`
}

// Incomplete reports whether any item or nutrient could not be analyzed.
// Presentation layers must distinguish this from a clean no-findings result.
func (r *Report) Incomplete() bool {
	return len(r.Unresolved) > 0 || len(r.NutrientErrors) > 0
}

// Config configures the analyzer. Zero values take the default policies.
type Config struct {
	RiskPolicy  *risk.Policy
	ScorePolicy *score.Policy
}

// Analyzer runs the analysis pipeline over an immutable knowledge base.
// Each call operates on its own stack snapshot; any number of analyses may
// run concurrently with no coordination.
type Analyzer struct {
	kb          *kb.KnowledgeBase
	normalizer  *normalize.Normalizer
	matcher     *interaction.Matcher
	aggregator  *nutrient.Aggregator
	riskPolicy  risk.Policy
	scorePolicy score.Policy
}

// NewAnalyzer creates an analyzer bound to a loaded knowledge base
func NewAnalyzer(knowledgeBase *kb.KnowledgeBase, cfg Config) *Analyzer {
	riskPolicy := risk.DefaultPolicy()
	if cfg.RiskPolicy != nil {
		riskPolicy = *cfg.RiskPolicy
	}
	scorePolicy := score.DefaultPolicy()
	if cfg.ScorePolicy != nil {
		scorePolicy = *cfg.ScorePolicy
	}

	return &Analyzer{
		kb:          knowledgeBase,
		normalizer:  normalize.New(knowledgeBase),
		matcher:     interaction.NewMatcher(knowledgeBase),
		aggregator:  nutrient.NewAggregator(knowledgeBase, riskPolicy.WarnThresholdPercent),
		riskPolicy:  riskPolicy,
		scorePolicy: scorePolicy,
	}
}

// KnowledgeBase returns the knowledge base this analyzer runs on
func (a *Analyzer) KnowledgeBase() *kb.KnowledgeBase {
	return a.kb
}

// Analyze runs the full pipeline on a stack snapshot.
// Invalid items (empty name, non-positive dose, unknown unit or role) reject
// the whole call before the pipeline runs. Normalization failures do not:
// they are collected in the report beside the best-effort result.
func (a *Analyzer) Analyze(ctx context.Context, items []Item) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validateItems(items); err != nil {
		return nil, err
	}

	stack := make([]types.StackItem, 0, len(items))
	var unresolved []UnresolvedItem
	for _, item := range items {
		key, ok := a.normalizer.Normalize(item.Name)
		if !ok {
			unresolved = append(unresolved, UnresolvedItem{RawName: item.Name, Role: item.Role})
			continue
		}
		stack = append(stack, types.StackItem{
			RawName: item.Name,
			Key:     key,
			Dose:    item.Dose,
			Role:    item.Role,
		})
	}
	sort.Slice(unresolved, func(i, j int) bool {
		return unresolved[i].RawName < unresolved[j].RawName
	})

	findings := a.matcher.FindInteractions(stack)
	warnings, nutrientErrors := a.aggregator.Aggregate(stack)
	result := risk.Aggregate(a.riskPolicy, findings, warnings)

	report := &Report{
		Result:         result,
		Score:          score.Score(a.scorePolicy, result, len(items)),
		StackSize:      len(items),
		Unresolved:     unresolved,
		NutrientErrors: nutrientErrors,
		KBVersion:      a.kb.Version(),
	}

	logging.Debug("analysis complete",
		zap.Int("stack_size", report.StackSize),
		zap.String("overall_risk", result.OverallRiskLevel.String()),
		zap.Int("interactions", len(result.Interactions)),
		zap.Int("nutrient_warnings", len(result.NutrientWarnings)),
		zap.Int("unresolved", len(unresolved)),
		zap.Int("score", report.Score))

	return report, nil
}

func validateItems(items []Item) error {
	for i, item := range items {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			return errors.InvalidStackItem(fmt.Sprintf("item %d: name is required", i))
		}
		if !item.Dose.Unit.IsValid() {
			return errors.InvalidStackItem(fmt.Sprintf("item %d (%s): unknown unit %q", i, name, item.Dose.Unit))
		}
		if !item.Dose.IsPositive() {
			return errors.InvalidStackItem(fmt.Sprintf("item %d (%s): dose must be positive", i, name))
		}
		if !item.Role.IsValid() {
			return errors.InvalidStackItem(fmt.Sprintf("item %d (%s): unknown role %q", i, name, item.Role))
		}
	}
	return nil
}

// StackHash computes a deterministic digest of a stack snapshot,
// independent of item order. Used for history and response metadata.
func StackHash(items []Item) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("%s|%s|%s", item.Name, item.Dose, item.Role))
	}
	sort.Strings(lines)

	h := sha256.New()
	for _, line := range lines {
		h.Write([]byte(line))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}
