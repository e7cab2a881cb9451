// Package risk reduces findings and warnings to a single overall verdict.
// Full detail is preserved in the result; only the summary level is
// reductive, so downstream consumers can always drill into specifics.
package risk

import (
	"github.com/shopspring/decimal"

	"stacksafe/core/interaction"
	"stacksafe/core/nutrient"
	"stacksafe/core/types"
)

// Policy is the explicit threshold table mapping a nutrient overage to a
// severity band. These are product defaults, documented here rather than
// hidden in code paths, and tuned without touching matching logic.
type Policy struct {
	// WarnThresholdPercent is the percent of upper limit above which a
	// nutrient warning exists at all. Exactly at threshold emits nothing.
	WarnThresholdPercent decimal.Decimal

	// Band lower bounds, inclusive, as percent of upper limit.
	CriticalPercent decimal.Decimal
	HighPercent     decimal.Decimal
	ModeratePercent decimal.Decimal
}

// DefaultPolicy returns the default banding:
// >100% Low, >=110% Moderate, >=150% High, >=200% Critical.
func DefaultPolicy() Policy {
	return Policy{
		WarnThresholdPercent: decimal.NewFromInt(100),
		CriticalPercent:      decimal.NewFromInt(200),
		HighPercent:          decimal.NewFromInt(150),
		ModeratePercent:      decimal.NewFromInt(110),
	}
}

// BandSeverity maps a percent-of-limit to its severity band
func (p Policy) BandSeverity(percentOfLimit decimal.Decimal) types.Severity {
	switch {
	case percentOfLimit.Cmp(p.CriticalPercent) >= 0:
		return types.SeverityCritical
	case percentOfLimit.Cmp(p.HighPercent) >= 0:
		return types.SeverityHigh
	case percentOfLimit.Cmp(p.ModeratePercent) >= 0:
		return types.SeverityModerate
	case percentOfLimit.Cmp(p.WarnThresholdPercent) > 0:
		return types.SeverityLow
	default:
		return types.SeverityNone
	}
}

// Result is the engine's sole analysis output record.
// Recomputed fresh on every call; never engine state.
type Result struct {
	OverallRiskLevel types.Severity        `json:"overall_risk_level"`
	Interactions     []interaction.Finding `json:"interactions"`
	NutrientWarnings []nutrient.Warning    `json:"nutrient_warnings"`
}

// Aggregate mirrors both input lists in full and derives the single scalar
// overall level: the maximum severity across all findings and all banded
// nutrient warnings. It never filters or re-ranks the lists.
func Aggregate(policy Policy, findings []interaction.Finding, warnings []nutrient.Warning) Result {
	result := Result{
		OverallRiskLevel: types.SeverityNone,
		Interactions:     make([]interaction.Finding, len(findings)),
		NutrientWarnings: make([]nutrient.Warning, len(warnings)),
	}
	copy(result.Interactions, findings)
	copy(result.NutrientWarnings, warnings)

	for _, finding := range findings {
		result.OverallRiskLevel = result.OverallRiskLevel.Max(finding.Rule.Severity)
	}
	for _, warning := range warnings {
		result.OverallRiskLevel = result.OverallRiskLevel.Max(policy.BandSeverity(warning.PercentOfLimit))
	}
	return result
}
