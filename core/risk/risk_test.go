package risk

import (
	"testing"

	"github.com/shopspring/decimal"

	"stacksafe/core/interaction"
	"stacksafe/core/kb"
	"stacksafe/core/nutrient"
	"stacksafe/core/types"
)

func percent(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestBandSeverity(t *testing.T) {
	policy := DefaultPolicy()

	cases := []struct {
		percent  string
		expected types.Severity
	}{
		{"100", types.SeverityNone},
		{"100.01", types.SeverityLow},
		{"109.99", types.SeverityLow},
		{"110", types.SeverityModerate},
		{"149.99", types.SeverityModerate},
		{"150", types.SeverityHigh},
		{"199.99", types.SeverityHigh},
		{"200", types.SeverityCritical},
		{"500", types.SeverityCritical},
		{"50", types.SeverityNone},
	}
	for _, tc := range cases {
		if got := policy.BandSeverity(percent(tc.percent)); got != tc.expected {
			t.Errorf("BandSeverity(%s) = %s, expected %s", tc.percent, got, tc.expected)
		}
	}
}

func finding(severity types.Severity) interaction.Finding {
	return interaction.Finding{
		Rule: kb.InteractionRule{ID: "r_" + severity.String(), Severity: severity},
	}
}

func warning(percentOfLimit string) nutrient.Warning {
	return nutrient.Warning{
		Nutrient:       "vitamin_d",
		PercentOfLimit: percent(percentOfLimit),
	}
}

func TestAggregateEmptyIsNone(t *testing.T) {
	result := Aggregate(DefaultPolicy(), nil, nil)
	if result.OverallRiskLevel != types.SeverityNone {
		t.Errorf("expected none, got %s", result.OverallRiskLevel)
	}
	if result.Interactions == nil || result.NutrientWarnings == nil {
		t.Error("expected non-nil lists")
	}
}

func TestAggregateMaxAcrossFindings(t *testing.T) {
	result := Aggregate(DefaultPolicy(),
		[]interaction.Finding{finding(types.SeverityLow), finding(types.SeverityHigh), finding(types.SeverityModerate)},
		nil)
	if result.OverallRiskLevel != types.SeverityHigh {
		t.Errorf("expected high, got %s", result.OverallRiskLevel)
	}
}

func TestAggregateBandsWarnings(t *testing.T) {
	result := Aggregate(DefaultPolicy(),
		[]interaction.Finding{finding(types.SeverityLow)},
		[]nutrient.Warning{warning("210")})
	if result.OverallRiskLevel != types.SeverityCritical {
		t.Errorf("expected critical from banded warning, got %s", result.OverallRiskLevel)
	}
}

func TestAggregateMirrorsListsInFull(t *testing.T) {
	findings := []interaction.Finding{finding(types.SeverityHigh), finding(types.SeverityLow)}
	warnings := []nutrient.Warning{warning("120"), warning("180")}

	result := Aggregate(DefaultPolicy(), findings, warnings)

	if len(result.Interactions) != len(findings) {
		t.Errorf("expected %d interactions, got %d", len(findings), len(result.Interactions))
	}
	if len(result.NutrientWarnings) != len(warnings) {
		t.Errorf("expected %d warnings, got %d", len(warnings), len(result.NutrientWarnings))
	}
	// The summary never filters: low findings survive alongside high ones.
	if result.Interactions[1].Rule.Severity != types.SeverityLow {
		t.Errorf("expected low finding preserved, got %s", result.Interactions[1].Rule.Severity)
	}
}

func TestAggregateDoesNotMutateInputs(t *testing.T) {
	findings := []interaction.Finding{finding(types.SeverityHigh)}
	result := Aggregate(DefaultPolicy(), findings, nil)

	result.Interactions[0].Rule.ID = "mutated"
	if findings[0].Rule.ID == "mutated" {
		t.Error("result must hold its own copy of the findings")
	}
}
