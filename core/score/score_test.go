package score

import (
	"testing"

	"stacksafe/core/interaction"
	"stacksafe/core/kb"
	"stacksafe/core/nutrient"
	"stacksafe/core/risk"
	"stacksafe/core/types"
)

func resultWith(level types.Severity, interactions, warnings int) risk.Result {
	result := risk.Result{OverallRiskLevel: level}
	for i := 0; i < interactions; i++ {
		result.Interactions = append(result.Interactions, interaction.Finding{
			Rule: kb.InteractionRule{Severity: level},
		})
	}
	for i := 0; i < warnings; i++ {
		result.NutrientWarnings = append(result.NutrientWarnings, nutrient.Warning{})
	}
	return result
}

func TestEmptyStackScoresBase(t *testing.T) {
	got := Score(DefaultPolicy(), resultWith(types.SeverityNone, 0, 0), 0)
	if got != 75 {
		t.Errorf("expected 75 for empty stack, got %d", got)
	}
}

func TestCleanStackScores(t *testing.T) {
	// 75 + 10 none bonus + min(15, 2*n) engagement bonus.
	cases := []struct {
		size     int
		expected int
	}{
		{1, 87},
		{3, 91},
		{7, 99},
		{8, 100},
		{10, 100},
	}
	for _, tc := range cases {
		got := Score(DefaultPolicy(), resultWith(types.SeverityNone, 0, 0), tc.size)
		if got != tc.expected {
			t.Errorf("size %d: expected %d, got %d", tc.size, tc.expected, got)
		}
	}
}

func TestSeverityPenalties(t *testing.T) {
	// One interaction at each level, stack of 2: severity penalty with floor,
	// minus 5 interaction penalty, plus 4 engagement bonus.
	cases := []struct {
		level    types.Severity
		expected int
	}{
		{types.SeverityLow, 64},      // 75-10=65, -5=60, +4=64
		{types.SeverityModerate, 54}, // 75-20=55, -5=50, +4=54
		{types.SeverityHigh, 39},     // 75-35=40, -5=35, +4=39
		{types.SeverityCritical, 24}, // 75-50=25, -5=20, +4=24
	}
	for _, tc := range cases {
		got := Score(DefaultPolicy(), resultWith(tc.level, 1, 0), 2)
		if got != tc.expected {
			t.Errorf("%s: expected %d, got %d", tc.level, tc.expected, got)
		}
	}
}

func TestScoreMonotonicInSeverity(t *testing.T) {
	levels := []types.Severity{types.SeverityNone, types.SeverityLow, types.SeverityModerate, types.SeverityHigh, types.SeverityCritical}
	prev := 101
	for _, level := range levels {
		interactions := 1
		if level == types.SeverityNone {
			interactions = 0
		}
		got := Score(DefaultPolicy(), resultWith(level, interactions, 0), 3)
		if got > prev {
			t.Errorf("score increased from %d to %d at %s", prev, got, level)
		}
		prev = got
	}
}

func TestInteractionPenaltyCapped(t *testing.T) {
	// 20 interactions: penalty capped at 30, not 100.
	// 75-50 floored at 25, -30 cap, =0 after clamp... 25-30=-5 -> clamp 0, +4 bonus.
	got := Score(DefaultPolicy(), resultWith(types.SeverityCritical, 20, 0), 2)
	if got != 4 {
		t.Errorf("expected 4, got %d", got)
	}
}

func TestWarningPenaltyCapped(t *testing.T) {
	// 10 warnings: penalty capped at 20.
	// 75-10=65 (low), -20, =45, +4 = 49.
	got := Score(DefaultPolicy(), resultWith(types.SeverityLow, 0, 10), 2)
	if got != 49 {
		t.Errorf("expected 49, got %d", got)
	}
}

func TestSeverityFloorApplies(t *testing.T) {
	policy := DefaultPolicy()
	policy.Base = 30

	// 30-35 would go below the high floor of 20; floor holds it there.
	got := Score(policy, resultWith(types.SeverityHigh, 0, 0), 1)
	// 20 after floor, no count penalties, +2 engagement.
	if got != 22 {
		t.Errorf("expected 22, got %d", got)
	}
}

func TestScoreBounded(t *testing.T) {
	for size := 0; size <= 12; size++ {
		for _, level := range []types.Severity{types.SeverityNone, types.SeverityCritical} {
			got := Score(DefaultPolicy(), resultWith(level, 8, 8), size)
			if got < 0 || got > 100 {
				t.Errorf("score out of bounds: %d (size %d, level %s)", got, size, level)
			}
		}
	}
}

func TestBonusAppliedAfterPenaltyClamp(t *testing.T) {
	// Critical with heavy penalties clamps to 0 first; the engagement bonus
	// then lifts the floor rather than being swallowed by the clamp.
	got := Score(DefaultPolicy(), resultWith(types.SeverityCritical, 10, 10), 5)
	// 75-50=25, -30 cap, -20 cap => -25 -> clamp 0, +10 bonus.
	if got != 10 {
		t.Errorf("expected 10, got %d", got)
	}
}
