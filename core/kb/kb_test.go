package kb

import (
	"testing"

	"github.com/shopspring/decimal"

	"stacksafe/core/types"
)

func TestBuiltinBuilds(t *testing.T) {
	knowledgeBase, err := Builtin()
	if err != nil {
		t.Fatalf("builtin knowledge base failed to build: %v", err)
	}

	if knowledgeBase.Version() != BuiltinVersion {
		t.Errorf("expected version %s, got %s", BuiltinVersion, knowledgeBase.Version())
	}

	stats := knowledgeBase.Stats()
	if stats.Rules == 0 {
		t.Error("expected builtin rules")
	}
	if stats.Limits == 0 {
		t.Error("expected builtin limits")
	}
	if stats.Synonyms == 0 {
		t.Error("expected builtin synonyms")
	}
}

func TestBuiltinLookups(t *testing.T) {
	knowledgeBase, err := Builtin()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rule, ok := knowledgeBase.Rule("warfarin_vitamin_e")
	if !ok {
		t.Fatal("expected warfarin_vitamin_e rule")
	}
	if rule.Severity != types.SeverityHigh {
		t.Errorf("expected high severity, got %s", rule.Severity)
	}
	if !rule.CrossRole() {
		t.Error("expected cross-role rule")
	}

	limit, ok := knowledgeBase.Limit("vitamin_d")
	if !ok {
		t.Fatal("expected vitamin_d limit")
	}
	if limit.Unit != types.UnitIU {
		t.Errorf("expected iu unit, got %s", limit.Unit)
	}
	if limit.UpperLimit.String() != "4000" {
		t.Errorf("expected upper limit 4000, got %s", limit.UpperLimit)
	}

	key, ok := knowledgeBase.ResolveSynonym("cholecalciferol")
	if !ok || key != "vitamin_d" {
		t.Errorf("expected cholecalciferol to resolve to vitamin_d, got %s", key)
	}

	nutrient, ok := knowledgeBase.NutrientFor("vitamin_d")
	if !ok || nutrient != "vitamin_d" {
		t.Errorf("expected vitamin_d nutrient mapping, got %s", nutrient)
	}
}

func TestLimitsSortedByNutrient(t *testing.T) {
	knowledgeBase, err := Builtin()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	limits := knowledgeBase.Limits()
	for i := 1; i < len(limits); i++ {
		if limits[i].Nutrient < limits[i-1].Nutrient {
			t.Fatalf("limits out of order: %s before %s", limits[i-1].Nutrient, limits[i].Nutrient)
		}
	}
}

func TestRuleTriggersAreIngredients(t *testing.T) {
	knowledgeBase, err := Builtin()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, rule := range knowledgeBase.Rules() {
		for _, key := range rule.TriggerKeys() {
			if !knowledgeBase.HasIngredient(key) {
				t.Errorf("rule %s trigger %s is not a canonical ingredient", rule.ID, key)
			}
		}
	}
}

func validRule(id string) InteractionRule {
	return InteractionRule{
		ID:          id,
		Supplements: []types.IngredientKey{"ginkgo"},
		Medications: []types.IngredientKey{"warfarin"},
		Severity:    types.SeverityHigh,
		Mechanism:   "additive anticoagulant effect",
	}
}

func TestBuildRejectsDuplicateRuleID(t *testing.T) {
	b := NewBuilder("test")
	b.AddRule(validRule("dup"))
	b.AddRule(validRule("dup"))

	if _, err := b.Build(); err == nil {
		t.Error("expected error for duplicate rule ID")
	}
}

func TestBuildRejectsEmptyRuleID(t *testing.T) {
	b := NewBuilder("test")
	b.AddRule(validRule(""))

	if _, err := b.Build(); err == nil {
		t.Error("expected error for empty rule ID")
	}
}

func TestBuildRejectsNoneSeverityRule(t *testing.T) {
	rule := validRule("r1")
	rule.Severity = types.SeverityNone

	b := NewBuilder("test")
	b.AddRule(rule)

	if _, err := b.Build(); err == nil {
		t.Error("expected error for none-severity rule")
	}
}

func TestBuildRejectsSingleMemberSameRoleRule(t *testing.T) {
	b := NewBuilder("test")
	b.AddRule(InteractionRule{
		ID:          "lonely",
		Supplements: []types.IngredientKey{"calcium"},
		Severity:    types.SeverityLow,
		Mechanism:   "n/a",
	})

	if _, err := b.Build(); err == nil {
		t.Error("expected error for same-role rule with one member")
	}
}

func TestBuildRejectsSynonymToUnknownKey(t *testing.T) {
	b := NewBuilder("test")
	b.AddRule(validRule("r1"))
	b.AddSynonym("mystery pill", "nonexistent")

	if _, err := b.Build(); err == nil {
		t.Error("expected error for synonym targeting unknown ingredient")
	}
}

func TestBuildRejectsNonPositiveLimit(t *testing.T) {
	b := NewBuilder("test")
	b.AddLimit(NutrientLimit{
		Nutrient:      "vitamin_x",
		UpperLimit:    decimal.Zero,
		Unit:          types.UnitMilligram,
		EvidenceLevel: types.EvidenceA,
	})

	if _, err := b.Build(); err == nil {
		t.Error("expected error for zero upper limit")
	}
}

func TestBuildRejectsNutrientSourceWithoutLimit(t *testing.T) {
	b := NewBuilder("test")
	b.AddNutrientSource("cod_liver_oil", "vitamin_x")

	if _, err := b.Build(); err == nil {
		t.Error("expected error for nutrient source without a limit")
	}
}

func TestBuildCanonicalSetIncludesTriggers(t *testing.T) {
	b := NewBuilder("test")
	b.AddRule(validRule("r1"))

	knowledgeBase, err := b.Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !knowledgeBase.HasIngredient("ginkgo") || !knowledgeBase.HasIngredient("warfarin") {
		t.Error("expected trigger keys to become canonical ingredients")
	}
}
