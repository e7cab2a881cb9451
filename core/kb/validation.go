// Package kb - reference data validation.
// A knowledge base that fails validation never reaches the engine.
package kb

import (
	"stacksafe/core/types"
	"stacksafe/internal/errors"
)

func validate(b *Builder, ingredients map[types.IngredientKey]struct{}) error {
	seenRules := make(map[string]struct{}, len(b.rules))
	for _, rule := range b.rules {
		if rule.ID == "" {
			return errors.KnowledgeBase("interaction rule with empty ID", nil)
		}
		if _, dup := seenRules[rule.ID]; dup {
			return errors.Newf(errors.TypeKnowledgeBase, "duplicate rule ID: %s", rule.ID)
		}
		seenRules[rule.ID] = struct{}{}

		if err := validateRule(rule); err != nil {
			return err
		}
	}

	seenLimits := make(map[types.NutrientKey]struct{}, len(b.limits))
	for _, limit := range b.limits {
		if limit.Nutrient == "" {
			return errors.KnowledgeBase("nutrient limit with empty nutrient key", nil)
		}
		if _, dup := seenLimits[limit.Nutrient]; dup {
			return errors.Newf(errors.TypeKnowledgeBase, "duplicate nutrient limit: %s", limit.Nutrient)
		}
		seenLimits[limit.Nutrient] = struct{}{}

		if !limit.UpperLimit.IsPositive() {
			return errors.Newf(errors.TypeKnowledgeBase, "nutrient %s: upper limit must be positive", limit.Nutrient)
		}
		if limit.RDI != nil && !limit.RDI.IsPositive() {
			return errors.Newf(errors.TypeKnowledgeBase, "nutrient %s: RDI must be positive", limit.Nutrient)
		}
		if !limit.Unit.IsValid() {
			return errors.Newf(errors.TypeKnowledgeBase, "nutrient %s: unknown unit %q", limit.Nutrient, limit.Unit)
		}
		if !limit.EvidenceLevel.IsValid() {
			return errors.Newf(errors.TypeKnowledgeBase, "nutrient %s: unknown evidence level %q", limit.Nutrient, limit.EvidenceLevel)
		}
	}

	for alias, key := range b.synonyms {
		if alias == "" {
			return errors.KnowledgeBase("synonym with empty alias", nil)
		}
		if _, ok := ingredients[key]; !ok {
			return errors.Newf(errors.TypeKnowledgeBase, "synonym %q maps to unknown ingredient %q", alias, key)
		}
	}

	for ingredient, nutrient := range b.nutrientOf {
		if _, ok := seenLimits[nutrient]; !ok {
			return errors.Newf(errors.TypeKnowledgeBase, "nutrient source %q references nutrient %q with no limit", ingredient, nutrient)
		}
	}

	return nil
}

func validateRule(rule InteractionRule) error {
	if !rule.Severity.IsValid() || rule.Severity == types.SeverityNone {
		return errors.Newf(errors.TypeKnowledgeBase, "rule %s: severity must be low, moderate, high, or critical", rule.ID)
	}

	for _, key := range rule.TriggerKeys() {
		if key == "" {
			return errors.Newf(errors.TypeKnowledgeBase, "rule %s: empty trigger key", rule.ID)
		}
	}

	seen := make(map[types.IngredientKey]struct{})
	for _, key := range rule.TriggerKeys() {
		if _, dup := seen[key]; dup {
			return errors.Newf(errors.TypeKnowledgeBase, "rule %s: duplicate trigger key %q", rule.ID, key)
		}
		seen[key] = struct{}{}
	}

	switch {
	case rule.CrossRole():
		// One key per side is the minimum; already guaranteed by CrossRole.
	case len(rule.Supplements) >= 2 && len(rule.Medications) == 0:
		// Pure supplement-supplement conflict.
	case len(rule.Medications) >= 2 && len(rule.Supplements) == 0:
		// Pure medication-medication conflict.
	default:
		return errors.Newf(errors.TypeKnowledgeBase, "rule %s: needs one key per role, or two keys in a single role", rule.ID)
	}

	return nil
}
