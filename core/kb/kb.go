// Package kb - Authoritative interaction and nutrient knowledge base.
// Defines the canonical rule, limit, and synonym tables the engine runs on.
// The knowledge base is immutable after Build and safe for concurrent reads.
package kb

import (
	"sort"

	"github.com/shopspring/decimal"

	"stacksafe/core/normalize"
	"stacksafe/core/types"
)

// BuiltinVersion identifies the bundled knowledge base release
const BuiltinVersion = "2025.08"

// InteractionRule is a static rule matching a set of ingredients.
// Cross-role rules carry at least one key on each side; pure same-role
// conflicts carry two or more keys on one side and none on the other.
type InteractionRule struct {
	ID          string                `json:"id"`
	Supplements []types.IngredientKey `json:"supplements,omitempty"`
	Medications []types.IngredientKey `json:"medications,omitempty"`
	Severity    types.Severity        `json:"severity"`
	Mechanism   string                `json:"mechanism"`
	Evidence    string                `json:"evidence,omitempty"`
	Management  string                `json:"management,omitempty"`
	Sources     []types.SourceRef     `json:"sources,omitempty"`
	Category    string                `json:"category,omitempty"`
}

// CrossRole reports whether the rule spans the supplement and medication roles
func (r InteractionRule) CrossRole() bool {
	return len(r.Supplements) > 0 && len(r.Medications) > 0
}

// TriggerKeys returns the union of both role groups
func (r InteractionRule) TriggerKeys() []types.IngredientKey {
	keys := make([]types.IngredientKey, 0, len(r.Supplements)+len(r.Medications))
	keys = append(keys, r.Supplements...)
	keys = append(keys, r.Medications...)
	return keys
}

// NutrientLimit is the published safety ceiling for one nutrient
type NutrientLimit struct {
	Nutrient          types.NutrientKey   `json:"nutrient"`
	RDI               *decimal.Decimal    `json:"rdi,omitempty"`
	UpperLimit        decimal.Decimal     `json:"upper_limit"`
	Unit              types.Unit          `json:"unit"`
	RiskDescription   string              `json:"risk_description"`
	AtRiskPopulations []string            `json:"at_risk_populations,omitempty"`
	EvidenceLevel     types.EvidenceLevel `json:"evidence_level"`
}

// KnowledgeBase holds the loaded reference data.
// It is read-only after Build; concurrent analyses share it without locking.
type KnowledgeBase struct {
	version     string
	rules       []InteractionRule
	rulesByID   map[string]int
	limits      map[types.NutrientKey]NutrientLimit
	limitOrder  []types.NutrientKey
	synonyms    map[string]types.IngredientKey
	nutrientOf  map[types.IngredientKey]types.NutrientKey
	ingredients map[types.IngredientKey]struct{}
}

// Version returns the knowledge base release identifier
func (k *KnowledgeBase) Version() string {
	return k.version
}

// Rules returns all interaction rules in registration order.
// The returned slice is shared and must not be mutated.
func (k *KnowledgeBase) Rules() []InteractionRule {
	return k.rules
}

// Rule returns a rule by ID
func (k *KnowledgeBase) Rule(id string) (InteractionRule, bool) {
	idx, ok := k.rulesByID[id]
	if !ok {
		return InteractionRule{}, false
	}
	return k.rules[idx], true
}

// Limit returns the limit record for a nutrient
func (k *KnowledgeBase) Limit(nutrient types.NutrientKey) (NutrientLimit, bool) {
	limit, ok := k.limits[nutrient]
	return limit, ok
}

// Limits returns all nutrient limits sorted by nutrient key
func (k *KnowledgeBase) Limits() []NutrientLimit {
	result := make([]NutrientLimit, 0, len(k.limitOrder))
	for _, key := range k.limitOrder {
		result = append(result, k.limits[key])
	}
	return result
}

// HasIngredient reports whether the key is a canonical ingredient
func (k *KnowledgeBase) HasIngredient(key types.IngredientKey) bool {
	_, ok := k.ingredients[key]
	return ok
}

// ResolveSynonym maps a folded alias to its canonical ingredient key
func (k *KnowledgeBase) ResolveSynonym(alias string) (types.IngredientKey, bool) {
	key, ok := k.synonyms[alias]
	return key, ok
}

// NutrientFor returns the nutrient an ingredient contributes to, if any
func (k *KnowledgeBase) NutrientFor(key types.IngredientKey) (types.NutrientKey, bool) {
	nutrient, ok := k.nutrientOf[key]
	return nutrient, ok
}

// Stats holds knowledge base statistics
type Stats struct {
	Version         string         `json:"version"`
	Rules           int            `json:"rules"`
	RulesBySeverity map[string]int `json:"rules_by_severity"`
	Limits          int            `json:"limits"`
	Synonyms        int            `json:"synonyms"`
	Ingredients     int            `json:"ingredients"`
}

// Stats returns knowledge base statistics
func (k *KnowledgeBase) Stats() Stats {
	stats := Stats{
		Version:         k.version,
		Rules:           len(k.rules),
		RulesBySeverity: make(map[string]int),
		Limits:          len(k.limits),
		Synonyms:        len(k.synonyms),
		Ingredients:     len(k.ingredients),
	}
	for _, rule := range k.rules {
		stats.RulesBySeverity[rule.Severity.String()]++
	}
	return stats
}

// Builder accumulates reference data before the immutable Build
type Builder struct {
	version     string
	rules       []InteractionRule
	limits      []NutrientLimit
	synonyms    map[string]types.IngredientKey
	nutrientOf  map[types.IngredientKey]types.NutrientKey
	ingredients map[types.IngredientKey]struct{}
}

// NewBuilder creates a builder for a knowledge base release
func NewBuilder(version string) *Builder {
	return &Builder{
		version:     version,
		synonyms:    make(map[string]types.IngredientKey),
		nutrientOf:  make(map[types.IngredientKey]types.NutrientKey),
		ingredients: make(map[types.IngredientKey]struct{}),
	}
}

// AddRule registers an interaction rule
func (b *Builder) AddRule(rule InteractionRule) *Builder {
	b.rules = append(b.rules, rule)
	return b
}

// AddLimit registers a nutrient limit
func (b *Builder) AddLimit(limit NutrientLimit) *Builder {
	b.limits = append(b.limits, limit)
	return b
}

// AddSynonym registers an alias for a canonical key.
// The alias is folded to its normalized form before storage.
func (b *Builder) AddSynonym(alias string, key types.IngredientKey) *Builder {
	b.synonyms[normalize.Fold(alias)] = key
	return b
}

// AddNutrientSource declares that an ingredient contributes to a nutrient
func (b *Builder) AddNutrientSource(ingredient types.IngredientKey, nutrient types.NutrientKey) *Builder {
	b.nutrientOf[ingredient] = nutrient
	return b
}

// AddIngredient registers a canonical ingredient that appears in no rule
func (b *Builder) AddIngredient(key types.IngredientKey) *Builder {
	b.ingredients[key] = struct{}{}
	return b
}

// Build validates the accumulated data and freezes it into a KnowledgeBase.
// Malformed reference data aborts the build; the engine never runs on a
// partial rule set.
func (b *Builder) Build() (*KnowledgeBase, error) {
	// The canonical ingredient set is the union of explicit registrations,
	// every rule trigger key, and every nutrient source.
	ingredients := make(map[types.IngredientKey]struct{}, len(b.ingredients))
	for key := range b.ingredients {
		ingredients[key] = struct{}{}
	}
	for _, rule := range b.rules {
		for _, key := range rule.TriggerKeys() {
			ingredients[key] = struct{}{}
		}
	}
	for key := range b.nutrientOf {
		ingredients[key] = struct{}{}
	}

	if err := validate(b, ingredients); err != nil {
		return nil, err
	}

	kb := &KnowledgeBase{
		version:     b.version,
		rules:       make([]InteractionRule, len(b.rules)),
		rulesByID:   make(map[string]int, len(b.rules)),
		limits:      make(map[types.NutrientKey]NutrientLimit, len(b.limits)),
		synonyms:    make(map[string]types.IngredientKey, len(b.synonyms)),
		nutrientOf:  make(map[types.IngredientKey]types.NutrientKey, len(b.nutrientOf)),
		ingredients: ingredients,
	}

	copy(kb.rules, b.rules)
	for i, rule := range kb.rules {
		kb.rulesByID[rule.ID] = i
	}
	for _, limit := range b.limits {
		kb.limits[limit.Nutrient] = limit
		kb.limitOrder = append(kb.limitOrder, limit.Nutrient)
	}
	sort.Slice(kb.limitOrder, func(i, j int) bool {
		return kb.limitOrder[i] < kb.limitOrder[j]
	})
	for alias, key := range b.synonyms {
		kb.synonyms[alias] = key
	}
	for key, nutrient := range b.nutrientOf {
		kb.nutrientOf[key] = nutrient
	}

	return kb, nil
}

// Builtin builds the bundled knowledge base
func Builtin() (*KnowledgeBase, error) {
	return builtinBuilder().Build()
}

// Load builds the bundled knowledge base with an optional overlay directory
// of .hcl files layered on top. An empty dir loads the builtin tables only.
func Load(overlayDir string) (*KnowledgeBase, error) {
	b := builtinBuilder()
	if overlayDir != "" {
		if err := LoadOverlay(b, overlayDir); err != nil {
			return nil, err
		}
	}
	return b.Build()
}

func builtinBuilder() *Builder {
	b := NewBuilder(BuiltinVersion)
	registerBuiltinRules(b)
	registerBuiltinLimits(b)
	registerBuiltinSynonyms(b)
	return b
}
