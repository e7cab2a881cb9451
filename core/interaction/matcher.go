// Package interaction finds knowledge base rules triggered by a stack.
// Rules are evaluated independently and exhaustively; multiple rules may
// legitimately fire for the same stack.
package interaction

import (
	"sort"

	"stacksafe/core/kb"
	"stacksafe/core/types"
)

// Finding is a rule that matched, annotated with the stack items that
// triggered it. Findings are de-duplicated by rule identity, not item pair.
type Finding struct {
	Rule    kb.InteractionRule `json:"rule"`
	Matched []types.StackItem  `json:"matched_items"`
}

// Matcher evaluates the rule table against stack snapshots
type Matcher struct {
	kb *kb.KnowledgeBase
}

// NewMatcher creates a matcher backed by a knowledge base
func NewMatcher(knowledgeBase *kb.KnowledgeBase) *Matcher {
	return &Matcher{kb: knowledgeBase}
}

// FindInteractions returns one finding per fired rule.
// A cross-role rule fires when the stack holds at least one item from each
// of its role groups; a same-role rule fires when at least two distinct
// members of the group are present. Findings come back in deterministic
// order: severity descending, then rule ID.
func (m *Matcher) FindInteractions(stack []types.StackItem) []Finding {
	present := make(map[types.IngredientKey][]types.StackItem, len(stack))
	for _, item := range stack {
		present[item.Key] = append(present[item.Key], item)
	}

	findings := []Finding{}
	for _, rule := range m.kb.Rules() {
		matched, fired := matchRule(rule, present)
		if !fired {
			continue
		}
		findings = append(findings, Finding{Rule: rule, Matched: matched})
	}

	sort.SliceStable(findings, func(i, j int) bool {
		if findings[i].Rule.Severity != findings[j].Rule.Severity {
			return findings[i].Rule.Severity > findings[j].Rule.Severity
		}
		return findings[i].Rule.ID < findings[j].Rule.ID
	})
	return findings
}

func matchRule(rule kb.InteractionRule, present map[types.IngredientKey][]types.StackItem) ([]types.StackItem, bool) {
	supplementHits := presentKeys(rule.Supplements, present)
	medicationHits := presentKeys(rule.Medications, present)

	var fired bool
	if rule.CrossRole() {
		fired = len(supplementHits) > 0 && len(medicationHits) > 0
	} else {
		fired = len(supplementHits)+len(medicationHits) >= 2
	}
	if !fired {
		return nil, false
	}

	matched := collectItems(append(supplementHits, medicationHits...), present)
	return matched, true
}

func presentKeys(group []types.IngredientKey, present map[types.IngredientKey][]types.StackItem) []types.IngredientKey {
	var hits []types.IngredientKey
	for _, key := range group {
		if _, ok := present[key]; ok {
			hits = append(hits, key)
		}
	}
	return hits
}

func collectItems(keys []types.IngredientKey, present map[types.IngredientKey][]types.StackItem) []types.StackItem {
	var items []types.StackItem
	for _, key := range keys {
		items = append(items, present[key]...)
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Key != items[j].Key {
			return items[i].Key < items[j].Key
		}
		return items[i].RawName < items[j].RawName
	})
	return items
}
