// Package normalize maps free-form item names to canonical ingredient keys.
// Case/format-insensitive matching lives here and nowhere else.
package normalize

import (
	"strings"
	"unicode"

	"stacksafe/core/types"
)

// Fold reduces a raw name to its canonical lookup form: lower-cased, with
// punctuation and whitespace runs collapsed to single underscores.
func Fold(raw string) string {
	var b strings.Builder
	pending := false
	for _, r := range strings.ToLower(strings.TrimSpace(raw)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pending && b.Len() > 0 {
				b.WriteByte('_')
			}
			pending = false
			b.WriteRune(r)
		} else {
			pending = true
		}
	}
	return b.String()
}

// Resolver is the knowledge base surface the normalizer needs
type Resolver interface {
	// HasIngredient reports whether the key is a canonical ingredient
	HasIngredient(key types.IngredientKey) bool

	// ResolveSynonym maps a folded alias to its canonical key
	ResolveSynonym(alias string) (types.IngredientKey, bool)
}

// Normalizer resolves free-form names against a knowledge base
type Normalizer struct {
	kb Resolver
}

// New creates a normalizer backed by a knowledge base
func New(kb Resolver) *Normalizer {
	return &Normalizer{kb: kb}
}

// Normalize resolves a raw name to a canonical ingredient key.
// It returns false rather than guessing when no exact or alias match exists;
// the caller decides whether to surface an unrecognized-ingredient notice.
func (n *Normalizer) Normalize(raw string) (types.IngredientKey, bool) {
	folded := Fold(raw)
	if folded == "" {
		return "", false
	}

	key := types.IngredientKey(folded)
	if n.kb.HasIngredient(key) {
		return key, true
	}

	if canonical, ok := n.kb.ResolveSynonym(folded); ok {
		return canonical, true
	}

	return "", false
}
