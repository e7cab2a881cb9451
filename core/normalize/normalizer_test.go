package normalize

import (
	"testing"

	"stacksafe/core/types"
)

func TestFold(t *testing.T) {
	cases := map[string]string{
		"Vitamin D3":      "vitamin_d3",
		"  vitamin d3  ":  "vitamin_d3",
		"ST. JOHN'S WORT": "st_john_s_wort",
		"omega-3":         "omega_3",
		"5-HTP":           "5_htp",
		"fish oil (EPA)":  "fish_oil_epa",
		"warfarin":        "warfarin",
		"!!!":             "",
		"":                "",
	}
	for raw, expected := range cases {
		if got := Fold(raw); got != expected {
			t.Errorf("Fold(%q) = %q, expected %q", raw, got, expected)
		}
	}
}

type fakeResolver struct {
	ingredients map[types.IngredientKey]struct{}
	synonyms    map[string]types.IngredientKey
}

func (f *fakeResolver) HasIngredient(key types.IngredientKey) bool {
	_, ok := f.ingredients[key]
	return ok
}

func (f *fakeResolver) ResolveSynonym(alias string) (types.IngredientKey, bool) {
	key, ok := f.synonyms[alias]
	return key, ok
}

func newFakeResolver() *fakeResolver {
	return &fakeResolver{
		ingredients: map[types.IngredientKey]struct{}{
			"vitamin_d": {},
			"warfarin":  {},
		},
		synonyms: map[string]types.IngredientKey{
			"cholecalciferol": "vitamin_d",
			"coumadin":        "warfarin",
		},
	}
}

func TestNormalizeCanonical(t *testing.T) {
	n := New(newFakeResolver())

	key, ok := n.Normalize("Vitamin D")
	if !ok {
		t.Fatal("expected match")
	}
	if key != "vitamin_d" {
		t.Errorf("expected vitamin_d, got %s", key)
	}
}

func TestNormalizeSynonym(t *testing.T) {
	n := New(newFakeResolver())

	key, ok := n.Normalize("Coumadin")
	if !ok {
		t.Fatal("expected synonym match")
	}
	if key != "warfarin" {
		t.Errorf("expected warfarin, got %s", key)
	}
}

func TestNormalizeNotFound(t *testing.T) {
	n := New(newFakeResolver())

	if _, ok := n.Normalize("unobtainium"); ok {
		t.Error("expected no match for unknown name")
	}
	if _, ok := n.Normalize(""); ok {
		t.Error("expected no match for empty name")
	}
	if _, ok := n.Normalize("???"); ok {
		t.Error("expected no match for punctuation-only name")
	}
}

func TestNormalizeNeverGuesses(t *testing.T) {
	// A near-miss must not resolve; fuzzy matching is out of scope.
	n := New(newFakeResolver())

	if _, ok := n.Normalize("vitamin d4"); ok {
		t.Error("expected no match for near-miss name")
	}
}
