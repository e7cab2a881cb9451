// Package kb - builtin nutrient limit table.
// Upper limits follow the NIH Office of Dietary Supplements adult values.
package kb

import (
	"github.com/shopspring/decimal"

	"stacksafe/core/types"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic("kb: bad builtin decimal: " + s)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func registerBuiltinLimits(b *Builder) {
	b.AddLimit(NutrientLimit{
		Nutrient:          "vitamin_d",
		RDI:               decPtr("600"),
		UpperLimit:        dec("4000"),
		Unit:              types.UnitIU,
		RiskDescription:   "Chronic intake above the upper limit can cause hypercalcemia, kidney stones, and vascular calcification.",
		AtRiskPopulations: []string{"people with granulomatous disease", "people on thiazide diuretics"},
		EvidenceLevel:     types.EvidenceA,
	})

	b.AddLimit(NutrientLimit{
		Nutrient:          "vitamin_a",
		RDI:               decPtr("900"),
		UpperLimit:        dec("3000"),
		Unit:              types.UnitMicrogram,
		RiskDescription:   "Excess preformed vitamin A is hepatotoxic and teratogenic.",
		AtRiskPopulations: []string{"pregnant women", "people with liver disease"},
		EvidenceLevel:     types.EvidenceA,
	})

	b.AddLimit(NutrientLimit{
		Nutrient:          "vitamin_e",
		RDI:               decPtr("15"),
		UpperLimit:        dec("1000"),
		Unit:              types.UnitMilligram,
		RiskDescription:   "High doses impair platelet function and increase hemorrhagic risk.",
		AtRiskPopulations: []string{"people on anticoagulants"},
		EvidenceLevel:     types.EvidenceB,
	})

	b.AddLimit(NutrientLimit{
		Nutrient:          "vitamin_c",
		RDI:               decPtr("90"),
		UpperLimit:        dec("2000"),
		Unit:              types.UnitMilligram,
		RiskDescription:   "Excess causes osmotic diarrhea and raises oxalate kidney stone risk.",
		AtRiskPopulations: []string{"people with a history of oxalate stones"},
		EvidenceLevel:     types.EvidenceB,
	})

	b.AddLimit(NutrientLimit{
		Nutrient:          "vitamin_b6",
		RDI:               decPtr("1.7"),
		UpperLimit:        dec("100"),
		Unit:              types.UnitMilligram,
		RiskDescription:   "Chronic high intake causes sensory peripheral neuropathy.",
		EvidenceLevel:     types.EvidenceA,
	})

	b.AddLimit(NutrientLimit{
		Nutrient:          "niacin",
		RDI:               decPtr("16"),
		UpperLimit:        dec("35"),
		Unit:              types.UnitMilligram,
		RiskDescription:   "Above the limit, flushing; at gram doses, hepatotoxicity.",
		EvidenceLevel:     types.EvidenceB,
	})

	b.AddLimit(NutrientLimit{
		Nutrient:          "folate",
		RDI:               decPtr("400"),
		UpperLimit:        dec("1000"),
		Unit:              types.UnitMicrogram,
		RiskDescription:   "Excess folic acid can mask B12 deficiency and its neurological damage.",
		AtRiskPopulations: []string{"older adults with low B12"},
		EvidenceLevel:     types.EvidenceB,
	})

	b.AddLimit(NutrientLimit{
		Nutrient:          "iron",
		RDI:               decPtr("8"),
		UpperLimit:        dec("45"),
		Unit:              types.UnitMilligram,
		RiskDescription:   "Excess iron causes gastrointestinal injury and, chronically, organ iron overload.",
		AtRiskPopulations: []string{"people with hemochromatosis"},
		EvidenceLevel:     types.EvidenceA,
	})

	b.AddLimit(NutrientLimit{
		Nutrient:          "zinc",
		RDI:               decPtr("11"),
		UpperLimit:        dec("40"),
		Unit:              types.UnitMilligram,
		RiskDescription:   "Chronic excess induces copper deficiency and impairs immune function.",
		EvidenceLevel:     types.EvidenceA,
	})

	b.AddLimit(NutrientLimit{
		Nutrient:          "calcium",
		RDI:               decPtr("1000"),
		UpperLimit:        dec("2500"),
		Unit:              types.UnitMilligram,
		RiskDescription:   "Excess supplemental calcium raises kidney stone risk and may contribute to vascular calcification.",
		AtRiskPopulations: []string{"people with chronic kidney disease"},
		EvidenceLevel:     types.EvidenceB,
	})

	// The magnesium UL covers supplemental intake only, not dietary.
	b.AddLimit(NutrientLimit{
		Nutrient:          "magnesium",
		RDI:               decPtr("420"),
		UpperLimit:        dec("350"),
		Unit:              types.UnitMilligram,
		RiskDescription:   "Supplemental magnesium above the limit causes diarrhea; much higher doses risk hypermagnesemia.",
		AtRiskPopulations: []string{"people with impaired renal function"},
		EvidenceLevel:     types.EvidenceA,
	})

	b.AddLimit(NutrientLimit{
		Nutrient:          "selenium",
		RDI:               decPtr("55"),
		UpperLimit:        dec("400"),
		Unit:              types.UnitMicrogram,
		RiskDescription:   "Chronic excess causes selenosis: hair loss, nail brittleness, neurological signs.",
		EvidenceLevel:     types.EvidenceA,
	})

	// Identity sources: each tracked nutrient has a same-named ingredient.
	for _, nutrient := range []types.NutrientKey{
		"vitamin_d", "vitamin_a", "vitamin_e", "vitamin_c", "vitamin_b6",
		"niacin", "folate", "iron", "zinc", "calcium", "magnesium", "selenium",
	} {
		b.AddNutrientSource(types.IngredientKey(nutrient), nutrient)
	}

	// Compound ingredients that contribute to a tracked nutrient.
	b.AddNutrientSource("cod_liver_oil", "vitamin_a")
}
