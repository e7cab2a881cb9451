// Package nutrient sums cumulative exposure per nutrient against published
// upper limits. Aggregation is idempotent and order-independent.
package nutrient

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"stacksafe/core/kb"
	"stacksafe/core/types"
)

var hundred = decimal.NewFromInt(100)

// Warning is emitted when a nutrient total strictly exceeds the warning
// threshold. PercentOfLimit is kept at full precision; rounding is the
// formatter's job.
type Warning struct {
	Nutrient       types.NutrientKey `json:"nutrient"`
	CurrentTotal   decimal.Decimal   `json:"current_total"`
	Unit           types.Unit        `json:"unit"`
	UpperLimit     decimal.Decimal   `json:"upper_limit"`
	PercentOfLimit decimal.Decimal   `json:"percent_of_limit"`
	Recommendation string            `json:"recommendation"`
}

// Error reports a nutrient whose aggregation failed. It is surfaced
// distinctly from a legitimate no-warning result so callers never mistake
// missing data for safety.
type Error struct {
	Nutrient types.NutrientKey `json:"nutrient"`
	Item     string            `json:"item"`
	Message  string            `json:"message"`
}

// Aggregator sums declared doses per tracked nutrient
type Aggregator struct {
	kb *kb.KnowledgeBase

	// thresholdPercent is the percent of upper limit above which a warning
	// is emitted. Exactly-at-threshold emits nothing.
	thresholdPercent decimal.Decimal
}

// NewAggregator creates an aggregator with the given warning threshold,
// expressed as a percent of the upper limit.
func NewAggregator(knowledgeBase *kb.KnowledgeBase, thresholdPercent decimal.Decimal) *Aggregator {
	return &Aggregator{kb: knowledgeBase, thresholdPercent: thresholdPercent}
}

// Aggregate sums the declared dose of every stack item contributing to each
// tracked nutrient, converting to the limit's unit before summing. A unit
// that cannot convert poisons that nutrient's aggregation and is returned as
// an Error. Items with no nutrient mapping are skipped; they still
// participate in interaction matching.
func (a *Aggregator) Aggregate(stack []types.StackItem) ([]Warning, []Error) {
	totals := make(map[types.NutrientKey]decimal.Decimal)
	var aggErrors []Error
	poisoned := make(map[types.NutrientKey]struct{})

	for _, item := range stack {
		nutrient, ok := a.kb.NutrientFor(item.Key)
		if !ok {
			continue
		}
		limit, ok := a.kb.Limit(nutrient)
		if !ok {
			continue
		}

		converted, err := Convert(item.Dose, limit.Unit)
		if err != nil {
			aggErrors = append(aggErrors, Error{
				Nutrient: nutrient,
				Item:     item.RawName,
				Message:  fmt.Sprintf("cannot convert %s to %s", item.Dose, limit.Unit),
			})
			poisoned[nutrient] = struct{}{}
			continue
		}

		totals[nutrient] = totals[nutrient].Add(converted.Amount)
	}

	warnings := []Warning{}
	for nutrient, total := range totals {
		if _, bad := poisoned[nutrient]; bad {
			continue
		}
		limit, _ := a.kb.Limit(nutrient)

		percent := total.Div(limit.UpperLimit).Mul(hundred)
		if percent.Cmp(a.thresholdPercent) <= 0 {
			continue
		}

		warnings = append(warnings, Warning{
			Nutrient:       nutrient,
			CurrentTotal:   total,
			Unit:           limit.Unit,
			UpperLimit:     limit.UpperLimit,
			PercentOfLimit: percent,
			Recommendation: recommendation(nutrient, limit, percent),
		})
	}

	sort.Slice(warnings, func(i, j int) bool {
		return warnings[i].Nutrient < warnings[j].Nutrient
	})
	sort.Slice(aggErrors, func(i, j int) bool {
		if aggErrors[i].Nutrient != aggErrors[j].Nutrient {
			return aggErrors[i].Nutrient < aggErrors[j].Nutrient
		}
		return aggErrors[i].Item < aggErrors[j].Item
	})
	return warnings, aggErrors
}

func recommendation(nutrient types.NutrientKey, limit kb.NutrientLimit, percent decimal.Decimal) string {
	msg := fmt.Sprintf("Combined %s intake is %s%% of the %s %s upper limit.",
		nutrient, percent.Round(1), limit.UpperLimit, limit.Unit)
	if limit.RiskDescription != "" {
		msg += " " + limit.RiskDescription
	}
	return msg
}
